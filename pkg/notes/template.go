package notes

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// TemplateEngine handles loading and rendering of note templates
type TemplateEngine struct {
	TemplateDir string
}

// NewTemplateEngine creates a new TemplateEngine
func NewTemplateEngine(templateDir string) *TemplateEngine {
	return &TemplateEngine{
		TemplateDir: templateDir,
	}
}

// LoadTemplate reads a template file from the template directory
func (e *TemplateEngine) LoadTemplate(templateName string) (string, error) {
	if !strings.HasSuffix(templateName, ".md") {
		templateName += ".md"
	}

	path := fmt.Sprintf("%s/%s", e.TemplateDir, templateName)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

var datePlaceholder = regexp.MustCompile(`\{\{date:(.*?)\}\}`)

// Render replaces placeholders in the template content.
// Supported placeholders:
// {{activity}} - the activity type
// {{remarks}} - the remarks text
// {{date:FORMAT}} - current date formatted per FORMAT (e.g. YYYY-MM-DD)
func (e *TemplateEngine) Render(content, activityType, remarks string) string {
	content = strings.ReplaceAll(content, "{{activity}}", activityType)
	content = strings.ReplaceAll(content, "{{remarks}}", remarks)

	content = datePlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := datePlaceholder.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return time.Now().Format(convertMomentToGoFormat(parts[1]))
	})

	return content
}

// convertMomentToGoFormat converts simple Moment.js format strings to Go time format
func convertMomentToGoFormat(format string) string {
	format = strings.ReplaceAll(format, "YYYY", "2006")
	format = strings.ReplaceAll(format, "MM", "01")
	format = strings.ReplaceAll(format, "DD", "02")
	format = strings.ReplaceAll(format, "HH", "15")
	format = strings.ReplaceAll(format, "mm", "04")
	format = strings.ReplaceAll(format, "ss", "05")
	return format
}
