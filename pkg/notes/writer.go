package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteNote writes a note to its path, frontmatter first.
func WriteNote(note *Note) error {
	fmData, err := yaml.Marshal(note.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n%s", string(fmData), note.Content)

	dir := filepath.Dir(note.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(note.Path, []byte(content), 0644)
}

// CreateReminderNote creates a new reminder note in the notes directory and
// returns its path relative to the directory, which doubles as the note id.
func CreateReminderNote(notesDir string, engine *TemplateEngine, activityType, remarks, remindAt string) (string, error) {
	body := ""
	if engine != nil {
		tmpl, err := engine.LoadTemplate("Reminder Template")
		if err == nil {
			body = engine.Render(tmpl, activityType, remarks)
		}
	}
	if body == "" {
		body = fmt.Sprintf("\n# %s\n\n%s\n", activityType, remarks)
	}

	filename := fmt.Sprintf("%s %s.md",
		SanitizeFilename(activityType),
		time.Now().Format("2006-01-02 1504"))

	note := &Note{
		Path: filepath.Join(notesDir, filename),
		Meta: Frontmatter{
			Created:      time.Now().Format("2006-01-02"),
			ActivityType: activityType,
			Remarks:      remarks,
			RemindAt:     remindAt,
		},
		Content: body,
	}

	if err := WriteNote(note); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return filename, nil
}

// SanitizeFilename removes characters invalid in filenames.
func SanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range invalid {
		name = strings.ReplaceAll(name, char, "-")
	}
	return name
}
