package notes

// Frontmatter is the yaml header of a reminder note. A note without remind_at
// still exists for other screens but is not a candidate for the engine.
type Frontmatter struct {
	Created      string   `yaml:"created"`
	ActivityType string   `yaml:"activity_type"`
	Remarks      string   `yaml:"remarks,omitempty"`
	RemindAt     string   `yaml:"remind_at,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
}

// Note represents a parsed markdown note
type Note struct {
	Path    string
	Meta    Frontmatter
	Content string // The markdown content after frontmatter
}
