package notes

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/reminders"
)

func TestReadWriteRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Call ACME.md")

	original := &Note{
		Path: path,
		Meta: Frontmatter{
			Created:      "2026-03-10",
			ActivityType: "Call",
			Remarks:      "follow up on the quote",
			RemindAt:     "2026-03-10T14:00:00Z",
		},
		Content: "\n# Call ACME\n",
	}

	if err := WriteNote(original); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadNote(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Meta.ActivityType != "Call" {
		t.Errorf("activity_type = %q", got.Meta.ActivityType)
	}
	if got.Meta.RemindAt != "2026-03-10T14:00:00Z" {
		t.Errorf("remind_at = %q", got.Meta.RemindAt)
	}
	if got.Meta.Remarks != "follow up on the quote" {
		t.Errorf("remarks = %q", got.Meta.Remarks)
	}
}

func TestReadNoteWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.md")
	os.WriteFile(path, []byte("# Just content\n"), 0644)

	note, err := ReadNote(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if note.Meta.RemindAt != "" {
		t.Errorf("expected empty remind_at, got %q", note.Meta.RemindAt)
	}
}

func TestCreateReminderNote(t *testing.T) {
	dir := t.TempDir()

	id, err := CreateReminderNote(dir, nil, "Call: ACME", "quote follow-up", "2026-03-10T14:00:00Z")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	note, err := ReadNote(filepath.Join(dir, id))
	if err != nil {
		t.Fatalf("read created: %v", err)
	}
	if note.Meta.ActivityType != "Call: ACME" {
		t.Errorf("activity_type = %q", note.Meta.ActivityType)
	}
	if note.Meta.RemindAt != "2026-03-10T14:00:00Z" {
		t.Errorf("remind_at = %q", note.Meta.RemindAt)
	}
}

func TestTemplateRender(t *testing.T) {
	dir := t.TempDir()
	tmplContent := "---\ncreated: {{date:YYYY-MM-DD}}\n---\n# {{activity}}\n\n{{remarks}}\n"
	os.WriteFile(filepath.Join(dir, "Reminder Template.md"), []byte(tmplContent), 0644)

	engine := NewTemplateEngine(dir)
	tmpl, err := engine.LoadTemplate("Reminder Template")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	rendered := engine.Render(tmpl, "Call", "ring the buyer")
	wantDate := time.Now().Format("2006-01-02")
	if want := "created: " + wantDate; !strings.Contains(rendered, want) {
		t.Errorf("rendered missing %q:\n%s", want, rendered)
	}
	if !strings.Contains(rendered, "# Call") || !strings.Contains(rendered, "ring the buyer") {
		t.Errorf("placeholders not replaced:\n%s", rendered)
	}
}

func TestFeedSnapshot(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, dir, "with-reminder.md", Frontmatter{
		ActivityType: "Call",
		Remarks:      "ring buyer",
		RemindAt:     "2026-03-10T14:00:00Z",
	})
	mustWrite(t, dir, "no-reminder.md", Frontmatter{
		ActivityType: "Visit",
	})
	mustWrite(t, dir, filepath.Join("sub", "nested.md"), Frontmatter{
		ActivityType: "Email",
		RemindAt:     "2026-03-10T15:00:00Z",
	})
	// Non-markdown files are ignored.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("remind_at: whatever"), 0644)

	var got []reminders.RawNote
	feed := NewFeed(dir, time.Minute, func(items []reminders.RawNote) {
		got = items
	})

	if err := feed.scanOnce(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}

	ids := []string{got[0].ID, got[1].ID}
	sort.Strings(ids)
	if ids[0] != filepath.Join("sub", "nested.md") || ids[1] != "with-reminder.md" {
		t.Errorf("unexpected candidate ids: %v", ids)
	}
}

func TestFeedDeliversCompleteSnapshots(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "a.md", Frontmatter{ActivityType: "Call", RemindAt: "2026-03-10T14:00:00Z"})

	var snapshots [][]reminders.RawNote
	feed := NewFeed(dir, time.Minute, func(items []reminders.RawNote) {
		snapshots = append(snapshots, items)
	})

	if err := feed.scanOnce(); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, dir, "b.md", Frontmatter{ActivityType: "Visit", RemindAt: "2026-03-10T15:00:00Z"})
	if err := feed.scanOnce(); err != nil {
		t.Fatal(err)
	}

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 1 || len(snapshots[1]) != 2 {
		t.Errorf("snapshots not complete lists: %d then %d items",
			len(snapshots[0]), len(snapshots[1]))
	}
}

func mustWrite(t *testing.T, dir, rel string, meta Frontmatter) {
	t.Helper()
	note := &Note{
		Path:    filepath.Join(dir, rel),
		Meta:    meta,
		Content: "\n# " + meta.ActivityType + "\n",
	}
	if err := WriteNote(note); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
