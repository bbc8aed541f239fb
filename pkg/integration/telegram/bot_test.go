package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/reminders"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCmd  string
		wantArgs string
	}{
		{
			name:    "active command",
			input:   "/active",
			wantCmd: "/active",
		},
		{
			name:     "dismiss with args",
			input:    "/dismiss meeting evt-123",
			wantCmd:  "/dismiss",
			wantArgs: "meeting evt-123",
		},
		{
			name:    "status command",
			input:   "/status",
			wantCmd: "/status",
		},
		{
			name:     "unknown command",
			input:    "/help",
			wantCmd:  "",
			wantArgs: "/help",
		},
		{
			name:     "plain text",
			input:    "hello world",
			wantCmd:  "",
			wantArgs: "hello world",
		},
		{
			name:     "trailing whitespace",
			input:    "/dismiss logout  ",
			wantCmd:  "/dismiss",
			wantArgs: "logout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseCommand(tt.input)
			if cmd != tt.wantCmd {
				t.Errorf("ParseCommand(%q) command = %q, want %q", tt.input, cmd, tt.wantCmd)
			}
			if args != tt.wantArgs {
				t.Errorf("ParseCommand(%q) args = %q, want %q", tt.input, args, tt.wantArgs)
			}
		})
	}
}

func TestSplitDismissArgs(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTrack string
		wantID    string
	}{
		{
			name:      "meeting with id",
			input:     "meeting evt-123",
			wantTrack: "meeting",
			wantID:    "evt-123",
		},
		{
			name:      "note with path id",
			input:     "note Call ACME 2026-03-10.md",
			wantTrack: "note",
			wantID:    "Call ACME 2026-03-10.md",
		},
		{
			name:      "logout without id",
			input:     "logout",
			wantTrack: "logout",
		},
		{
			name:      "empty",
			input:     "",
			wantTrack: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, id := SplitDismissArgs(tt.input)
			if track != tt.wantTrack {
				t.Errorf("track = %q, want %q", track, tt.wantTrack)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestFormatActive(t *testing.T) {
	empty := FormatActive(reminders.ActiveState{})
	if empty != "No active reminders." {
		t.Errorf("empty state = %q", empty)
	}

	state := reminders.ActiveState{
		Meeting: &reminders.MeetingCandidate{
			ID:          "evt-1",
			Title:       "Sales review",
			TriggerTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local),
		},
		Note: &reminders.NoteCandidate{
			ID:           "call.md",
			ActivityType: "Call",
		},
		Logout: true,
	}

	got := FormatActive(state)
	for _, want := range []string{"Sales review", "14:00", "evt-1", "Call", "call.md", "Logout"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatActive missing %q:\n%s", want, got)
		}
	}
}
