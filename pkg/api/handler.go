package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/ledger"
	"github.com/mklimuk/sales-pilot/pkg/notes"
	"github.com/mklimuk/sales-pilot/pkg/reminders"
	"github.com/mklimuk/sales-pilot/pkg/sync"
)

// Handler holds dependencies for API handlers
type Handler struct {
	Engine     *reminders.Engine
	Dispatcher *reminders.Dispatcher
	Ledger     *ledger.Ledger
	NotesDir   string
	TmplEngine *notes.TemplateEngine
	Git        *sync.GitManager
}

// HandleActiveReminders handles GET /reminders/active. It returns what the
// dashboard should currently be showing.
func (h *Handler) HandleActiveReminders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dispatcher.Snapshot())
}

type dismissRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// HandleDismiss handles POST /reminders/dismiss. The dismiss always succeeds
// from the caller's point of view: the active slot clears immediately even if
// the ledger write fails underneath.
func (h *Handler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	switch strings.TrimSpace(strings.ToLower(req.Kind)) {
	case "meeting":
		if req.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		h.Engine.DismissMeeting(req.ID)
	case "note":
		if req.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		h.Engine.DismissNote(req.ID)
	case "logout":
		h.Engine.DismissLogout()
	default:
		http.Error(w, "kind must be meeting, note or logout", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// HandleListDismissed handles GET /reminders/dismissed?day=YYYY-MM-DD
// (defaults to today).
func (h *Handler) HandleListDismissed(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		day = reminders.DayKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		http.Error(w, "day must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	summary, err := h.Ledger.Summary(day)
	if err != nil {
		http.Error(w, "failed to read ledger: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type createNoteRequest struct {
	ActivityType string `json:"activity_type"`
	Remarks      string `json:"remarks"`
	RemindAt     string `json:"remind_at"`
}

// HandleCreateNote handles POST /notes
func (h *Handler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.ActivityType = strings.TrimSpace(req.ActivityType)
	if req.ActivityType == "" {
		http.Error(w, "activity_type is required", http.StatusBadRequest)
		return
	}
	if req.RemindAt != "" {
		if _, err := reminders.ParseTrigger(req.RemindAt); err != nil {
			http.Error(w, "invalid remind_at: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	id, err := notes.CreateReminderNote(h.NotesDir, h.TmplEngine, req.ActivityType, req.Remarks, req.RemindAt)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create note: %v", err), http.StatusInternalServerError)
		return
	}

	if h.Git != nil {
		go func() {
			if err := h.Git.Sync("Add reminder note: " + req.ActivityType); err != nil {
				log.Printf("api: git sync: %v", err)
			}
		}()
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created", "id": id})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
