package api

import (
	"net/http"

	"github.com/mklimuk/sales-pilot/pkg/ledger"
	"github.com/mklimuk/sales-pilot/pkg/notes"
	"github.com/mklimuk/sales-pilot/pkg/reminders"
	"github.com/mklimuk/sales-pilot/pkg/sync"
)

// NewRouter creates a new HTTP router
func NewRouter(engine *reminders.Engine, dispatcher *reminders.Dispatcher, led *ledger.Ledger, notesDir string, tmplEngine *notes.TemplateEngine, gitManager *sync.GitManager) *http.ServeMux {
	mux := http.NewServeMux()

	h := &Handler{
		Engine:     engine,
		Dispatcher: dispatcher,
		Ledger:     led,
		NotesDir:   notesDir,
		TmplEngine: tmplEngine,
		Git:        gitManager,
	}

	mux.HandleFunc("GET /reminders/active", h.HandleActiveReminders)
	mux.HandleFunc("POST /reminders/dismiss", h.HandleDismiss)
	mux.HandleFunc("GET /reminders/dismissed", h.HandleListDismissed)
	mux.HandleFunc("POST /notes", h.HandleCreateNote)

	return mux
}
