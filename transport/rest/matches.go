package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
)

type matchReader interface {
	GetByID(ctx context.Context, id string) (*match.Result, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type MatchHandlers struct {
	logger  *slog.Logger
	matches matchReader
}

func NewMatchHandlers(logger *slog.Logger, matches matchReader) *MatchHandlers {
	return &MatchHandlers{
		logger:  logger.With("component", "rest"),
		matches: matches,
	}
}

func (that *MatchHandlers) List(w http.ResponseWriter, r *http.Request) {
	ids, err := that.matches.ListIDs(r.Context())
	if err != nil {
		that.logger.Error("could not list matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, map[string][]string{"matches": ids})
}

func (that *MatchHandlers) Get(w http.ResponseWriter, r *http.Request) {
	result, ok := that.load(w, r)
	if !ok {
		return
	}

	that.writeJSON(w, result)
}

// Transcript - renders the stored game as plain text.
func (that *MatchHandlers) Transcript(w http.ResponseWriter, r *http.Request) {
	result, ok := that.load(w, r)
	if !ok {
		return
	}

	text, err := result.Transcript()
	if err != nil {
		that.logger.Error("could not render transcript", "match_id", result.ID, "error", err)
		http.Error(w, "Unprocessable Entity", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write([]byte(text)); err != nil {
		that.logger.Error("could not write transcript", "error", err)
	}
}

func (that *MatchHandlers) load(w http.ResponseWriter, r *http.Request) (*match.Result, bool) {
	id := r.PathValue("id")

	result, err := that.matches.GetByID(r.Context(), id)
	if errors.Is(err, apperror.ErrMatchNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}

	if err != nil {
		that.logger.Error("could not load match", "match_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	return result, true
}

func (that *MatchHandlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("could not encode response", "error", err)
	}
}
