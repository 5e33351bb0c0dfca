package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.svc.Dataset())
	case http.MethodPut:
		s.replaceDataset(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// replaceDataset swaps in a whole new dataset (import). The body must
// be a full dataset document with an array transactions field.
func (s *Server) replaceDataset(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	ds, err := core.DecodeDataset(body)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, core.ErrNoTransactions) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	if err := s.svc.ReplaceDataset(r.Context(), ds); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Dataset replaced",
		"mode", s.svc.Mode(), "transactions", len(ds.Transactions))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleSaveToFile is the save-to-file side channel. With a body it
// validates and writes the posted dataset; without one it writes the
// current session dataset. Failure never rolls back local state.
func (s *Server) handleSaveToFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ds := s.svc.Dataset()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > 0 {
		posted, err := core.DecodeDataset(body)
		if err != nil {
			if errors.Is(err, core.ErrNoTransactions) {
				writeError(w, http.StatusBadRequest, "Invalid data: transactions array required")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ds = posted
	}

	if err := services.SaveToFile(ds, s.saveFilePath); err != nil {
		slog.ErrorContext(r.Context(), "Save to file failed",
			"path", s.saveFilePath, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save")
		return
	}

	slog.InfoContext(r.Context(), "Dataset saved to file",
		"path", s.saveFilePath, "transactions", len(ds.Transactions))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
