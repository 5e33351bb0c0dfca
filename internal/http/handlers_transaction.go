package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 20 // 1MB

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.svc.Transactions())
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	created, err := s.svc.AddTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to add transaction",
			"error", err, "category", tx.Category, "date", tx.Date.String())
		writeError(w, statusForError(err), err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", created.ID,
		"type", created.Type,
		"amount_cents", created.Amount.Cents,
		"category", created.Category)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	tx, ok := decodeTransaction(w, r)
	if !ok {
		return
	}
	tx.ID = id

	if err := s.svc.UpdateTransaction(r.Context(), tx); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Transaction updated", "id", id)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Transaction deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeTransaction reads and validates the request body shape.
// Unparseable amounts or dates are rejected here; they never reach the
// dataset.
func decodeTransaction(w http.ResponseWriter, r *http.Request) (core.Transaction, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return core.Transaction{}, false
	}

	var tx core.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrInvalidDate) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "invalid transaction: "+err.Error())
		return core.Transaction{}, false
	}
	return tx, true
}
