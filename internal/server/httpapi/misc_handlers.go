package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/models"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type connectAccountRequest struct {
	Platform    string `json:"platform"`
	AccountName string `json:"account_name"`
	AccountID   string `json:"account_id"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := s.accounts.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleConnectAccount(w http.ResponseWriter, r *http.Request) {
	var req connectAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	account, err := s.accounts.Connect(r.Context(), userID(r), req.Platform, req.AccountName, req.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleSetAccountActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	if err := s.accounts.SetActive(r.Context(), r.PathValue("id"), userID(r), req.Active); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDisconnectAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Disconnect(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAnalytics(w http.ResponseWriter, r *http.Request) {
	list, err := s.analytics.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleRecordAnalytics ingests one engagement row, typically pushed by an
// external collector.
func (s *Server) handleRecordAnalytics(w http.ResponseWriter, r *http.Request) {
	var entry models.AnalyticsEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil || entry.PostID == "" {
		writeError(w, common.ErrorValidation)
		return
	}

	created, err := s.analytics.Record(r.Context(), &entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analytics.Summary(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type copywriterRequest struct {
	Prompt   string `json:"prompt"`
	Tone     string `json:"tone"`
	Platform string `json:"platform"`
}

func (s *Server) handleCopywriter(w http.ResponseWriter, r *http.Request) {
	var req copywriterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeError(w, common.ErrorValidation)
		return
	}
	writeJSON(w, http.StatusOK, s.copywriter.Generate(req.Prompt, req.Tone, req.Platform))
}
