package tournamenthandlers

import (
	"errors"
	"io"
	"net/http"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
)

// ResultRequest is the body of POST /api/tournament/matches/{id}/result.
type ResultRequest struct {
	Score1 *int `json:"player1_score"`
	Score2 *int `json:"player2_score"`
}

// BackfillRequest is the optional body of POST /api/tournament/bracket/backfill.
type BackfillRequest struct {
	Seed *int64 `json:"seed"`
}

// ResetRequest is the optional body of POST /api/tournament/reset.
type ResetRequest struct {
	KeepPlayers bool `json:"keep_players"`
}

// CountResponse reports how many placements an operation made.
type CountResponse struct {
	Count int `json:"count"`
}

func (h *TournamentHandlers) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.ListMatches(r.Context())
	if err != nil {
		h.fail(w, r, "ListMatches", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *TournamentHandlers) HandleListPendingMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.ListPendingMatches(r.Context())
	if err != nil {
		h.fail(w, r, "ListPendingMatches", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *TournamentHandlers) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	match, err := h.service.GetMatch(r.Context(), tournamentdomain.MatchID(id))
	if err != nil {
		h.fail(w, r, "GetMatch", err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *TournamentHandlers) HandleExportDOT(w http.ResponseWriter, r *http.Request) {
	dot, err := h.service.ExportBracketDOT(r.Context())
	if err != nil {
		h.fail(w, r, "ExportBracketDOT", err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, dot)
}

func (h *TournamentHandlers) HandleSubmitResult(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	var req ResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score1 == nil || req.Score2 == nil {
		writeError(w, http.StatusBadRequest, "both scores are required")
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	summary, err := h.service.SubmitResult(r.Context(), tournamentdomain.MatchID(id), *req.Score1, *req.Score2)
	if err != nil {
		h.fail(w, r, "SubmitResult", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *TournamentHandlers) HandleGenerateBracket(w http.ResponseWriter, r *http.Request) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	summary, err := h.service.GenerateBracket(r.Context())
	if err != nil {
		h.fail(w, r, "GenerateBracket", err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (h *TournamentHandlers) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	n, err := h.service.AdvanceWinners(r.Context())
	if err != nil {
		h.fail(w, r, "AdvanceWinners", err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (h *TournamentHandlers) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	var req BackfillRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	n, err := h.service.Backfill(r.Context(), req.Seed)
	if err != nil {
		h.fail(w, r, "Backfill", err)
		return
	}
	if n > 0 {
		if _, err := h.service.AdvanceWinners(r.Context()); err != nil {
			h.fail(w, r, "AdvanceWinners", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (h *TournamentHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := h.service.ResetTournament(r.Context(), req.KeepPlayers); err != nil {
		h.fail(w, r, "ResetTournament", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptionalJSON treats an empty body as the zero value.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	err := decodeJSON(w, r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
