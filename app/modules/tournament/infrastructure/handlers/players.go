package tournamenthandlers

import (
	"io"
	"net/http"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
)

// AddPlayersRequest is the body of POST /api/tournament/players.
type AddPlayersRequest struct {
	Names []string `json:"names"`
}

// AddPlayersResponse reports how many names were new.
type AddPlayersResponse struct {
	Added int `json:"added"`
}

func (h *TournamentHandlers) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		h.fail(w, r, "ListPlayers", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *TournamentHandlers) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	player, err := h.service.GetPlayer(r.Context(), tournamentdomain.PlayerID(id))
	if err != nil {
		h.fail(w, r, "GetPlayer", err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *TournamentHandlers) HandleAddPlayers(w http.ResponseWriter, r *http.Request) {
	var req AddPlayersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	added, err := h.service.AddPlayers(r.Context(), req.Names)
	if err != nil {
		h.fail(w, r, "AddPlayers", err)
		return
	}
	writeJSON(w, http.StatusOK, AddPlayersResponse{Added: added})
}

// HandleImportPlayers reads the multipart field "file".
func (h *TournamentHandlers) HandleImportPlayers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	added, err := h.service.ImportPlayers(r.Context(), header.Filename, data)
	if err != nil {
		h.fail(w, r, "ImportPlayers", err)
		return
	}
	writeJSON(w, http.StatusOK, AddPlayersResponse{Added: added})
}

func (h *TournamentHandlers) HandleStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		h.fail(w, r, "Standings", err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *TournamentHandlers) HandleStandingsChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.StandingsChart(r.Context())
	if err != nil {
		h.fail(w, r, "StandingsChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
