package tournamenthandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	maxJSONBody   = 64 << 10
	maxUploadBody = 5 << 20
)

// TournamentHandlers serves the tournament REST API.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer

	// writeMu serialises bracket-mutating requests.
	writeMu sync.Mutex
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(
	service tournamentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) *TournamentHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("tournament-handlers")
	}
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// RegisterRoutes mounts the API under /api/tournament. Mutating routes go through requireAdmin.
func (h *TournamentHandlers) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/tournament", func(r chi.Router) {
		r.Use(h.traceRequest)

		r.Get("/players", h.HandleListPlayers)
		r.Get("/players/{id}", h.HandleGetPlayer)
		r.Get("/standings", h.HandleStandings)
		r.Get("/standings/chart", h.HandleStandingsChart)
		r.Get("/matches", h.HandleListMatches)
		r.Get("/matches/pending", h.HandleListPendingMatches)
		r.Get("/matches/{id}", h.HandleGetMatch)
		r.Get("/bracket.dot", h.HandleExportDOT)

		r.Group(func(r chi.Router) {
			if requireAdmin != nil {
				r.Use(requireAdmin)
			}
			r.Post("/players", h.HandleAddPlayers)
			r.Post("/players/import", h.HandleImportPlayers)
			r.Post("/matches/{id}/result", h.HandleSubmitResult)
			r.Post("/bracket", h.HandleGenerateBracket)
			r.Post("/bracket/advance", h.HandleAdvance)
			r.Post("/bracket/backfill", h.HandleBackfill)
			r.Post("/reset", h.HandleReset)
		})
	})
}

// traceRequest wraps each API call in a server span named after the method and path.
func (h *TournamentHandlers) traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), "TournamentHandlers "+r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusFor maps domain failures onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournamentdomain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, tournamentdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournamentdomain.ErrAlreadyClosed),
		errors.Is(err, tournamentdomain.ErrIncompleteMatch):
		return http.StatusConflict
	case errors.Is(err, tournamentdomain.ErrTiedScore):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *TournamentHandlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Tournament request failed",
			attr.String("operation", op),
			attr.Error(err),
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
