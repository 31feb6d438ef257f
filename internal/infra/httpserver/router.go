package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appreview "github.com/bryanwahyu/creative-qc/internal/application/review"
	domai "github.com/bryanwahyu/creative-qc/internal/domain/ai"
	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
	"github.com/bryanwahyu/creative-qc/internal/middleware"
)

type Router struct {
	reviews *appreview.Service
}

func NewRouter(reviews *appreview.Service, healthCheckers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{reviews: reviews}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(healthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/reviews", r.wrap(r.handleStart))
		rt.Get("/reviews/archives", r.wrap(r.handleArchives))
		rt.Get("/reviews/{id}", r.wrap(r.handleGet))
		rt.Delete("/reviews/{id}", r.wrap(r.handleReset))
		rt.Post("/reviews/{id}/reanalyze", r.wrap(r.handleReanalyze))
		rt.Post("/reviews/{id}/overrides/{check}", r.wrap(r.handleToggleOverride))
		rt.Post("/reviews/{id}/interactions", r.wrap(r.handleInteraction))
		rt.Get("/reviews/{id}/report", r.wrap(r.handleReport))
		rt.Post("/reviews/{id}/export", r.wrap(r.handleExport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if isAIFailure(err) {
				middleware.IncrementAIFailures()
			}
			http.Error(w, err.Error(), statusFor(err))
		}
	}
}

func statusFor(err error) int {
	var upstream *domai.UpstreamError
	var parse *domai.ParseError
	var invalid *badRequestError
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, appreview.ErrSessionNotFound), errors.Is(err, appreview.ErrCheckNotFound):
		return http.StatusNotFound
	case errors.Is(err, appreview.ErrAnalysisInFlight):
		return http.StatusConflict
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInteractionActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoInteraction),
		errors.Is(err, domain.ErrLineTooShort),
		errors.Is(err, appreview.ErrNotAnalyzed),
		errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return upstream.StatusCode
	case errors.As(err, &parse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func isAIFailure(err error) bool {
	var upstream *domai.UpstreamError
	var parse *domai.ParseError
	return errors.Is(err, domai.ErrQuotaExceeded) || errors.As(err, &upstream) || errors.As(err, &parse)
}

type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/{tenant}/reviews
// Body: {"image": "data:image/png;base64,...", "width": 1080, "height": 1350, "format": "", "visual_type": "withSmile"}
func (r *Router) handleStart(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	var body struct {
		Image      string `json:"image"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Format     string `json:"format"`
		VisualType string `json:"visual_type"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateImageDataURL(body.Image); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateDimensions(body.Width, body.Height); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateFormat(body.Format); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateVisualType(body.VisualType); err != nil {
		return badRequest("%v", err)
	}

	view, err := r.reviews.Start(req.Context(), appreview.StartCommand{
		TenantID:   tenant,
		Image:      body.Image,
		Width:      body.Width,
		Height:     body.Height,
		Format:     body.Format,
		VisualType: body.VisualType,
	})
	if err != nil {
		return err
	}
	middleware.IncrementReviews()
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, view)
}

// GET /v1/{tenant}/reviews/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		return badRequest("%v", err)
	}

	view, err := r.reviews.Get(tenant, id)
	if err != nil {
		return err
	}
	return writeJSON(w, view)
}

// DELETE /v1/{tenant}/reviews/{id}
func (r *Router) handleReset(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := r.reviews.Reset(tenant, id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/{tenant}/reviews/{id}/reanalyze
func (r *Router) handleReanalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	view, err := r.reviews.Reanalyze(req.Context(), tenant, id)
	if err != nil {
		return err
	}
	middleware.IncrementReanalyses()
	return writeJSON(w, view)
}

// POST /v1/{tenant}/reviews/{id}/overrides/{check}
func (r *Router) handleToggleOverride(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	check := chi.URLParam(req, "check")

	view, err := r.reviews.ToggleOverride(tenant, id, check)
	if err != nil {
		return err
	}
	return writeJSON(w, view)
}

// POST /v1/{tenant}/reviews/{id}/interactions
// Body: {"action": "drag-start"|"resize-start"|"draw-start"|"move"|"release", "region": "...", "mode": "...", "x": 0-100, "y": 0-100}
func (r *Router) handleInteraction(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	var body struct {
		Action string  `json:"action"`
		Region string  `json:"region"`
		Mode   string  `json:"mode"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	if err := middleware.ValidatePercent(body.X, "x"); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidatePercent(body.Y, "y"); err != nil {
		return badRequest("%v", err)
	}
	at := domain.Point{X: body.X, Y: body.Y}

	switch body.Action {
	case "drag-start":
		if err := middleware.ValidateRegionID(body.Region); err != nil {
			return badRequest("%v", err)
		}
		if err := r.reviews.BeginDrag(tenant, id, body.Region, at); err != nil {
			return err
		}
		return writeJSON(w, map[string]string{"status": "dragging"})
	case "resize-start":
		if err := middleware.ValidateRegionID(body.Region); err != nil {
			return badRequest("%v", err)
		}
		if err := r.reviews.BeginResize(tenant, id, body.Region, at); err != nil {
			return err
		}
		return writeJSON(w, map[string]string{"status": "resizing"})
	case "draw-start":
		if err := middleware.ValidateDrawMode(body.Mode); err != nil {
			return badRequest("%v", err)
		}
		if err := r.reviews.BeginDraw(tenant, id, domain.DrawMode(body.Mode), at); err != nil {
			return err
		}
		return writeJSON(w, map[string]string{"status": "drawing"})
	case "move":
		preview, err := r.reviews.PointerMove(tenant, id, at)
		if err != nil {
			return err
		}
		return writeJSON(w, preview)
	case "release":
		view, err := r.reviews.Release(tenant, id, at)
		if err != nil {
			return err
		}
		return writeJSON(w, view)
	}
	return badRequest("unknown action: %s", body.Action)
}

// GET /v1/{tenant}/reviews/{id}/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	projection, err := r.reviews.Report(tenant, id)
	if err != nil {
		return err
	}
	return writeJSON(w, projection)
}

// POST /v1/{tenant}/reviews/{id}/export
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	archive, err := r.reviews.Export(req.Context(), tenant, id)
	if err != nil {
		return err
	}
	middleware.IncrementExports()
	return writeJSON(w, archive)
}

// GET /v1/{tenant}/reviews/archives?page=&page_size=
func (r *Router) handleArchives(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.reviews.ListArchives(req.Context(), tenant, middleware.ValidatePage(page), middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}
