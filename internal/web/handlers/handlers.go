package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"media-gallery/internal/domain/media"
	"media-gallery/internal/gallery"
	"media-gallery/internal/observability"
	"media-gallery/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	container *services.Container
	session   *gallery.Session
	logger    *observability.Logger
}

func NewWithContainer(container *services.Container) *Handler {
	return &Handler{
		container: container,
		session:   container.Session(),
		logger:    container.Logger(),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(observability.AccessLogMiddleware(h.logger))
	r.Use(middleware.Recoverer)

	if metrics, err := observability.NewHTTPMetrics(observability.GetMeter()); err == nil {
		r.Use(observability.MetricsMiddleware(metrics))
	}
	r.Use(observability.TracingMiddleware(observability.GetTracer()))

	// Health checks
	r.Get("/healthz", h.healthzHandler)
	r.Get("/readyz", h.readyzHandler)

	// Media assets
	r.Get("/media/*", h.mediaHandler)

	// Web routes
	r.Get("/", h.indexHandler)
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.galleryHandler)
		r.Post("/filter/{filter}", h.filterHandler)
		r.Post("/media/{id}/open", h.openHandler)
		r.Post("/media/{id}/delete", h.deleteHandler)
		r.Post("/lightbox/close", h.lightboxHandler(gallery.CloseLightbox))
		r.Post("/lightbox/backdrop", h.lightboxHandler(gallery.ClickBackdrop))
		r.Post("/lightbox/escape", h.lightboxHandler(gallery.PressEscape))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/gallery", h.snapshotHandler)
		r.Get("/stats", h.statsHandler)
		r.Delete("/media/{id}", h.deleteMediaHandler)
	})

	return r
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/gallery", http.StatusFound)
}

func (h *Handler) galleryHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Render(r.Context())
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "page", newPageData(snap))
}

func (h *Handler) filterHandler(w http.ResponseWriter, r *http.Request) {
	f, err := media.ParseFilter(chi.URLParam(r, "filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatchPartial(w, r, gallery.SelectFilter(f))
}

func (h *Handler) openHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	h.dispatchPartial(w, r, gallery.ActivateTile(id))
}

func (h *Handler) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	h.dispatchPartial(w, r, gallery.ActivateDelete(id))
}

func (h *Handler) lightboxHandler(event func() gallery.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatchPartial(w, r, event())
	}
}

// mediaHandler serves the asset behind a catalogue src
func (h *Handler) mediaHandler(w http.ResponseWriter, r *http.Request) {
	src := chi.URLParam(r, "*")
	if !h.container.KnownSource(src) {
		http.NotFound(w, r)
		return
	}
	h.container.Assets().Serve(w, r, src)
}

// dispatchPartial applies ev and answers with the re-rendered app fragment
func (h *Handler) dispatchPartial(w http.ResponseWriter, r *http.Request, ev gallery.Event) {
	snap, err := h.session.Dispatch(r.Context(), ev)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "app", newPageData(snap))
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error(r.Context()).Err(err).Str("template", name).Msg("Failed to render template")
	}
}

func (h *Handler) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gallery.ErrSessionClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, gallery.ErrUnknownEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case r.Context().Err() != nil:
		// client went away
	default:
		h.logger.Error(r.Context()).Err(err).Msg("Gallery event failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid media ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
