package resource

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogful/internal/errresponse"
	"github.com/SergeyParamoshkin/blogful/internal/logging"
)

const malformedBody = "Request body must be a valid JSON object"

// Handler serves the five CRUD routes of one entity.
type Handler[T any] struct {
	cfg    Config[T]
	svc    Service[T]
	logger *zap.SugaredLogger
}

func New[T any](cfg Config[T], svc Service[T], logger *zap.SugaredLogger) *Handler[T] {
	return &Handler[T]{cfg: cfg, svc: svc, logger: logger}
}

func (h *Handler[T]) Path() string {
	return h.cfg.Path
}

// Routes returns the router to mount at Path.
func (h *Handler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.List)    // GET /api/articles
	r.Post("/", h.Create) // POST /api/articles

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.Ctx)            // Load the record on the request context
		r.Get("/", h.Get)       // GET /api/articles/123
		r.Delete("/", h.Delete) // DELETE /api/articles/123
		r.Patch("/", h.Update)  // PATCH /api/articles/123
	})

	return r
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)

		return
	}

	list := make([]render.Renderer, 0, len(records))
	for i := range records {
		list = append(list, h.cfg.Serialize(&records[i]))
	}

	if err := render.RenderList(w, r, list); err != nil {
		h.fail(w, r, "render", err)
	}
}

// Create persists the posted record and returns it back to the client
// with its canonical location.
func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	data := h.cfg.NewCreate()
	if err := bind(r, data); err != nil {
		h.badRequest(w, r, err)

		return
	}

	rec, err := h.svc.Insert(r.Context(), data.Record())
	if err != nil {
		h.fail(w, r, "insert", err)

		return
	}

	w.Header().Set("Location", h.cfg.Path+"/"+strconv.FormatInt(h.cfg.ID(rec), 10))
	render.Status(r, http.StatusCreated)
	h.render(w, r, h.cfg.Serialize(rec))
}

// Get returns the record loaded by Ctx without touching the store again.
func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := FromContext[T](r.Context())
	if !ok {
		h.render(w, r, errresponse.ErrNotFound(h.cfg.notFoundMessage()))

		return
	}

	h.render(w, r, h.cfg.Serialize(rec))
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	rec, ok := FromContext[T](r.Context())
	if !ok {
		h.render(w, r, errresponse.ErrNotFound(h.cfg.notFoundMessage()))

		return
	}

	if err := h.svc.DeleteByID(r.Context(), h.cfg.ID(rec)); err != nil {
		h.fail(w, r, "delete", err)

		return
	}

	render.NoContent(w, r)
}

// Update applies the supplied fields only. The response carries no body;
// clients re-fetch to see the result.
func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := FromContext[T](r.Context())
	if !ok {
		h.render(w, r, errresponse.ErrNotFound(h.cfg.notFoundMessage()))

		return
	}

	data := h.cfg.NewPatch()
	if err := bind(r, data); err != nil {
		h.badRequest(w, r, err)

		return
	}

	fields := data.Fields()
	if len(fields) == 0 {
		msg := h.cfg.emptyUpdateMessage()
		h.render(w, r, errresponse.ErrInvalidRequest(errors.New(msg), msg))

		return
	}

	if err := h.svc.UpdateByID(r.Context(), h.cfg.ID(rec), fields); err != nil {
		h.fail(w, r, "update", err)

		return
	}

	render.NoContent(w, r)
}

// bind decodes the JSON body into v and runs its Bind hook. An empty body
// decodes as an empty object so that Bind can name what is missing.
func bind(r *http.Request, v render.Binder) error {
	if err := render.Decode(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return v.Bind(r)
}

func (h *Handler[T]) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing  *MissingFieldError
		invalid  *InvalidFieldError
		mistyped *json.UnmarshalTypeError
	)

	msg := malformedBody

	switch {
	case errors.As(err, &missing):
		msg = missing.Error()
	case errors.As(err, &invalid):
		msg = invalid.Error()
	case errors.As(err, &mistyped) && mistyped.Field != "":
		msg = (&InvalidFieldError{Field: mistyped.Field, Reason: "expected " + mistyped.Type.String()}).Error()
	}

	h.render(w, r, errresponse.ErrInvalidRequest(err, msg))
}

// fail is the shared path for unexpected faults: log the details, answer
// with an opaque 500.
func (h *Handler[T]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.FromContext(r.Context(), h.logger).Errorw("request failed",
		"entity", h.cfg.Name,
		"op", op,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	h.render(w, r, errresponse.ErrInternal(err))
}

func (h *Handler[T]) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logging.FromContext(r.Context(), h.logger).Errorw("render response", "error", err)
	}
}
