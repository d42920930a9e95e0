package resource

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/blogful/internal/errresponse"
)

type ctxKey struct{}

// WithRecord returns a copy of ctx carrying rec for the rest of the request.
func WithRecord[T any](ctx context.Context, rec *T) context.Context {
	return context.WithValue(ctx, ctxKey{}, rec)
}

// FromContext returns the record loaded by Handler.Ctx.
func FromContext[T any](ctx context.Context) (*T, bool) {
	rec, ok := ctx.Value(ctxKey{}).(*T)

	return rec, ok && rec != nil
}

// Ctx middleware is used to load the record named by the {id} URL
// parameter. In case it could not be found, we stop here and return a 404.
// An id that is not an integer never resolves.
func (h *Handler[T]) Ctx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.render(w, r, errresponse.ErrNotFound(h.cfg.notFoundMessage()))

			return
		}

		rec, ok, err := h.svc.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, "load", err)

			return
		}

		if !ok {
			h.render(w, r, errresponse.ErrNotFound(h.cfg.notFoundMessage()))

			return
		}

		next.ServeHTTP(w, r.WithContext(WithRecord(r.Context(), rec)))
	})
}
