// Package resource implements the CRUD pipeline shared by every entity:
// bind and validate the request, call the service, serialize the result.
// An entity plugs in through Config.
package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-chi/render"
)

// Service is the data-access contract a Handler drives. GetByID reports a
// missing record with ok=false rather than an error.
type Service[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (rec *T, ok bool, err error)
	Insert(ctx context.Context, rec *T) (*T, error)
	DeleteByID(ctx context.Context, id int64) error
	UpdateByID(ctx context.Context, id int64, fields map[string]any) error
}

// CreateRequest is the payload of a POST. Bind must return a
// *MissingFieldError naming the first absent required field.
type CreateRequest[T any] interface {
	render.Binder
	Record() *T
}

// PatchRequest is the payload of a PATCH. Fields returns the supplied
// columns only.
type PatchRequest interface {
	render.Binder
	Fields() map[string]any
}

type Config[T any] struct {
	// Name is the entity name used in client messages, e.g. "Article".
	Name string
	// Path is where the resource is mounted, e.g. "/api/articles".
	Path string
	// Updatable lists the PATCH columns in the order they are reported.
	Updatable []string

	NewCreate func() CreateRequest[T]
	NewPatch  func() PatchRequest
	Serialize func(*T) render.Renderer
	ID        func(*T) int64
}

func (c Config[T]) notFoundMessage() string {
	return c.Name + " doesn't exist"
}

func (c Config[T]) emptyUpdateMessage() string {
	quoted := make([]string, len(c.Updatable))
	for i, f := range c.Updatable {
		quoted[i] = fmt.Sprintf("'%s'", f)
	}

	return "Request must contain either " + strings.Join(quoted, ", or ")
}
