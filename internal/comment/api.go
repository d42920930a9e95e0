// Package comment wires article comments into the shared CRUD pipeline.
package comment

import (
	"github.com/go-chi/render"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
	"github.com/SergeyParamoshkin/blogful/internal/store"
)

const Path = "/api/comments"

func Resource() resource.Config[model.Comment] {
	return resource.Config[model.Comment]{
		Name:      "Comment",
		Path:      Path,
		Updatable: []string{"text", "date_commented", "article_id", "user_id"},
		NewCreate: func() resource.CreateRequest[model.Comment] { return &CommentRequest{} },
		NewPatch:  func() resource.PatchRequest { return &CommentPatch{} },
		Serialize: func(c *model.Comment) render.Renderer { return NewCommentResponse(c) },
		ID:        func(c *model.Comment) int64 { return c.ID },
	}
}

func NewService(db *gorm.DB) *store.Table[model.Comment] {
	return store.NewTable[model.Comment](db, "comment")
}

func NewHandler(svc resource.Service[model.Comment], logger *zap.SugaredLogger) *resource.Handler[model.Comment] {
	return resource.New(Resource(), svc, logger)
}

func NewDBHandler(db *gorm.DB, logger *zap.SugaredLogger) *resource.Handler[model.Comment] {
	return NewHandler(NewService(db), logger)
}
