// Package article wires the blog article resource into the shared CRUD
// pipeline.
package article

import (
	"github.com/go-chi/render"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
)

const Path = "/api/articles"

// Resource describes articles to resource.Handler.
func Resource() resource.Config[model.Article] {
	return resource.Config[model.Article]{
		Name:      "Article",
		Path:      Path,
		Updatable: []string{"title", "content", "style"},
		NewCreate: func() resource.CreateRequest[model.Article] { return &ArticleRequest{} },
		NewPatch:  func() resource.PatchRequest { return &ArticlePatch{} },
		Serialize: func(a *model.Article) render.Renderer { return NewArticleResponse(a) },
		ID:        func(a *model.Article) int64 { return a.ID },
	}
}

func NewHandler(svc resource.Service[model.Article], logger *zap.SugaredLogger) *resource.Handler[model.Article] {
	return resource.New(Resource(), svc, logger)
}

// NewDBHandler serves articles straight from the database.
func NewDBHandler(db *gorm.DB, logger *zap.SugaredLogger) *resource.Handler[model.Article] {
	return NewHandler(NewService(db), logger)
}
