package article

import (
	"net/http"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
)

// ArticleRequest is the request payload for Article creation.
type ArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Style   *string `json:"style"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	switch {
	case a.Title == nil:
		return resource.Missing("title")
	case a.Content == nil:
		return resource.Missing("content")
	case a.Style == nil:
		return resource.Missing("style")
	}

	return nil
}

func (a *ArticleRequest) Record() *model.Article {
	return &model.Article{
		Title:   *a.Title,
		Content: *a.Content,
		Style:   *a.Style,
	}
}

// ArticlePatch is the request payload for a partial update.
type ArticlePatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Style   *string `json:"style"`
}

func (a *ArticlePatch) Bind(r *http.Request) error { return nil }

func (a *ArticlePatch) Fields() map[string]any {
	fields := map[string]any{}
	resource.SetString(fields, "title", a.Title)
	resource.SetString(fields, "content", a.Content)
	resource.SetString(fields, "style", a.Style)

	return fields
}
