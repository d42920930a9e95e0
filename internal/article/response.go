package article

import (
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/sanitize"
)

// ArticleResponse is the response payload for the Article data model.
// Title and content are escaped. Style is passed through unescaped.
type ArticleResponse struct {
	ID            int64     `json:"id"`
	Style         string    `json:"style"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	DatePublished time.Time `json:"date_published"`
}

func NewArticleResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:            a.ID,
		Style:         a.Style,
		Title:         sanitize.Text(a.Title),
		Content:       sanitize.Text(a.Content),
		DatePublished: a.DatePublished,
	}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
