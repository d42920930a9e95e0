package comment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
	"github.com/SergeyParamoshkin/blogful/internal/sanitize"
)

// commentFields is the body shared by create and update. date_commented
// is parsed by hand so a bad timestamp can be reported by name.
type commentFields struct {
	Text          *string    `json:"text"`
	DateCommented *time.Time `json:"-"`
	ArticleID     *int64     `json:"article_id"`
	UserID        *int64     `json:"user_id"`
}

func (c *commentFields) UnmarshalJSON(b []byte) error {
	type plain commentFields

	aux := struct {
		*plain
		DateCommented *string `json:"date_commented"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	if aux.DateCommented != nil {
		t, err := time.Parse(time.RFC3339Nano, *aux.DateCommented)
		if err != nil {
			return &resource.InvalidFieldError{Field: "date_commented", Reason: "must be an RFC 3339 timestamp"}
		}

		c.DateCommented = &t
	}

	return nil
}

// CommentRequest is the request payload for Comment creation. Whether
// article_id and user_id point at existing rows is up to the database.
type CommentRequest struct {
	commentFields
}

func (c *CommentRequest) Bind(r *http.Request) error {
	switch {
	case c.Text == nil:
		return resource.Missing("text")
	case c.DateCommented == nil:
		return resource.Missing("date_commented")
	case c.ArticleID == nil:
		return resource.Missing("article_id")
	case c.UserID == nil:
		return resource.Missing("user_id")
	}

	return nil
}

func (c *CommentRequest) Record() *model.Comment {
	return &model.Comment{
		Text:          *c.Text,
		DateCommented: *c.DateCommented,
		ArticleID:     *c.ArticleID,
		UserID:        *c.UserID,
	}
}

type CommentPatch struct {
	commentFields
}

func (c *CommentPatch) Bind(r *http.Request) error { return nil }

func (c *CommentPatch) Fields() map[string]any {
	fields := map[string]any{}
	resource.SetString(fields, "text", c.Text)
	resource.Set(fields, "date_commented", c.DateCommented)
	resource.Set(fields, "article_id", c.ArticleID)
	resource.Set(fields, "user_id", c.UserID)

	return fields
}

// CommentResponse is the response payload for the Comment data model.
type CommentResponse struct {
	ID            int64     `json:"id"`
	Text          string    `json:"text"`
	DateCommented time.Time `json:"date_commented"`
	ArticleID     int64     `json:"article_id"`
	UserID        int64     `json:"user_id"`
}

func NewCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:            c.ID,
		Text:          sanitize.Text(c.Text),
		DateCommented: c.DateCommented,
		ArticleID:     c.ArticleID,
		UserID:        c.UserID,
	}
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
