package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SergeyParamoshkin/blogful/internal/article"
	"github.com/SergeyParamoshkin/blogful/internal/comment"
	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource/resourcetest"
	"github.com/SergeyParamoshkin/blogful/internal/user"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newTestApp(db Pinger) *App {
	nop := zap.NewNop().Sugar()
	noUpdate := func(*model.Article, map[string]any) {}

	return &App{
		sugarLogger: nop,
		db:          db,
		resources: []Resource{
			article.NewHandler(resourcetest.NewStore(func(a *model.Article, id int64) { a.ID = id }, noUpdate), nop),
			comment.NewHandler(resourcetest.NewStore(
				func(c *model.Comment, id int64) { c.ID = id },
				func(*model.Comment, map[string]any) {},
			), nop),
			user.NewHandler(user.NewService(resourcetest.NewStore(
				func(u *model.User, id int64) { u.ID = id },
				func(*model.User, map[string]any) {},
			), bcrypt.MinCost), nop),
		},
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestRoot(t *testing.T) {
	rec := get(newTestApp(nil).Router(), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root.", rec.Body.String())
}

func TestPing(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		rec := get(newTestApp(pinger{}).Router(), "/ping")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		rec := get(newTestApp(pinger{err: errors.New("dial tcp: connection refused")}).Router(), "/ping")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"database unavailable"}}`, rec.Body.String())
	})
}

func TestResourcesMounted(t *testing.T) {
	router := newTestApp(pinger{}).Router()

	for _, path := range []string{"/api/articles", "/api/comments", "/api/users"} {
		rec := get(router, path)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"), path)
	}

	assert.Equal(t, http.StatusNotFound, get(router, "/articles").Code)
}
