package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource/resourcetest"
	"github.com/SergeyParamoshkin/blogful/internal/user"
)

var created = time.Date(2029, 1, 22, 16, 28, 32, 0, time.UTC)

func newRouter() (*resourcetest.Store[model.User], http.Handler) {
	store := resourcetest.NewStore(
		func(u *model.User, id int64) {
			u.ID = id
			u.DateCreated = created
		},
		func(u *model.User, fields map[string]any) {
			for k, v := range fields {
				s := v.(string)
				switch k {
				case "fullname":
					u.Fullname = s
				case "username":
					u.Username = s
				case "nickname":
					u.Nickname = &s
				case "password":
					u.Password = &s
				}
			}
		},
	)

	h := user.NewHandler(user.NewService(store, bcrypt.MinCost), zap.NewNop().Sugar())
	r := chi.NewRouter()
	r.Mount(h.Path(), h.Routes())

	return store, r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func storedPassword(t *testing.T, store *resourcetest.Store[model.User], id int64) string {
	t.Helper()

	u, ok, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, u.Password)

	return *u.Password
}

func TestCreateHashesPassword(t *testing.T) {
	store, router := newRouter()

	rec := serve(router, http.MethodPost, "/api/users",
		`{"fullname":"Test User","username":"test","nickname":"tester","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/1", rec.Header().Get("Location"))
	assert.JSONEq(t,
		`{"id":1,"fullname":"Test User","username":"test","nickname":"tester","date_created":"2029-01-22T16:28:32Z"}`,
		rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret")

	hash := storedPassword(t, store, 1)
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}

func TestCreateOptionalFields(t *testing.T) {
	_, router := newRouter()

	rec := serve(router, http.MethodPost, "/api/users", `{"fullname":"Test User","username":"test"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got user.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "", got.Nickname)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fullname", `{"username":"test"}`, "Missing fullname"},
		{"missing username", `{"fullname":"Test User"}`, "Missing username"},
		{
			"long password",
			`{"fullname":"Test User","username":"test","password":"` + strings.Repeat("x", 73) + `"}`,
			"Invalid password: must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, router := newRouter()

			rec := serve(router, http.MethodPost, "/api/users", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":{"message":"`+tt.want+`"}}`, rec.Body.String())
			assert.Zero(t, store.Len())
		})
	}
}

func TestPasswordNeverSerialized(t *testing.T) {
	store, router := newRouter()
	pw := "hunter2"
	store.Seed(model.User{Fullname: "A", Username: "a", Password: &pw})

	for _, target := range []string{"/api/users", "/api/users/1"} {
		rec := serve(router, http.MethodGet, target, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), pw)
	}
}

func TestMaliciousUserIsEscaped(t *testing.T) {
	store, router := newRouter()
	nick := `<img src=x onerror="alert(1)">`
	store.Seed(model.User{Fullname: `<script>alert("xss");</script>`, Username: "u<b>", Nickname: &nick})

	var got user.UserResponse
	require.NoError(t, json.Unmarshal(serve(router, http.MethodGet, "/api/users/1", "").Body.Bytes(), &got))

	assert.Equal(t, `&lt;script&gt;alert("xss");&lt;/script&gt;`, got.Fullname)
	assert.Equal(t, "u&lt;b&gt;", got.Username)
	assert.Equal(t, `&lt;img src=x onerror="alert(1)"&gt;`, got.Nickname)
}

func TestUpdate(t *testing.T) {
	store, router := newRouter()
	store.Seed(model.User{Fullname: "A", Username: "a"})

	rec := serve(router, http.MethodPatch, "/api/users/1", `{"password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"error":{"message":"Request must contain either 'fullname', or 'username', or 'nickname', or 'password'"}}`,
		rec.Body.String())

	rec = serve(router, http.MethodPatch, "/api/users/1", `{"nickname":"ace","password":"changed"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	hash := storedPassword(t, store, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("changed")))

	var got user.UserResponse
	require.NoError(t, json.Unmarshal(serve(router, http.MethodGet, "/api/users/1", "").Body.Bytes(), &got))
	assert.Equal(t, "ace", got.Nickname)
	assert.Equal(t, "A", got.Fullname)
	assert.Equal(t, "a", got.Username)
}
