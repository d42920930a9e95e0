package user

import (
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
	"github.com/SergeyParamoshkin/blogful/internal/sanitize"
)

// bcrypt only looks at the first 72 bytes.
const maxPasswordLen = 72

// UserRequest is the request payload for User creation.
type UserRequest struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
}

func (u *UserRequest) Bind(r *http.Request) error {
	switch {
	case u.Fullname == nil:
		return resource.Missing("fullname")
	case u.Username == nil:
		return resource.Missing("username")
	}

	return checkPassword(u.Password)
}

func (u *UserRequest) Record() *model.User {
	return &model.User{
		Fullname: *u.Fullname,
		Username: *u.Username,
		Nickname: u.Nickname,
		Password: u.Password,
	}
}

type UserPatch struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
}

func (u *UserPatch) Bind(r *http.Request) error {
	return checkPassword(u.Password)
}

func (u *UserPatch) Fields() map[string]any {
	fields := map[string]any{}
	resource.SetString(fields, "fullname", u.Fullname)
	resource.SetString(fields, "username", u.Username)
	resource.SetString(fields, "nickname", u.Nickname)
	resource.SetString(fields, "password", u.Password)

	return fields
}

func checkPassword(p *string) error {
	if p != nil && len(*p) > maxPasswordLen {
		return &resource.InvalidFieldError{Field: "password", Reason: "must be at most 72 bytes"}
	}

	return nil
}

// UserResponse is the response payload for the User data model. It has no
// password field.
type UserResponse struct {
	ID          int64     `json:"id"`
	Fullname    string    `json:"fullname"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname"`
	DateCreated time.Time `json:"date_created"`
}

func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Fullname:    sanitize.Text(u.Fullname),
		Username:    sanitize.Text(u.Username),
		Nickname:    sanitize.Ptr(u.Nickname),
		DateCreated: u.DateCreated,
	}
}

func (rd *UserResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
