// Package user wires blog users into the shared CRUD pipeline and keeps
// their passwords hashed.
package user

import (
	"context"
	"fmt"

	"github.com/go-chi/render"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/resource"
	"github.com/SergeyParamoshkin/blogful/internal/store"
)

const Path = "/api/users"

func Resource() resource.Config[model.User] {
	return resource.Config[model.User]{
		Name:      "User",
		Path:      Path,
		Updatable: []string{"fullname", "username", "nickname", "password"},
		NewCreate: func() resource.CreateRequest[model.User] { return &UserRequest{} },
		NewPatch:  func() resource.PatchRequest { return &UserPatch{} },
		Serialize: func(u *model.User) render.Renderer { return NewUserResponse(u) },
		ID:        func(u *model.User) int64 { return u.ID },
	}
}

// Service stores users through next, replacing any plain-text password
// with its bcrypt hash on the way in.
type Service struct {
	next resource.Service[model.User]
	cost int
}

func NewService(next resource.Service[model.User], cost int) *Service {
	return &Service{next: next, cost: cost}
}

func (s *Service) ListAll(ctx context.Context) ([]model.User, error) {
	return s.next.ListAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.User, bool, error) {
	return s.next.GetByID(ctx, id)
}

func (s *Service) Insert(ctx context.Context, rec *model.User) (*model.User, error) {
	if rec.Password != nil {
		hash, err := s.hash(*rec.Password)
		if err != nil {
			return nil, err
		}

		rec.Password = &hash
	}

	return s.next.Insert(ctx, rec)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.next.DeleteByID(ctx, id)
}

func (s *Service) UpdateByID(ctx context.Context, id int64, fields map[string]any) error {
	if password, ok := fields["password"].(string); ok {
		hash, err := s.hash(password)
		if err != nil {
			return err
		}

		fields["password"] = hash
	}

	return s.next.UpdateByID(ctx, id, fields)
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(b), nil
}

func NewHandler(svc resource.Service[model.User], logger *zap.SugaredLogger) *resource.Handler[model.User] {
	return resource.New(Resource(), svc, logger)
}

func NewDBHandler(db *gorm.DB, logger *zap.SugaredLogger) *resource.Handler[model.User] {
	table := store.NewTable[model.User](db, "user")

	return NewHandler(NewService(table, bcrypt.DefaultCost), logger)
}
