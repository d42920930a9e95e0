package article

import (
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blogful/internal/model"
	"github.com/SergeyParamoshkin/blogful/internal/store"
)

func NewService(db *gorm.DB) *store.Table[model.Article] {
	return store.NewTable[model.Article](db, "article")
}
