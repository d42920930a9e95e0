package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is the data-access facade for one entity. T must be a gorm model
// with an "id" primary key.
type Table[T any] struct {
	db     *gorm.DB
	entity string
}

func NewTable[T any](db *gorm.DB, entity string) *Table[T] {
	return &Table[T]{db: db, entity: entity}
}

// ListAll returns every row in insertion order.
func (t *Table[T]) ListAll(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, t.fail("list", err)
	}

	return rows, nil
}

// GetByID reports ok=false when no row has the given id.
func (t *Table[T]) GetByID(ctx context.Context, id int64) (*T, bool, error) {
	var rec T

	err := t.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, t.fail("get", err)
	}

	return &rec, true, nil
}

// Insert stores rec and refreshes it from the RETURNING row, so database
// defaults such as the id and timestamps are filled in.
func (t *Table[T]) Insert(ctx context.Context, rec *T) (*T, error) {
	if err := t.db.WithContext(ctx).Clauses(clause.Returning{}).Create(rec).Error; err != nil {
		return nil, t.fail("insert", err)
	}

	return rec, nil
}

// DeleteByID succeeds whether or not the row exists.
func (t *Table[T]) DeleteByID(ctx context.Context, id int64) error {
	if err := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return t.fail("delete", err)
	}

	return nil
}

// UpdateByID sets only the given columns.
func (t *Table[T]) UpdateByID(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	if err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
		return t.fail("update", err)
	}

	return nil
}

func (t *Table[T]) fail(op string, err error) error {
	return &StorageError{Entity: t.entity, Operation: op, Err: mapError(err)}
}
