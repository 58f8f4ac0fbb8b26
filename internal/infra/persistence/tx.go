package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/teamhub/server/internal/domain/collaboration"
)

type txKey struct{}

// Transactor implements collaboration.Transactor on GORM.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

var _ collaboration.Transactor = (*Transactor)(nil)

// RunInTransaction runs fn in a transaction carried by the context handed to
// fn. Nested calls run in a savepoint of the outer transaction.
func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return conn(ctx, t.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate requires the connection to be opened with TranslateError.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
