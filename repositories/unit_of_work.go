package repositories

import (
	"context"

	"gorm.io/gorm"
)

// NewStores binds every repository to db.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Users:   NewUserRepository(db),
		Tells:   NewTellRepository(db),
		Follows: NewFollowRepository(db),
	}
}

type gormUnitOfWork struct {
	db     *gorm.DB
	atomic bool
}

// NewUnitOfWork returns a UnitOfWork over db. With atomic set, fn runs inside a
// transaction that commits when fn returns nil and rolls back otherwise.
// Without it every step is its own round trip and a mid-sequence failure
// leaves earlier steps applied.
func NewUnitOfWork(db *gorm.DB, atomic bool) UnitOfWork {
	return &gormUnitOfWork{db: db, atomic: atomic}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(Stores) error) error {
	if !u.atomic {
		return fn(NewStores(u.db))
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
