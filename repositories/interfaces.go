package repositories

import (
	"context"

	"tellsapi/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// FindByEmail loads only the email and password hash.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	AdjustFollowers(ctx context.Context, userID string, delta int) error
}

// Counter names a tell column that can be bumped by one.
type Counter string

const (
	ReactCounter   Counter = "react_count"
	CommentCounter Counter = "comment_count"
)

type TellRepository interface {
	Create(ctx context.Context, tell *models.Tell) error
	FindByID(ctx context.Context, id uint) (*models.Tell, error)
	ListByStatus(ctx context.Context, status models.TellStatus) ([]models.Tell, error)
	ListAnswered(ctx context.Context, receiverID string) ([]models.Tell, error)
	// Answer sets the reply and moves a pending tell to answered. It returns
	// ErrConflict when the tell is missing or already answered.
	Answer(ctx context.Context, id uint, reply string) (*models.Tell, error)
	Increment(ctx context.Context, id uint, counter Counter) (*models.Tell, error)
}

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	// Create writes both mirrored edge rows.
	Create(ctx context.Context, follower, following *models.User) error
	// Delete removes both mirrored edge rows.
	Delete(ctx context.Context, followerID, followingID string) error
	ListFollowing(ctx context.Context, userID string) ([]models.Following, error)
}

// Stores bundles repositories bound to the same handle, either the pool or a
// transaction.
type Stores struct {
	Users   UserRepository
	Tells   TellRepository
	Follows FollowRepository
}

// UnitOfWork runs a multi-step mutation. Whether the steps commit together
// depends on how it was constructed.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Stores) error) error
}
