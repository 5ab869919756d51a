package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"tellsapi/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("email", "password").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "find user by email")
	}
	return &user, nil
}

func (r *userRepository) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, translate(err, "find user by user_name")
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err, "find user by id")
	}
	return &user, nil
}

// AdjustFollowers moves the follower counter by delta in one statement. The
// counter never drops below zero: a decrement that would, or a missing user,
// updates nothing and returns ErrConflict.
func (r *userRepository) AdjustFollowers(ctx context.Context, userID string, delta int) error {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID)
	if delta < 0 {
		q = q.Where("followers >= ?", -delta)
	}
	res := q.Update("followers", gorm.Expr("followers + ?", delta))
	if res.Error != nil {
		return translate(res.Error, "adjust followers")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrConflict, "followers of %s not adjusted by %d", userID, delta)
	}
	return nil
}
