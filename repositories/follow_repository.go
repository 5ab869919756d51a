package repositories

import (
	"context"

	"gorm.io/gorm"

	"tellsapi/models"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Following{}).
		Where("user_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, translate(err, "check following")
}

func (r *followRepository) Create(ctx context.Context, follower, following *models.User) error {
	db := r.db.WithContext(ctx)

	err := db.Create(&models.Follower{
		UserID:     following.UserID,
		FollowerID: follower.UserID,
		UserName:   follower.UserName,
	}).Error
	if err != nil {
		return translate(err, "create follower row")
	}

	err = db.Create(&models.Following{
		UserID:      follower.UserID,
		FollowingID: following.UserID,
		UserName:    following.UserName,
	}).Error
	return translate(err, "create following row")
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	db := r.db.WithContext(ctx)

	err := db.Where("user_id = ? AND follower_id = ?", followingID, followerID).
		Delete(&models.Follower{}).Error
	if err != nil {
		return translate(err, "delete follower row")
	}

	err = db.Where("user_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Following{}).Error
	return translate(err, "delete following row")
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.Following, error) {
	var following []models.Following
	err := r.db.WithContext(ctx).
		Preload("Target", func(db *gorm.DB) *gorm.DB {
			return db.Select("user_id", "user_name", "email")
		}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&following).Error
	return following, translate(err, "list following")
}
