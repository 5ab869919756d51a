package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"tellsapi/models"
)

type tellRepository struct {
	db *gorm.DB
}

func NewTellRepository(db *gorm.DB) TellRepository {
	return &tellRepository{db: db}
}

func (r *tellRepository) Create(ctx context.Context, tell *models.Tell) error {
	return translate(r.db.WithContext(ctx).Create(tell).Error, "create tell")
}

func (r *tellRepository) FindByID(ctx context.Context, id uint) (*models.Tell, error) {
	var tell models.Tell
	if err := r.db.WithContext(ctx).First(&tell, id).Error; err != nil {
		return nil, translate(err, "find tell")
	}
	return &tell, nil
}

func (r *tellRepository) ListByStatus(ctx context.Context, status models.TellStatus) ([]models.Tell, error) {
	var tells []models.Tell
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id").
		Find(&tells).Error
	return tells, translate(err, "list tells by status")
}

func (r *tellRepository) ListAnswered(ctx context.Context, receiverID string) ([]models.Tell, error) {
	var tells []models.Tell
	err := r.db.WithContext(ctx).
		Select("id", "sender_id", "receiver_id", "message", "reply", "user_name").
		Where("receiver_id = ? AND status = ?", receiverID, models.TellAnswered).
		Order("id").
		Find(&tells).Error
	return tells, translate(err, "list answered tells")
}

func (r *tellRepository) Answer(ctx context.Context, id uint, reply string) (*models.Tell, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Tell{}).
		Where("id = ? AND status = ?", id, models.TellPending).
		Updates(map[string]interface{}{
			"reply":  reply,
			"status": models.TellAnswered,
		})
	if res.Error != nil {
		return nil, translate(res.Error, "answer tell")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrapf(ErrConflict, "tell %d missing or already answered", id)
	}
	return r.FindByID(ctx, id)
}

func (r *tellRepository) Increment(ctx context.Context, id uint, counter Counter) (*models.Tell, error) {
	switch counter {
	case ReactCounter, CommentCounter:
	default:
		return nil, errors.Errorf("unknown counter %q", counter)
	}

	col := string(counter)
	res := r.db.WithContext(ctx).
		Model(&models.Tell{}).
		Where("id = ?", id).
		Update(col, gorm.Expr("COALESCE("+col+", 0) + 1"))
	if res.Error != nil {
		return nil, translate(res.Error, "increment "+col)
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrapf(ErrNotFound, "tell %d", id)
	}
	return r.FindByID(ctx, id)
}
