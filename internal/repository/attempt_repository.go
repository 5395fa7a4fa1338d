package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.DB.Preload("Quiz").First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// Complete 条件更新：仅当 completed_at 仍为空时写入评分结果。
// 两个并发提交只有一个能命中该行，落败者返回 false 并观察到 Conflict。
func (r *AttemptRepository) Complete(id uint, score float64, results model.JSONMap, completedAt time.Time) (bool, error) {
	res := r.DB.Model(&model.Attempt{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"score":        score,
			"answers":      results,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttemptRepository) FindByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindCompletedByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("Quiz").
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// DeleteByIDAndUser 删除按所有者过滤，非所有者观察到 not found
func (r *AttemptRepository) DeleteByIDAndUser(id, userID uint) (bool, error) {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Attempt{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
