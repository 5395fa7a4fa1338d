package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindAll quizID 为 0 时返回全部题目，否则按测验过滤
func (r *QuestionRepository) FindAll(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Order("question_order ASC")
	if quizID != 0 {
		query = query.Where("quiz_id = ?", quizID)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.DB.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}
