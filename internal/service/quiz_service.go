package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

const (
	MinQuestionsPerQuiz = 5
	MaxQuestionsPerQuiz = 20

	publicQuizCacheTTL = 10 * time.Minute
)

// QuizStore 测验持久化接口，由 repository.QuizRepository 实现
type QuizStore interface {
	CreateWithQuestions(quiz *model.Quiz, questions []model.Question) error
	FindAll() ([]model.Quiz, error)
	FindByID(id uint) (*model.Quiz, error)
	FindByIDAndCreator(id, creatorID uint) (*model.Quiz, error)
	Update(quiz *model.Quiz) error
	DeleteByIDAndCreator(id, creatorID uint) (bool, error)
}

// QuestionStore 题目持久化接口，由 repository.QuestionRepository 实现
type QuestionStore interface {
	Create(question *model.Question) error
	FindAll(quizID uint) ([]model.Question, error)
	FindByID(id uint) (*model.Question, error)
}

type QuizService struct {
	Quizzes   QuizStore
	Questions QuestionStore
	Redis     *redis.Client
}

func NewQuizService(quizzes QuizStore, questions QuestionStore, rdb *redis.Client) *QuizService {
	return &QuizService{
		Quizzes:   quizzes,
		Questions: questions,
		Redis:     rdb,
	}
}

type QuestionInput struct {
	QuestionType  string   `json:"question_type"`
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	// Order 由题目在数组中的位置决定，调用方传入的值被忽略
	Order int `json:"order"`
}

type QuizCreateRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Tags        string          `json:"tags"`
	Difficulty  string          `json:"difficulty"`
	Questions   []QuestionInput `json:"questions"`
}

// QuizResponse 测验的对外表示，附带题目数量与创建者用户名
type QuizResponse struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Creator         uint             `json:"creator"`
	CreatorUsername string           `json:"creator_username"`
	Tags            string           `json:"tags"`
	Difficulty      model.Difficulty `json:"difficulty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Questions       []model.Question `json:"questions"`
	QuestionCount   int              `json:"question_count"`
}

func NewQuizResponse(quiz *model.Quiz) *QuizResponse {
	creatorUsername := ""
	if quiz.Creator != nil {
		creatorUsername = quiz.Creator.Username
	}
	questions := quiz.Questions
	if questions == nil {
		questions = []model.Question{}
	}
	return &QuizResponse{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		Creator:         quiz.CreatorID,
		CreatorUsername: creatorUsername,
		Tags:            quiz.Tags,
		Difficulty:      quiz.Difficulty,
		CreatedAt:       quiz.CreatedAt,
		UpdatedAt:       quiz.UpdatedAt,
		Questions:       questions,
		QuestionCount:   len(questions),
	}
}

// ValidateQuestionCount 题目数量约束只在创建路径上生效
func ValidateQuestionCount(n int) error {
	if n < MinQuestionsPerQuiz {
		return util.ErrTooFewQuestions
	}
	if n > MaxQuestionsPerQuiz {
		return util.ErrTooManyQuestions
	}
	return nil
}

// CreateQuiz 创建测验及其题目。题目的 order 按传入数组下标（0起）
// 写入，与调用方提供的 order 字段无关。
func (s *QuizService) CreateQuiz(creator *model.User, req QuizCreateRequest) (*QuizResponse, error) {
	if err := ValidateQuestionCount(len(req.Questions)); err != nil {
		return nil, err
	}

	difficulty := model.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = model.Facile
	} else if !difficulty.Valid() {
		return nil, util.ErrInvalidDifficulty
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Difficulty:  difficulty,
		CreatorID:   creator.ID,
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		questionType := model.QuestionType(q.QuestionType)
		if q.QuestionType == "" {
			questionType = model.QCM
		} else if !questionType.Valid() {
			return nil, util.ErrInvalidQuestionType
		}
		questions[i] = model.Question{
			QuestionType:  questionType,
			QuestionText:  q.QuestionText,
			Options:       model.StringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Order:         i,
		}
	}

	if err := s.Quizzes.CreateWithQuestions(quiz, questions); err != nil {
		return nil, err
	}

	quiz.Creator = creator
	return NewQuizResponse(quiz), nil
}

func (s *QuizService) ListQuizzes() ([]*QuizResponse, error) {
	quizzes, err := s.Quizzes.FindAll()
	if err != nil {
		return nil, err
	}
	res := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		res[i] = NewQuizResponse(&quizzes[i])
	}
	return res, nil
}

func (s *QuizService) GetQuiz(id uint) (*QuizResponse, error) {
	quiz, err := s.Quizzes.FindByID(id)
	if err != nil {
		return nil, err
	}
	return NewQuizResponse(quiz), nil
}

// GetPublicQuiz 公开详情接口走Redis缓存，减轻热门测验的读压力
func (s *QuizService) GetPublicQuiz(ctx context.Context, id uint) (*QuizResponse, error) {
	cacheKey := fmt.Sprintf("quiz:public:%d", id)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached QuizResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	res, err := s.GetQuiz(id)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if b, err := json.Marshal(res); err == nil {
			s.Redis.Set(ctx, cacheKey, b, publicQuizCacheTTL)
		}
	}

	return res, nil
}

type QuizUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Difficulty  string `json:"difficulty"`
}

// UpdateQuiz 仅所有者可更新；查询按创建者过滤，非所有者得到 ErrQuizNotFound。
// 题目集合不在更新范围内，数量约束不在此路径复查。
func (s *QuizService) UpdateQuiz(requesterID, quizID uint, req QuizUpdateRequest) (*QuizResponse, error) {
	quiz, err := s.Quizzes.FindByIDAndCreator(quizID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.Tags != "" {
		quiz.Tags = req.Tags
	}
	if req.Difficulty != "" {
		difficulty := model.Difficulty(req.Difficulty)
		if !difficulty.Valid() {
			return nil, util.ErrInvalidDifficulty
		}
		quiz.Difficulty = difficulty
	}

	if err := s.Quizzes.Update(quiz); err != nil {
		return nil, err
	}

	s.invalidatePublicCache(quizID)
	return NewQuizResponse(quiz), nil
}

func (s *QuizService) DeleteQuiz(requesterID, quizID uint) error {
	deleted, err := s.Quizzes.DeleteByIDAndCreator(quizID, requesterID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrQuizNotFound
	}
	s.invalidatePublicCache(quizID)
	return nil
}

func (s *QuizService) ListQuestions(quizID uint) ([]model.Question, error) {
	return s.Questions.FindAll(quizID)
}

type QuestionCreateRequest struct {
	Quiz          uint     `json:"quiz" binding:"required"`
	QuestionType  string   `json:"question_type"`
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Order         int      `json:"order"`
}

// CreateQuestion 向既有测验追加单个题目。order 按调用方给定值写入；
// 题目数量约束只作用于测验的整体创建路径
func (s *QuizService) CreateQuestion(req QuestionCreateRequest) (*model.Question, error) {
	if _, err := s.Quizzes.FindByID(req.Quiz); err != nil {
		return nil, err
	}

	questionType := model.QuestionType(req.QuestionType)
	if req.QuestionType == "" {
		questionType = model.QCM
	} else if !questionType.Valid() {
		return nil, util.ErrInvalidQuestionType
	}

	question := &model.Question{
		QuizID:        req.Quiz,
		QuestionType:  questionType,
		QuestionText:  req.QuestionText,
		Options:       model.StringList(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Order:         req.Order,
	}
	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}

	s.invalidatePublicCache(req.Quiz)
	return question, nil
}

func (s *QuizService) GetQuestion(id uint) (*model.Question, error) {
	return s.Questions.FindByID(id)
}

func (s *QuizService) invalidatePublicCache(quizID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), fmt.Sprintf("quiz:public:%d", quizID))
}
