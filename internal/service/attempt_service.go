package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
	"github.com/wafa-touil/projet-de-fin-de-session/pkg/logger"
	"github.com/wafa-touil/projet-de-fin-de-session/pkg/monitoring"
)

// AttemptStore 答题记录持久化接口，由 repository.AttemptRepository 实现
type AttemptStore interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	Complete(id uint, score float64, results model.JSONMap, completedAt time.Time) (bool, error)
	FindByUser(userID uint) ([]model.Attempt, error)
	DeleteByIDAndUser(id, userID uint) (bool, error)
}

// QuizFinder 提交时加载整卷题目
type QuizFinder interface {
	FindByID(id uint) (*model.Quiz, error)
}

type AttemptService struct {
	Attempts AttemptStore
	Quizzes  QuizFinder
}

func NewAttemptService(attempts AttemptStore, quizzes QuizFinder) *AttemptService {
	return &AttemptService{
		Attempts: attempts,
		Quizzes:  quizzes,
	}
}

// AttemptResponse 答题记录的对外表示
type AttemptResponse struct {
	ID           uint          `json:"id"`
	Quiz         uint          `json:"quiz"`
	QuizTitle    string        `json:"quiz_title"`
	User         *uint         `json:"user"`
	UserUsername string        `json:"user_username"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at"`
	Score        float64       `json:"score"`
	Answers      model.JSONMap `json:"answers"`
}

func NewAttemptResponse(attempt *model.Attempt) *AttemptResponse {
	quizTitle := ""
	if attempt.Quiz != nil {
		quizTitle = attempt.Quiz.Title
	}
	username := "Anonyme"
	if attempt.User != nil {
		username = attempt.User.Username
	}
	answers := attempt.Answers
	if answers == nil {
		answers = model.JSONMap{}
	}
	return &AttemptResponse{
		ID:           attempt.ID,
		Quiz:         attempt.QuizID,
		QuizTitle:    quizTitle,
		User:         attempt.UserID,
		UserUsername: username,
		StartedAt:    attempt.StartedAt,
		CompletedAt:  attempt.CompletedAt,
		Score:        attempt.Score,
		Answers:      answers,
	}
}

// StartAttempt 任何人都可以为任意测验开启一次答题；userID 为 nil 表示匿名
func (s *AttemptService) StartAttempt(quizID uint, userID *uint) (*AttemptResponse, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		QuizID:    quiz.ID,
		UserID:    userID,
		StartedAt: time.Now(),
		Score:     0,
		Answers:   model.JSONMap{},
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	logger.Log.Info("attempt created",
		zap.Uint("attempt_id", attempt.ID),
		zap.Uint("quiz_id", quizID),
		zap.Bool("anonymous", userID == nil))

	attempt.Quiz = quiz
	return NewAttemptResponse(attempt), nil
}

// GetAttempt 公开读取，持有标识符即可
func (s *AttemptService) GetAttempt(id uint) (*AttemptResponse, error) {
	attempt, err := s.Attempts.FindByID(id)
	if err != nil {
		return nil, err
	}
	return NewAttemptResponse(attempt), nil
}

// SubmitResult 提交响应；answers 与 results 内容一致，保留是为了兼容
// 既有前端的 Results 页面
type SubmitResult struct {
	Score          float64                   `json:"score"`
	CorrectCount   int                       `json:"correct_count"`
	TotalQuestions int                       `json:"total_questions"`
	Results        map[string]QuestionResult `json:"results"`
	Answers        map[string]QuestionResult `json:"answers"`
}

// SubmitAttempt 评分并将答题记录置为终态。completed_at 的 null→非null
// 转换通过条件更新保证至多发生一次：并发提交中落败的一方拿到
// ErrAttemptAlreadySubmitted，已存分数不会被重算或覆盖。
func (s *AttemptService) SubmitAttempt(id uint, answers map[string]string) (*SubmitResult, error) {
	logger.Log.Info("attempt submission received", zap.Uint("attempt_id", id))

	attempt, err := s.Attempts.FindByID(id)
	if err != nil {
		return nil, err
	}

	if attempt.IsCompleted() {
		logger.Log.Warn("attempt already submitted", zap.Uint("attempt_id", id))
		monitoring.SubmissionCounter.WithLabelValues("conflict").Inc()
		return nil, util.ErrAttemptAlreadySubmitted
	}

	quiz, err := s.Quizzes.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	summary := GradeQuiz(quiz.Questions, answers)
	logger.Log.Info("attempt scored",
		zap.Uint("attempt_id", id),
		zap.Float64("score", summary.Score),
		zap.Int("correct", summary.CorrectCount),
		zap.Int("total", summary.TotalQuestions))

	completed, err := s.Attempts.Complete(id, summary.Score, summary.ResultsMap(), time.Now())
	if err != nil {
		return nil, err
	}
	if !completed {
		// 并发提交竞争落败
		monitoring.SubmissionCounter.WithLabelValues("conflict").Inc()
		return nil, util.ErrAttemptAlreadySubmitted
	}

	logger.Log.Info("attempt saved", zap.Uint("attempt_id", id))
	monitoring.SubmissionCounter.WithLabelValues("completed").Inc()

	return &SubmitResult{
		Score:          summary.Score,
		CorrectCount:   summary.CorrectCount,
		TotalQuestions: summary.TotalQuestions,
		Results:        summary.Results,
		Answers:        summary.Results,
	}, nil
}

// ListAttempts 列表只对本人可见
func (s *AttemptService) ListAttempts(userID uint) ([]*AttemptResponse, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	res := make([]*AttemptResponse, len(attempts))
	for i := range attempts {
		res[i] = NewAttemptResponse(&attempts[i])
	}
	return res, nil
}

func (s *AttemptService) DeleteAttempt(id, userID uint) error {
	deleted, err := s.Attempts.DeleteByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrAttemptNotFound
	}
	return nil
}
