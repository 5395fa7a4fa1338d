package service

import (
	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
)

// CompletedAttemptLister 统计只聚合已完成的答题记录
type CompletedAttemptLister interface {
	FindCompletedByUser(userID uint) ([]model.Attempt, error)
}

type StatsService struct {
	Attempts CompletedAttemptLister
}

func NewStatsService(attempts CompletedAttemptLister) *StatsService {
	return &StatsService{Attempts: attempts}
}

type QuizStats struct {
	QuizTitle string  `json:"quiz_title"`
	Attempts  int     `json:"attempts"`
	BestScore float64 `json:"best_score"`
	AvgScore  float64 `json:"avg_score"`
}

type UserStats struct {
	TotalAttempts int         `json:"total_attempts"`
	AverageScore  float64     `json:"average_score"`
	QuizStats     []QuizStats `json:"quiz_stats"`
}

// GetUserStats 按测验聚合请求者已完成的答题记录：次数、最高分、平均分
func (s *StatsService) GetUserStats(userID uint) (*UserStats, error) {
	attempts, err := s.Attempts.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{QuizStats: []QuizStats{}}
	stats.TotalAttempts = len(attempts)
	if len(attempts) == 0 {
		return stats, nil
	}

	totalScore := 0.0
	perQuiz := make(map[uint]*QuizStats)
	scores := make(map[uint][]float64)
	order := []uint{}

	for _, a := range attempts {
		totalScore += a.Score

		qs, ok := perQuiz[a.QuizID]
		if !ok {
			title := ""
			if a.Quiz != nil {
				title = a.Quiz.Title
			}
			qs = &QuizStats{QuizTitle: title}
			perQuiz[a.QuizID] = qs
			order = append(order, a.QuizID)
		}
		qs.Attempts++
		if a.Score > qs.BestScore {
			qs.BestScore = a.Score
		}
		scores[a.QuizID] = append(scores[a.QuizID], a.Score)
	}

	stats.AverageScore = totalScore / float64(len(attempts))

	for _, quizID := range order {
		qs := perQuiz[quizID]
		sum := 0.0
		for _, s := range scores[quizID] {
			sum += s
		}
		qs.AvgScore = sum / float64(len(scores[quizID]))
		stats.QuizStats = append(stats.QuizStats, *qs)
	}

	return stats, nil
}
