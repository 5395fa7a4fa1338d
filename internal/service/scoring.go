package service

import (
	"strconv"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
)

// QuestionResult 单题评分明细
type QuestionResult struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradeSummary 整卷评分结果
type GradeSummary struct {
	Score          float64                   `json:"score"`
	CorrectCount   int                       `json:"correct_count"`
	TotalQuestions int                       `json:"total_questions"`
	Results        map[string]QuestionResult `json:"results"`
}

// GradeQuiz 对照标准答案批改一次提交。纯函数：
//   - 以题目ID的十进制字符串作为答案键，缺失的键按空串作答处理
//   - 判分为精确字符串比较，区分大小写、不做裁剪
//   - 得分为百分比浮点数，不做舍入；零题测验得 0 分
func GradeQuiz(questions []model.Question, answers map[string]string) GradeSummary {
	correctCount := 0
	results := make(map[string]QuestionResult, len(questions))

	for _, q := range questions {
		questionID := strconv.FormatUint(uint64(q.ID), 10)
		userAnswer := answers[questionID]
		isCorrect := userAnswer == q.CorrectAnswer
		if isCorrect {
			correctCount++
		}
		results[questionID] = QuestionResult{
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		}
	}

	score := 0.0
	if len(questions) > 0 {
		score = float64(correctCount) / float64(len(questions)) * 100
	}

	return GradeSummary{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(questions),
		Results:        results,
	}
}

// ResultsMap 将评分明细转为可落库的JSON映射
func (g GradeSummary) ResultsMap() model.JSONMap {
	m := make(model.JSONMap, len(g.Results))
	for id, r := range g.Results {
		m[id] = map[string]interface{}{
			"user_answer":    r.UserAnswer,
			"correct_answer": r.CorrectAnswer,
			"is_correct":     r.IsCorrect,
		}
	}
	return m
}
