package service

import (
	"math"
	"testing"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
)

func makeQuestions(answers ...string) []model.Question {
	questions := make([]model.Question, len(answers))
	for i, a := range answers {
		questions[i] = model.Question{
			BaseModel:     model.BaseModel{ID: uint(i + 1)},
			QuestionType:  model.QCM,
			QuestionText:  "Question",
			CorrectAnswer: a,
			Order:         i,
		}
	}
	return questions
}

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name        string
		questions   []model.Question
		answers     map[string]string
		wantScore   float64
		wantCorrect int
	}{
		{
			name:      "four of five correct",
			questions: makeQuestions("Paris", "Vrai", "B", "Faux", "C"),
			answers: map[string]string{
				"1": "Paris",
				"2": "Vrai",
				"3": "B",
				"4": "Vrai",
				"5": "C",
			},
			wantScore:   80,
			wantCorrect: 4,
		},
		{
			name:      "half correct",
			questions: makeQuestions("A", "B"),
			answers: map[string]string{
				"1": "A",
				"2": "C",
			},
			wantScore:   50,
			wantCorrect: 1,
		},
		{
			name:        "all answers missing",
			questions:   makeQuestions("A", "B", "C"),
			answers:     map[string]string{},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "nil answers map",
			questions:   makeQuestions("A", "B"),
			answers:     nil,
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:      "comparison is case sensitive",
			questions: makeQuestions("Paris"),
			answers: map[string]string{
				"1": "paris",
			},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:      "comparison does not trim whitespace",
			questions: makeQuestions("Paris"),
			answers: map[string]string{
				"1": "Paris ",
			},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:      "extra answer keys are ignored",
			questions: makeQuestions("A"),
			answers: map[string]string{
				"1":  "A",
				"99": "B",
			},
			wantScore:   100,
			wantCorrect: 1,
		},
		{
			name:        "no questions scores zero",
			questions:   nil,
			answers:     map[string]string{"1": "A"},
			wantScore:   0,
			wantCorrect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeQuiz(tt.questions, tt.answers)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.CorrectCount != tt.wantCorrect {
				t.Errorf("CorrectCount = %d, want %d", got.CorrectCount, tt.wantCorrect)
			}
			if got.TotalQuestions != len(tt.questions) {
				t.Errorf("TotalQuestions = %d, want %d", got.TotalQuestions, len(tt.questions))
			}
			if len(got.Results) != len(tt.questions) {
				t.Errorf("len(Results) = %d, want %d", len(got.Results), len(tt.questions))
			}
		})
	}
}

func TestGradeQuizScoreNotRounded(t *testing.T) {
	questions := makeQuestions("A", "B", "C")
	answers := map[string]string{"1": "A"}

	got := GradeQuiz(questions, answers)
	want := 1.0 / 3.0 * 100
	if math.Abs(got.Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got.Score, want)
	}
}

func TestGradeQuizResultDetails(t *testing.T) {
	questions := makeQuestions("Paris", "Vrai")
	answers := map[string]string{"1": "Paris", "2": "Faux"}

	got := GradeQuiz(questions, answers)

	r1, ok := got.Results["1"]
	if !ok {
		t.Fatal("missing result for question 1")
	}
	if !r1.IsCorrect || r1.UserAnswer != "Paris" || r1.CorrectAnswer != "Paris" {
		t.Errorf("result 1 = %+v", r1)
	}

	r2, ok := got.Results["2"]
	if !ok {
		t.Fatal("missing result for question 2")
	}
	if r2.IsCorrect || r2.UserAnswer != "Faux" || r2.CorrectAnswer != "Vrai" {
		t.Errorf("result 2 = %+v", r2)
	}
}

func TestGradeSummaryResultsMap(t *testing.T) {
	questions := makeQuestions("A")
	summary := GradeQuiz(questions, map[string]string{"1": "A"})

	m := summary.ResultsMap()
	entry, ok := m["1"].(map[string]interface{})
	if !ok {
		t.Fatalf("ResultsMap entry type = %T", m["1"])
	}
	if entry["user_answer"] != "A" || entry["correct_answer"] != "A" || entry["is_correct"] != true {
		t.Errorf("entry = %v", entry)
	}
}
