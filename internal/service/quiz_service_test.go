package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type fakeQuizStore struct {
	quizzes map[uint]*model.Quiz
	nextID  uint
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: map[uint]*model.Quiz{}, nextID: 1}
}

func (f *fakeQuizStore) CreateWithQuestions(quiz *model.Quiz, questions []model.Question) error {
	quiz.ID = f.nextID
	f.nextID++
	for i := range questions {
		questions[i].ID = uint(i + 1)
		questions[i].QuizID = quiz.ID
	}
	quiz.Questions = questions
	copied := *quiz
	f.quizzes[quiz.ID] = &copied
	return nil
}

func (f *fakeQuizStore) FindAll() ([]model.Quiz, error) {
	var res []model.Quiz
	for id := uint(1); id < f.nextID; id++ {
		if q, ok := f.quizzes[id]; ok {
			res = append(res, *q)
		}
	}
	return res, nil
}

func (f *fakeQuizStore) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizStore) FindByIDAndCreator(id, creatorID uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok || quiz.CreatorID != creatorID {
		return nil, util.ErrQuizNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizStore) Update(quiz *model.Quiz) error {
	copied := *quiz
	f.quizzes[quiz.ID] = &copied
	return nil
}

func (f *fakeQuizStore) DeleteByIDAndCreator(id, creatorID uint) (bool, error) {
	quiz, ok := f.quizzes[id]
	if !ok || quiz.CreatorID != creatorID {
		return false, nil
	}
	delete(f.quizzes, id)
	return true, nil
}

type fakeQuestionStore struct {
	quizzes *fakeQuizStore
	nextID  uint
}

func (f *fakeQuestionStore) Create(question *model.Question) error {
	if f.nextID == 0 {
		f.nextID = 1000
	}
	question.ID = f.nextID
	f.nextID++
	quiz, ok := f.quizzes.quizzes[question.QuizID]
	if !ok {
		return util.ErrQuizNotFound
	}
	quiz.Questions = append(quiz.Questions, *question)
	return nil
}

func (f *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	for _, quiz := range f.quizzes.quizzes {
		for _, q := range quiz.Questions {
			if q.ID == id {
				copied := q
				return &copied, nil
			}
		}
	}
	return nil, util.ErrQuestionNotFound
}

func (f *fakeQuestionStore) FindAll(quizID uint) ([]model.Question, error) {
	var res []model.Question
	for id := uint(1); id < f.quizzes.nextID; id++ {
		q, ok := f.quizzes.quizzes[id]
		if !ok {
			continue
		}
		for _, question := range q.Questions {
			if quizID == 0 || question.QuizID == quizID {
				res = append(res, question)
			}
		}
	}
	return res, nil
}

func newQuizFixture() (*QuizService, *fakeQuizStore) {
	store := newFakeQuizStore()
	return NewQuizService(store, &fakeQuestionStore{quizzes: store}, nil), store
}

func validQuestions(n int) []QuestionInput {
	questions := make([]QuestionInput, n)
	for i := range questions {
		questions[i] = QuestionInput{
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			Options:       []string{"A", "B", "C"},
			CorrectAnswer: "A",
		}
	}
	return questions
}

func TestValidateQuestionCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr error
	}{
		{4, util.ErrTooFewQuestions},
		{5, nil},
		{12, nil},
		{20, nil},
		{21, util.ErrTooManyQuestions},
		{0, util.ErrTooFewQuestions},
	}
	for _, tt := range tests {
		if err := ValidateQuestionCount(tt.n); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateQuestionCount(%d) = %v, want %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestCreateQuiz(t *testing.T) {
	svc, _ := newQuizFixture()
	teacher := &model.User{BaseModel: model.BaseModel{ID: 7}, Username: "wafa", Role: model.Teacher}

	res, err := svc.CreateQuiz(teacher, QuizCreateRequest{
		Title:      "Histoire",
		Difficulty: "difficile",
		Questions:  validQuestions(5),
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if res.ID == 0 {
		t.Error("expected quiz id to be assigned")
	}
	if res.Creator != 7 || res.CreatorUsername != "wafa" {
		t.Errorf("creator = %d/%q", res.Creator, res.CreatorUsername)
	}
	if res.Difficulty != model.Difficile {
		t.Errorf("difficulty = %q", res.Difficulty)
	}
	if res.QuestionCount != 5 {
		t.Errorf("question_count = %d, want 5", res.QuestionCount)
	}
}

func TestCreateQuizQuestionBounds(t *testing.T) {
	svc, _ := newQuizFixture()
	teacher := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}

	tests := []struct {
		name    string
		n       int
		wantErr error
	}{
		{"too few", 4, util.ErrTooFewQuestions},
		{"minimum", 5, nil},
		{"maximum", 20, nil},
		{"too many", 21, util.ErrTooManyQuestions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuiz(teacher, QuizCreateRequest{
				Title:     "Bornes",
				Questions: validQuestions(tt.n),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateQuizOrderFollowsArrayIndex(t *testing.T) {
	svc, _ := newQuizFixture()
	teacher := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}

	questions := validQuestions(5)
	// 调用方给出的 order 与数组顺序相反，应当被忽略
	for i := range questions {
		questions[i].Order = len(questions) - i
	}

	res, err := svc.CreateQuiz(teacher, QuizCreateRequest{Title: "Ordre", Questions: questions})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	for i, q := range res.Questions {
		if q.Order != i {
			t.Errorf("question %d order = %d, want %d", i, q.Order, i)
		}
	}
}

func TestCreateQuizDefaults(t *testing.T) {
	svc, _ := newQuizFixture()
	teacher := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}

	res, err := svc.CreateQuiz(teacher, QuizCreateRequest{Title: "Défauts", Questions: validQuestions(5)})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if res.Difficulty != model.Facile {
		t.Errorf("difficulty = %q, want facile", res.Difficulty)
	}
	for _, q := range res.Questions {
		if q.QuestionType != model.QCM {
			t.Errorf("question_type = %q, want QCM", q.QuestionType)
		}
	}
}

func TestCreateQuizValidation(t *testing.T) {
	svc, _ := newQuizFixture()
	teacher := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}

	if _, err := svc.CreateQuiz(teacher, QuizCreateRequest{
		Title:      "Invalide",
		Difficulty: "impossible",
		Questions:  validQuestions(5),
	}); !errors.Is(err, util.ErrInvalidDifficulty) {
		t.Errorf("err = %v, want ErrInvalidDifficulty", err)
	}

	// moyen 是合法难度
	if _, err := svc.CreateQuiz(teacher, QuizCreateRequest{
		Title:      "Moyen",
		Difficulty: "moyen",
		Questions:  validQuestions(5),
	}); err != nil {
		t.Errorf("moyen difficulty: %v", err)
	}

	questions := validQuestions(5)
	questions[2].QuestionType = "ESSAY"
	if _, err := svc.CreateQuiz(teacher, QuizCreateRequest{
		Title:     "Type invalide",
		Questions: questions,
	}); !errors.Is(err, util.ErrInvalidQuestionType) {
		t.Errorf("err = %v, want ErrInvalidQuestionType", err)
	}
}

func TestUpdateQuizOwnership(t *testing.T) {
	svc, _ := newQuizFixture()
	owner := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}
	created, err := svc.CreateQuiz(owner, QuizCreateRequest{Title: "Avant", Questions: validQuestions(5)})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	// 非创建者修改表现为不存在，而不是禁止访问
	if _, err := svc.UpdateQuiz(99, created.ID, QuizUpdateRequest{Title: "Pirate"}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}

	updated, err := svc.UpdateQuiz(owner.ID, created.ID, QuizUpdateRequest{Title: "Après", Difficulty: "moyen"})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}
	if updated.Title != "Après" || updated.Difficulty != model.Moyen {
		t.Errorf("updated = %q/%q", updated.Title, updated.Difficulty)
	}

	if _, err := svc.UpdateQuiz(owner.ID, created.ID, QuizUpdateRequest{Difficulty: "extreme"}); !errors.Is(err, util.ErrInvalidDifficulty) {
		t.Errorf("err = %v, want ErrInvalidDifficulty", err)
	}
}

func TestDeleteQuizOwnership(t *testing.T) {
	svc, _ := newQuizFixture()
	owner := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}
	created, _ := svc.CreateQuiz(owner, QuizCreateRequest{Title: "Jetable", Questions: validQuestions(5)})

	if err := svc.DeleteQuiz(99, created.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}

	if err := svc.DeleteQuiz(owner.ID, created.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	if _, err := svc.GetQuiz(created.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound after delete", err)
	}
}

func TestCreateQuestion(t *testing.T) {
	svc, _ := newQuizFixture()
	owner := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}
	quiz, _ := svc.CreateQuiz(owner, QuizCreateRequest{Title: "Extensible", Questions: validQuestions(5)})

	question, err := svc.CreateQuestion(QuestionCreateRequest{
		Quiz:          quiz.ID,
		QuestionType:  "VRAI_FAUX",
		QuestionText:  "La Terre est plate",
		CorrectAnswer: "Faux",
		Order:         5,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if question.ID == 0 {
		t.Error("expected question id to be assigned")
	}
	if question.QuizID != quiz.ID || question.QuestionType != model.VraiFaux || question.Order != 5 {
		t.Errorf("question = %+v", question)
	}

	got, err := svc.GetQuestion(question.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.QuestionText != "La Terre est plate" {
		t.Errorf("question_text = %q", got.QuestionText)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	svc, _ := newQuizFixture()
	owner := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}
	quiz, _ := svc.CreateQuiz(owner, QuizCreateRequest{Title: "Cible", Questions: validQuestions(5)})

	if _, err := svc.CreateQuestion(QuestionCreateRequest{
		Quiz:          99,
		QuestionText:  "Orpheline",
		CorrectAnswer: "A",
	}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("unknown quiz: err = %v, want ErrQuizNotFound", err)
	}

	if _, err := svc.CreateQuestion(QuestionCreateRequest{
		Quiz:          quiz.ID,
		QuestionType:  "ESSAY",
		QuestionText:  "Type invalide",
		CorrectAnswer: "A",
	}); !errors.Is(err, util.ErrInvalidQuestionType) {
		t.Errorf("bad type: err = %v, want ErrInvalidQuestionType", err)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	svc, _ := newQuizFixture()

	if _, err := svc.GetQuestion(99); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestListQuestionsFilter(t *testing.T) {
	svc, _ := newQuizFixture()
	owner := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Teacher}
	first, _ := svc.CreateQuiz(owner, QuizCreateRequest{Title: "Premier", Questions: validQuestions(5)})
	svc.CreateQuiz(owner, QuizCreateRequest{Title: "Second", Questions: validQuestions(6)})

	all, err := svc.ListQuestions(0)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(all) != 11 {
		t.Errorf("len(all) = %d, want 11", len(all))
	}

	filtered, err := svc.ListQuestions(first.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(filtered) != 5 {
		t.Errorf("len(filtered) = %d, want 5", len(filtered))
	}
}
