package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameRegistered      = errors.New("该用户名已被注册")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidRole             = errors.New("role must be student or teacher")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrTooFewQuestions         = errors.New("a quiz must have at least 5 questions")
	ErrTooManyQuestions        = errors.New("a quiz cannot have more than 20 questions")
	ErrInvalidDifficulty       = errors.New("difficulty must be facile, moyen or difficile")
	ErrInvalidQuestionType     = errors.New("question type must be QCM or VRAI_FAUX")
)
