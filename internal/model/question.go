package model

type QuestionType string

const (
	QCM      QuestionType = "QCM"
	VraiFaux QuestionType = "VRAI_FAUX"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QCM, VraiFaux:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint         `gorm:"index;not null" json:"quiz"`
	QuestionType  QuestionType `gorm:"type:enum('QCM','VRAI_FAUX');default:'QCM'" json:"question_type"`
	QuestionText  string       `gorm:"type:text;not null" json:"question_text"`
	Options       StringList   `gorm:"type:json" json:"options"`
	CorrectAnswer string       `gorm:"size:200;not null" json:"correct_answer"`
	Order         int          `gorm:"column:question_order;default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}
