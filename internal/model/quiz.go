package model

type Difficulty string

const (
	Facile    Difficulty = "facile"
	Moyen     Difficulty = "moyen"
	Difficile Difficulty = "difficile"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Facile, Moyen, Difficile:
		return true
	}
	return false
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Tags        string     `gorm:"size:200" json:"tags"`
	Difficulty  Difficulty `gorm:"type:enum('facile','moyen','difficile');default:'facile'" json:"difficulty"`
	CreatorID   uint       `gorm:"index;not null" json:"creator"`
	Creator     *User      `gorm:"foreignKey:CreatorID" json:"-"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
