package model

import "time"

// Attempt 一次答题。持有标识符即可读取/提交（无所有权校验），
// completed_at 为空表示进行中，非空表示已提交且不可再变更。
// swagger:model Attempt
type Attempt struct {
	BaseModel
	QuizID      uint       `gorm:"index;not null" json:"quiz"`
	Quiz        *Quiz      `gorm:"foreignKey:QuizID" json:"-"`
	UserID      *uint      `gorm:"index" json:"user"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       float64    `gorm:"default:0" json:"score"`
	Answers     JSONMap    `gorm:"type:json" json:"answers"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// IsCompleted 提交后为终态
func (a *Attempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
