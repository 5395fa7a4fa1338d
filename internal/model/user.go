package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// Valid 角色为封闭集合，注册时固定，后续不可变更
func (r UserRole) Valid() bool {
	switch r {
	case Student, Teacher:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Username  string   `gorm:"size:150;unique;not null" json:"username"`
	Email     string   `gorm:"size:254" json:"email"`
	Password  string   `gorm:"size:128;not null" json:"-"`
	FirstName string   `gorm:"size:150" json:"first_name"`
	LastName  string   `gorm:"size:150" json:"last_name"`
	Role      UserRole `gorm:"type:enum('student','teacher');default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u.Role == Teacher
}

func (u *User) IsStudent() bool {
	return u.Role == Student
}
