package model

import (
	"time"
)

type UserRole string

const (
	Coach UserRole = "coach"
	Admin UserRole = "admin"
)

// User is a dashboard account. Participants never log in; their tracker token is the credential.
// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"type:varchar(10);default:'coach'" json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
