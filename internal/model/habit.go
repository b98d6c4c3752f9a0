package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// HabitDomain groups library habits (health, mind, career...).
// swagger:model HabitDomain
type HabitDomain struct {
	BaseModel
	Name  string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Emoji *string `gorm:"size:16" json:"emoji"`
}

func (HabitDomain) TableName() string {
	return "habit_domains"
}

// Habit is a library entry that can be placed in a challenge slot.
// swagger:model Habit
type Habit struct {
	BaseModel
	DomainID       *uint        `gorm:"index" json:"domain_id"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	Description    *string      `gorm:"type:text" json:"description"`
	Difficulty     Difficulty   `gorm:"type:varchar(10);default:'medium'" json:"difficulty"`
	SimplerVersion *string      `gorm:"type:text" json:"simpler_version"`
	Domain         *HabitDomain `gorm:"foreignKey:DomainID" json:"habit_domains,omitempty"`
}

func (Habit) TableName() string {
	return "habits"
}
