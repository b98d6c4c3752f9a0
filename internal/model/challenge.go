package model

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengePaused    ChallengeStatus = "paused"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeActive, ChallengeCompleted, ChallengePaused:
		return true
	}
	return false
}

// Durations a challenge may run for, in days.
var Durations = []int{21, 30, 66, 100}

func ValidDuration(days int) bool {
	for _, d := range Durations {
		if d == days {
			return true
		}
	}
	return false
}

// Slot is a habit position within a challenge. Slots 1-3 are primary, 4-5 additional.
type Slot int

const MaxSlots = 5

var Slots = []Slot{1, 2, 3, 4, 5}

func (s Slot) Valid() bool {
	return s >= 1 && s <= MaxSlots
}

func (s Slot) Primary() bool {
	return s >= 1 && s <= 3
}

// Challenge is one participant's habit-tracking run.
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Token        string          `gorm:"size:32;uniqueIndex;not null" json:"token"`
	UserEmail    string          `gorm:"size:255;index;not null" json:"user_email"`
	UserName     *string         `gorm:"size:100" json:"user_name"`
	DurationDays int             `gorm:"not null" json:"duration_days"`
	StartDate    Date            `gorm:"type:date;not null" json:"start_date"`
	Status       ChallengeStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`

	Habit1ID *uint `json:"habit_1_id"`
	Habit2ID *uint `json:"habit_2_id"`
	Habit3ID *uint `json:"habit_3_id"`
	Habit4ID *uint `json:"habit_4_id"`
	Habit5ID *uint `json:"habit_5_id"`

	Habit1 *Habit `gorm:"foreignKey:Habit1ID" json:"habit_1,omitempty"`
	Habit2 *Habit `gorm:"foreignKey:Habit2ID" json:"habit_2,omitempty"`
	Habit3 *Habit `gorm:"foreignKey:Habit3ID" json:"habit_3,omitempty"`
	Habit4 *Habit `gorm:"foreignKey:Habit4ID" json:"habit_4,omitempty"`
	Habit5 *Habit `gorm:"foreignKey:Habit5ID" json:"habit_5,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// HabitID returns the habit reference held in slot, or nil.
func (c *Challenge) HabitID(slot Slot) *uint {
	switch slot {
	case 1:
		return c.Habit1ID
	case 2:
		return c.Habit2ID
	case 3:
		return c.Habit3ID
	case 4:
		return c.Habit4ID
	case 5:
		return c.Habit5ID
	}
	return nil
}

// Habit returns the preloaded habit in slot, or nil.
func (c *Challenge) Habit(slot Slot) *Habit {
	switch slot {
	case 1:
		return c.Habit1
	case 2:
		return c.Habit2
	case 3:
		return c.Habit3
	case 4:
		return c.Habit4
	case 5:
		return c.Habit5
	}
	return nil
}

// SetHabitIDs assigns all five slots at once.
func (c *Challenge) SetHabitIDs(ids [MaxSlots]*uint) {
	c.Habit1ID, c.Habit2ID, c.Habit3ID, c.Habit4ID, c.Habit5ID = ids[0], ids[1], ids[2], ids[3], ids[4]
}

// AssignedSlots lists the slots holding a habit reference, in slot order.
func (c *Challenge) AssignedSlots() []Slot {
	var slots []Slot
	for _, s := range Slots {
		if c.HabitID(s) != nil {
			slots = append(slots, s)
		}
	}
	return slots
}

func (c *Challenge) HabitSlotCount() int {
	return len(c.AssignedSlots())
}

// DisplayName falls back to the e-mail address when no name was given.
func (c *Challenge) DisplayName() string {
	if c.UserName != nil && *c.UserName != "" {
		return *c.UserName
	}
	return c.UserEmail
}
