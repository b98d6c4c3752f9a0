package model

import (
	"time"
)

// DailyCheckin is one calendar day of habit completion for a challenge.
// (challenge_id, check_date) is the natural key.
// swagger:model DailyCheckin
type DailyCheckin struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex:idx_checkin_challenge_date,priority:1" json:"challenge_id"`
	CheckDate   Date      `gorm:"type:date;not null;uniqueIndex:idx_checkin_challenge_date,priority:2" json:"check_date"`
	Habit1Done  bool      `gorm:"not null" json:"habit_1_done"`
	Habit2Done  bool      `gorm:"not null" json:"habit_2_done"`
	Habit3Done  bool      `gorm:"not null" json:"habit_3_done"`
	Habit4Done  bool      `gorm:"not null" json:"habit_4_done"`
	Habit5Done  bool      `gorm:"not null" json:"habit_5_done"`
	Mood        *int      `json:"mood"`
	Note        *string   `gorm:"type:text" json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

func (DailyCheckin) TableName() string {
	return "daily_checkins"
}

// Done reports the completion flag for slot. Invalid slots are never done.
func (c *DailyCheckin) Done(slot Slot) bool {
	switch slot {
	case 1:
		return c.Habit1Done
	case 2:
		return c.Habit2Done
	case 3:
		return c.Habit3Done
	case 4:
		return c.Habit4Done
	case 5:
		return c.Habit5Done
	}
	return false
}

// DoneCount is the number of flags set.
func (c *DailyCheckin) DoneCount() int {
	n := 0
	for _, s := range Slots {
		if c.Done(s) {
			n++
		}
	}
	return n
}

// Completed is true when at least one habit was done that day.
func (c *DailyCheckin) Completed() bool {
	return c.DoneCount() > 0
}
