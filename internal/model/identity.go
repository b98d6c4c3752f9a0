package model

// IdentityDeclaration is the participant's "I am becoming..." statement, one per challenge.
// swagger:model IdentityDeclaration
type IdentityDeclaration struct {
	BaseModel
	ChallengeID  uint   `gorm:"uniqueIndex;not null" json:"challenge_id"`
	IdentityGoal string `gorm:"type:text" json:"identity_goal"`
	Declaration  string `gorm:"type:text;not null" json:"declaration"`
}

func (IdentityDeclaration) TableName() string {
	return "identity_declarations"
}

// IdentityCheckin is the weekly self-rating against the declared identity.
// swagger:model IdentityCheckin
type IdentityCheckin struct {
	BaseModel
	ChallengeID    uint    `gorm:"not null;uniqueIndex:idx_identity_challenge_week,priority:1" json:"challenge_id"`
	WeekNumber     int     `gorm:"not null;uniqueIndex:idx_identity_challenge_week,priority:2" json:"week_number"`
	IdentityRating int     `gorm:"not null" json:"identity_rating"`
	Reflection     *string `gorm:"type:text" json:"reflection"`
}

func (IdentityCheckin) TableName() string {
	return "identity_checkins"
}
