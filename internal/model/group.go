package model

import "time"

// swagger:model Group
type Group struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	InviteCode string `gorm:"size:16;uniqueIndex;not null" json:"invite_code"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember links a challenge to its group. A challenge belongs to at most one group.
// swagger:model GroupMember
type GroupMember struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID     uint       `gorm:"index;not null" json:"group_id"`
	ChallengeID uint       `gorm:"uniqueIndex;not null" json:"challenge_id"`
	JoinedAt    time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	Group       *Group     `gorm:"foreignKey:GroupID" json:"groups,omitempty"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID" json:"challenges,omitempty"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
