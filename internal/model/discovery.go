package model

import "time"

// DiscoveryResponse stores raw self-discovery answers with the derived profile labels.
// swagger:model DiscoveryResponse
type DiscoveryResponse struct {
	BaseModel
	Email            string    `gorm:"size:255;index" json:"email"`
	Name             string    `gorm:"size:100" json:"name"`
	Q1Need           string    `gorm:"size:255" json:"q1_need"`
	Q2Blocker        string    `gorm:"size:255" json:"q2_blocker"`
	Q3Motivator      string    `gorm:"size:255" json:"q3_motivator"`
	Q4Energiser      string    `gorm:"size:255" json:"q4_energiser"`
	Q5Success        string    `gorm:"size:255" json:"q5_success"`
	Q6Failure        string    `gorm:"size:255" json:"q6_failure"`
	PrimaryCraving   string    `gorm:"size:20" json:"primary_craving"`
	SecondaryCraving string    `gorm:"size:20" json:"secondary_craving"`
	PrimaryFailure   string    `gorm:"size:40" json:"primary_failure"`
	SecondaryFailure *string   `gorm:"size:40" json:"secondary_failure"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

func (DiscoveryResponse) TableName() string {
	return "discovery"
}
