package model

import "time"

const ApplicationStatusNew = "new"

// Application is an intake-form submission. It lives in the application store
// (Redis list or memory), not in the relational schema.
// swagger:model Application
type Application struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	WhatsApp     string    `json:"whatsapp,omitempty"`
	IdentityGoal string    `json:"identity_goal"`
	TriedBefore  string    `json:"tried_before"`
	WhyNow       string    `json:"why_now"`
	Commitment   string    `json:"commitment"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`
}
