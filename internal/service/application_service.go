package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/repository"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
)

type ApplicationInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	WhatsApp     string `json:"whatsapp"`
	IdentityGoal string `json:"identity_goal"`
	TriedBefore  string `json:"tried_before"`
	WhyNow       string `json:"why_now"`
	Commitment   string `json:"commitment"`
}

// ApplicationService accepts intake forms and serves them back to the coach.
type ApplicationService struct {
	Store repository.ApplicationStore
	Now   func() time.Time
}

func NewApplicationService(store repository.ApplicationStore) *ApplicationService {
	return &ApplicationService{Store: store, Now: time.Now}
}

func (s *ApplicationService) Submit(ctx context.Context, in ApplicationInput) (*model.Application, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return nil, util.Invalid("name", "is required")
	}
	if email == "" {
		return nil, util.Invalid("email", "is required")
	}

	app := &model.Application{
		ID:           model.GenerateUUID(),
		Name:         name,
		Email:        email,
		WhatsApp:     strings.TrimSpace(in.WhatsApp),
		IdentityGoal: strings.TrimSpace(in.IdentityGoal),
		TriedBefore:  strings.TrimSpace(in.TriedBefore),
		WhyNow:       strings.TrimSpace(in.WhyNow),
		Commitment:   strings.TrimSpace(in.Commitment),
		Status:       model.ApplicationStatusNew,
		SubmittedAt:  s.Now().UTC(),
	}
	if err := s.Store.Append(ctx, app); err != nil {
		return nil, err
	}

	logger.Log.Info("Application received", zap.String("application_id", app.ID))
	return app, nil
}

// List returns all applications, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]model.Application, error) {
	return s.Store.List(ctx)
}

// LatestByEmail returns the newest application for email, matched
// case-insensitively, or nil when there is none.
func (s *ApplicationService) LatestByEmail(ctx context.Context, email string) (*model.Application, error) {
	apps, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if strings.EqualFold(apps[i].Email, email) {
			return &apps[i], nil
		}
	}
	return nil, nil
}
