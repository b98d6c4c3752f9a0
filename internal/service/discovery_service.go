package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/assessment"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
)

type DiscoveryInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	assessment.CravingAnswers
	Q6 string `json:"q6"`
}

type DiscoveryService struct {
	Responses DiscoveryStore
	Now       func() time.Time
}

func NewDiscoveryService(responses DiscoveryStore) *DiscoveryService {
	return &DiscoveryService{Responses: responses, Now: time.Now}
}

func (s *DiscoveryService) Questions() []assessment.Question {
	return assessment.Questions()
}

// Submit scores the quiz and stores the response. A storage failure is logged
// and the blueprint is still returned.
func (s *DiscoveryService) Submit(in DiscoveryInput) assessment.Blueprint {
	bp := assessment.GenerateBlueprint(in.CravingAnswers, in.Q6)
	monitoring.BlueprintsTotal.WithLabelValues(string(bp.CravingProfile.Primary)).Inc()

	resp := &model.DiscoveryResponse{
		Email:            strings.TrimSpace(in.Email),
		Name:             strings.TrimSpace(in.Name),
		Q1Need:           in.Q1,
		Q2Blocker:        in.Q2,
		Q3Motivator:      in.Q3,
		Q4Energiser:      in.Q4,
		Q5Success:        in.Q5,
		Q6Failure:        in.Q6,
		PrimaryCraving:   string(bp.CravingProfile.Primary),
		SecondaryCraving: string(bp.CravingProfile.Secondary),
		PrimaryFailure:   string(bp.FailureProfile.Primary),
		SubmittedAt:      s.Now().UTC(),
	}
	if sec := bp.FailureProfile.Secondary; sec != nil {
		v := string(*sec)
		resp.SecondaryFailure = &v
	}

	if err := s.Responses.Create(resp); err != nil {
		logger.Log.Error("Failed to store discovery response", zap.Error(err))
	}
	return bp
}

func (s *DiscoveryService) List() ([]model.DiscoveryResponse, error) {
	return s.Responses.List()
}
