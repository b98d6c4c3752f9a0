package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/tracker"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

const minDeclarationLength = 5

type OnboardingChallenge struct {
	ID       uint                  `json:"id"`
	UserName string                `json:"user_name"`
	Status   model.ChallengeStatus `json:"status"`
}

type OnboardingView struct {
	Challenge    OnboardingChallenge        `json:"challenge"`
	IdentityGoal *string                    `json:"identity_goal"`
	Declaration  *model.IdentityDeclaration `json:"declaration"`
}

type IdentityChallenge struct {
	ID        uint       `json:"id"`
	UserName  string     `json:"user_name"`
	StartDate model.Date `json:"start_date"`
}

type IdentityCheckinView struct {
	Challenge       IdentityChallenge       `json:"challenge"`
	WeekNumber      int                     `json:"week_number"`
	IdentityGoal    *string                 `json:"identity_goal"`
	Declaration     *string                 `json:"declaration"`
	ThisWeekCheckin *model.IdentityCheckin  `json:"this_week_checkin"`
	AllCheckins     []model.IdentityCheckin `json:"all_checkins"`
}

type IdentityCheckinInput struct {
	IdentityRating int     `json:"identity_rating"`
	Reflection     *string `json:"reflection"`
	WeekNumber     *int    `json:"week_number"`
}

// IdentityService handles the "I am becoming..." declaration and the weekly
// identity self-rating.
type IdentityService struct {
	Challenges   ChallengeStore
	Identity     IdentityStore
	Applications ApplicationFinder
	Now          func() time.Time
}

func NewIdentityService(challenges ChallengeStore, identity IdentityStore, applications ApplicationFinder) *IdentityService {
	return &IdentityService{
		Challenges:   challenges,
		Identity:     identity,
		Applications: applications,
		Now:          time.Now,
	}
}

func (s *IdentityService) challenge(token string) (*model.Challenge, error) {
	ch, err := s.Challenges.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return ch, nil
}

func (s *IdentityService) declaration(challengeID uint) (*model.IdentityDeclaration, error) {
	d, err := s.Identity.FindDeclaration(challengeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return d, err
}

func (s *IdentityService) Onboarding(ctx context.Context, token string) (*OnboardingView, error) {
	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	app, err := s.Applications.LatestByEmail(ctx, ch.UserEmail)
	if err != nil {
		return nil, err
	}
	decl, err := s.declaration(ch.ID)
	if err != nil {
		return nil, err
	}

	name := "there"
	var goal *string
	if app != nil {
		if app.Name != "" {
			name = app.Name
		}
		goal = &app.IdentityGoal
	}
	if ch.UserName != nil && *ch.UserName != "" {
		name = *ch.UserName
	}

	return &OnboardingView{
		Challenge:    OnboardingChallenge{ID: ch.ID, UserName: name, Status: ch.Status},
		IdentityGoal: goal,
		Declaration:  decl,
	}, nil
}

// SaveDeclaration upserts the single declaration for the challenge, copying the
// identity goal from the participant's latest application.
func (s *IdentityService) SaveDeclaration(ctx context.Context, token, declaration string) (*model.IdentityDeclaration, error) {
	declaration = strings.TrimSpace(declaration)
	if utf8.RuneCountInString(declaration) < minDeclarationLength {
		return nil, util.Invalid("declaration", "must be at least 5 characters")
	}

	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	app, err := s.Applications.LatestByEmail(ctx, ch.UserEmail)
	if err != nil {
		return nil, err
	}
	goal := ""
	if app != nil {
		goal = app.IdentityGoal
	}

	if err := s.Identity.UpsertDeclaration(&model.IdentityDeclaration{
		ChallengeID:  ch.ID,
		IdentityGoal: goal,
		Declaration:  declaration,
	}); err != nil {
		return nil, err
	}
	return s.Identity.FindDeclaration(ch.ID)
}

func (s *IdentityService) IdentityCheckin(ctx context.Context, token string) (*IdentityCheckinView, error) {
	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}
	week := tracker.WeekNumber(ch.StartDate, s.Now())

	app, err := s.Applications.LatestByEmail(ctx, ch.UserEmail)
	if err != nil {
		return nil, err
	}
	decl, err := s.declaration(ch.ID)
	if err != nil {
		return nil, err
	}

	thisWeek, err := s.Identity.FindCheckin(ch.ID, week)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	all, err := s.Identity.ListCheckins(ch.ID)
	if err != nil {
		return nil, err
	}

	view := &IdentityCheckinView{
		Challenge: IdentityChallenge{
			ID:        ch.ID,
			UserName:  util.StringOr(ch.UserName, "there"),
			StartDate: ch.StartDate,
		},
		WeekNumber:      week,
		ThisWeekCheckin: thisWeek,
		AllCheckins:     all,
	}
	if app != nil {
		view.IdentityGoal = &app.IdentityGoal
	}
	if decl != nil {
		view.Declaration = &decl.Declaration
	}
	return view, nil
}

// SaveIdentityCheckin upserts the rating for the given week, defaulting to the
// current sprint week.
func (s *IdentityService) SaveIdentityCheckin(token string, in IdentityCheckinInput) (*model.IdentityCheckin, error) {
	if in.IdentityRating < 1 || in.IdentityRating > 5 {
		return nil, util.Invalid("identity_rating", "must be 1-5")
	}
	if in.WeekNumber != nil && *in.WeekNumber < 1 {
		return nil, util.Invalid("week_number", "must be positive")
	}

	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	week := tracker.WeekNumber(ch.StartDate, s.Now())
	if in.WeekNumber != nil {
		week = *in.WeekNumber
	}

	if err := s.Identity.UpsertCheckin(&model.IdentityCheckin{
		ChallengeID:    ch.ID,
		WeekNumber:     week,
		IdentityRating: in.IdentityRating,
		Reflection:     util.TrimmedPtr(in.Reflection),
	}); err != nil {
		return nil, err
	}
	return s.Identity.FindCheckin(ch.ID, week)
}
