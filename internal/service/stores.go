package service

import (
	"context"
	"time"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

// The services depend on these narrow views of the repositories so tests can
// swap in fakes. The gorm repositories satisfy them.

type ChallengeStore interface {
	Create(ch *model.Challenge) error
	FindByToken(token string) (*model.Challenge, error)
	FindByID(id uint) (*model.Challenge, error)
	List() ([]model.Challenge, error)
	ListActive() ([]model.Challenge, error)
	ListActiveByDuration(durationDays, limit int) ([]model.Challenge, error)
	UpdateSetup(id uint, durationDays int, habitIDs [model.MaxSlots]*uint) error
	UpdateStatus(id uint, status model.ChallengeStatus) error
}

type CheckinStore interface {
	Upsert(c *model.DailyCheckin) error
	FindByChallengeAndDate(challengeID uint, date model.Date) (*model.DailyCheckin, error)
	ListByChallenge(challengeID uint) ([]model.DailyCheckin, error)
	ListByChallenges(challengeIDs []uint) ([]model.DailyCheckin, error)
}

type HabitStore interface {
	List() ([]model.Habit, error)
	ListDomains() ([]model.HabitDomain, error)
	FindByID(id uint) (*model.Habit, error)
	CountByIDs(ids []uint) (int64, error)
	Create(h *model.Habit) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

type IdentityStore interface {
	FindDeclaration(challengeID uint) (*model.IdentityDeclaration, error)
	UpsertDeclaration(d *model.IdentityDeclaration) error
	FindCheckin(challengeID uint, week int) (*model.IdentityCheckin, error)
	ListCheckins(challengeID uint) ([]model.IdentityCheckin, error)
	UpsertCheckin(c *model.IdentityCheckin) error
}

type GroupStore interface {
	Create(g *model.Group) error
	FindByInviteCode(code string) (*model.Group, error)
	FindMembership(challengeID uint) (*model.GroupMember, error)
	AddMember(m *model.GroupMember) error
	ListMembers(groupID uint) ([]model.GroupMember, error)
}

type DiscoveryStore interface {
	Create(d *model.DiscoveryResponse) error
	List() ([]model.DiscoveryResponse, error)
}

type UserStore interface {
	FindByEmail(email string) (*model.User, error)
	UpdateLastLogin(id uint, at time.Time) error
}

// ApplicationFinder looks up the most recent application for an e-mail address.
type ApplicationFinder interface {
	LatestByEmail(ctx context.Context, email string) (*model.Application, error)
}
