package service

import (
	"errors"
	"math/rand"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
)

const (
	inviteCodeLength = 6
	// Excludes 0, O, 1 and I.
	inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func generateInviteCode() string {
	b := make([]byte, inviteCodeLength)
	for i := range b {
		b[i] = inviteAlphabet[rand.Intn(len(inviteAlphabet))]
	}
	return string(b)
}

type GroupService struct {
	Groups        GroupStore
	NewInviteCode func() string
}

func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{Groups: groups, NewInviteCode: generateInviteCode}
}

func (s *GroupService) Create(name string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.Invalid("name", "is required")
	}

	g := &model.Group{Name: name}
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		g.ID = 0
		g.InviteCode = s.NewInviteCode()
		err := s.Groups.Create(g)
		if err == nil {
			logger.Log.Info("Group created", zap.Uint("group_id", g.ID), zap.String("invite_code", g.InviteCode))
			return g, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, util.ErrTokenExhausted
}
