package repository

import (
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(g *model.Group) error {
	return r.DB.Create(g).Error
}

func (r *GroupRepository) FindByInviteCode(code string) (*model.Group, error) {
	var g model.Group
	err := r.DB.Where("invite_code = ?", code).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindMembership returns the challenge's membership with its group loaded.
func (r *GroupRepository) FindMembership(challengeID uint) (*model.GroupMember, error) {
	var m model.GroupMember
	err := r.DB.Preload("Group").Where("challenge_id = ?", challengeID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GroupRepository) AddMember(m *model.GroupMember) error {
	return r.DB.Create(m).Error
}

// ListMembers returns the group's memberships with challenges loaded.
func (r *GroupRepository) ListMembers(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.DB.Preload("Challenge").Where("group_id = ?", groupID).Find(&members).Error
	return members, err
}
