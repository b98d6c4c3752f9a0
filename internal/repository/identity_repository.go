package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type IdentityRepository struct {
	DB *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{DB: db}
}

func (r *IdentityRepository) FindDeclaration(challengeID uint) (*model.IdentityDeclaration, error) {
	var d model.IdentityDeclaration
	err := r.DB.Where("challenge_id = ?", challengeID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *IdentityRepository) UpsertDeclaration(d *model.IdentityDeclaration) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"identity_goal", "declaration", "updated_at"}),
	}).Create(d).Error
}

func (r *IdentityRepository) FindCheckin(challengeID uint, week int) (*model.IdentityCheckin, error) {
	var c model.IdentityCheckin
	err := r.DB.Where("challenge_id = ? AND week_number = ?", challengeID, week).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *IdentityRepository) ListCheckins(challengeID uint) ([]model.IdentityCheckin, error) {
	var checkins []model.IdentityCheckin
	err := r.DB.Where("challenge_id = ?", challengeID).Order("week_number ASC").Find(&checkins).Error
	return checkins, err
}

func (r *IdentityRepository) UpsertCheckin(c *model.IdentityCheckin) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "week_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"identity_rating", "reflection", "updated_at"}),
	}).Create(c).Error
}
