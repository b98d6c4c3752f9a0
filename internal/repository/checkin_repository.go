package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

// Upsert writes the check-in keyed by (challenge_id, check_date); an existing
// row for that day is overwritten.
func (r *CheckinRepository) Upsert(c *model.DailyCheckin) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "challenge_id"}, {Name: "check_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"habit_1_done", "habit_2_done", "habit_3_done", "habit_4_done", "habit_5_done",
			"mood", "note",
		}),
	}).Create(c).Error
}

func (r *CheckinRepository) FindByChallengeAndDate(challengeID uint, date model.Date) (*model.DailyCheckin, error) {
	var c model.DailyCheckin
	err := r.DB.Where("challenge_id = ? AND check_date = ?", challengeID, date).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByChallenge returns the history oldest first.
func (r *CheckinRepository) ListByChallenge(challengeID uint) ([]model.DailyCheckin, error) {
	var checkins []model.DailyCheckin
	err := r.DB.Where("challenge_id = ?", challengeID).Order("check_date ASC").Find(&checkins).Error
	return checkins, err
}

func (r *CheckinRepository) ListByChallenges(challengeIDs []uint) ([]model.DailyCheckin, error) {
	var checkins []model.DailyCheckin
	if len(challengeIDs) == 0 {
		return checkins, nil
	}
	err := r.DB.Where("challenge_id IN ?", challengeIDs).Find(&checkins).Error
	return checkins, err
}
