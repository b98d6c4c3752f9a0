package repository

import (
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func withHabits(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Habit1.Domain").
		Preload("Habit2.Domain").
		Preload("Habit3.Domain").
		Preload("Habit4.Domain").
		Preload("Habit5.Domain")
}

func (r *ChallengeRepository) Create(ch *model.Challenge) error {
	return r.DB.Create(ch).Error
}

func (r *ChallengeRepository) FindByToken(token string) (*model.Challenge, error) {
	var ch model.Challenge
	err := withHabits(r.DB).Where("token = ?", token).First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var ch model.Challenge
	err := withHabits(r.DB).First(&ch, id).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns every challenge, newest first, with slot habits loaded.
func (r *ChallengeRepository) List() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := withHabits(r.DB).Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) ListActive() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("status = ?", model.ChallengeActive).Find(&challenges).Error
	return challenges, err
}

// ListActiveByDuration is the cohort used for the tracker leaderboard.
func (r *ChallengeRepository) ListActiveByDuration(durationDays, limit int) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.
		Where("status = ? AND duration_days = ?", model.ChallengeActive, durationDays).
		Order("id").
		Limit(limit).
		Find(&challenges).Error
	return challenges, err
}

// UpdateSetup writes the duration and all five slots; nil clears a slot.
func (r *ChallengeRepository) UpdateSetup(id uint, durationDays int, habitIDs [model.MaxSlots]*uint) error {
	return r.DB.Model(&model.Challenge{}).Where("id = ?", id).Updates(map[string]interface{}{
		"duration_days": durationDays,
		"habit_1_id":    habitIDs[0],
		"habit_2_id":    habitIDs[1],
		"habit_3_id":    habitIDs[2],
		"habit_4_id":    habitIDs[3],
		"habit_5_id":    habitIDs[4],
	}).Error
}

func (r *ChallengeRepository) UpdateStatus(id uint, status model.ChallengeStatus) error {
	res := r.DB.Model(&model.Challenge{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
