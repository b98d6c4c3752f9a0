package repository

import (
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) List() ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Preload("Domain").Order("domain_id").Order("name").Find(&habits).Error
	return habits, err
}

func (r *HabitRepository) ListDomains() ([]model.HabitDomain, error) {
	var domains []model.HabitDomain
	err := r.DB.Order("name").Find(&domains).Error
	return domains, err
}

func (r *HabitRepository) FindByID(id uint) (*model.Habit, error) {
	var h model.Habit
	err := r.DB.Preload("Domain").First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CountByIDs reports how many of ids exist.
func (r *HabitRepository) CountByIDs(ids []uint) (int64, error) {
	var n int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.DB.Model(&model.Habit{}).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

func (r *HabitRepository) Create(h *model.Habit) error {
	return r.DB.Create(h).Error
}

func (r *HabitRepository) Update(id uint, updates map[string]interface{}) error {
	res := r.DB.Model(&model.Habit{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *HabitRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Habit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
