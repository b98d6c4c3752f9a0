package repository

import (
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

type DiscoveryRepository struct {
	DB *gorm.DB
}

func NewDiscoveryRepository(db *gorm.DB) *DiscoveryRepository {
	return &DiscoveryRepository{DB: db}
}

func (r *DiscoveryRepository) Create(d *model.DiscoveryResponse) error {
	return r.DB.Create(d).Error
}

func (r *DiscoveryRepository) List() ([]model.DiscoveryResponse, error) {
	var responses []model.DiscoveryResponse
	err := r.DB.Order("submitted_at DESC").Find(&responses).Error
	return responses, err
}
