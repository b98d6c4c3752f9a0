package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

type HabitLibrary struct {
	Domains []model.HabitDomain `json:"domains"`
	Habits  []model.Habit       `json:"habits"`
}

type HabitInput struct {
	DomainID       *uint   `json:"domain_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Difficulty     string  `json:"difficulty"`
	SimplerVersion *string `json:"simpler_version"`
}

// HabitPatch carries only the fields the admin changed.
type HabitPatch struct {
	DomainID       *uint   `json:"domain_id"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Difficulty     *string `json:"difficulty"`
	SimplerVersion *string `json:"simpler_version"`
}

type HabitService struct {
	Habits HabitStore
}

func NewHabitService(habits HabitStore) *HabitService {
	return &HabitService{Habits: habits}
}

func (s *HabitService) Library() (*HabitLibrary, error) {
	domains, err := s.Habits.ListDomains()
	if err != nil {
		return nil, err
	}
	habits, err := s.Habits.List()
	if err != nil {
		return nil, err
	}
	return &HabitLibrary{Domains: domains, Habits: habits}, nil
}

func (s *HabitService) Create(in HabitInput) (*model.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, util.Invalid("name", "is required")
	}
	difficulty := model.DifficultyMedium
	if in.Difficulty != "" {
		difficulty = model.Difficulty(in.Difficulty)
		if !difficulty.Valid() {
			return nil, util.Invalid("difficulty", "must be easy, medium, or hard")
		}
	}

	h := &model.Habit{
		DomainID:       in.DomainID,
		Name:           name,
		Description:    util.TrimmedPtr(in.Description),
		Difficulty:     difficulty,
		SimplerVersion: util.TrimmedPtr(in.SimplerVersion),
	}
	if err := s.Habits.Create(h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HabitService) Update(id uint, p HabitPatch) (*model.Habit, error) {
	updates := map[string]interface{}{}
	if p.DomainID != nil {
		updates["domain_id"] = *p.DomainID
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, util.Invalid("name", "must not be empty")
		}
		updates["name"] = name
	}
	if p.Description != nil {
		updates["description"] = util.TrimmedPtr(p.Description)
	}
	if p.Difficulty != nil {
		d := model.Difficulty(*p.Difficulty)
		if !d.Valid() {
			return nil, util.Invalid("difficulty", "must be easy, medium, or hard")
		}
		updates["difficulty"] = d
	}
	if p.SimplerVersion != nil {
		updates["simpler_version"] = util.TrimmedPtr(p.SimplerVersion)
	}
	if len(updates) == 0 {
		return nil, util.Invalid("", "nothing to update")
	}

	if err := s.Habits.Update(id, updates); err != nil {
		return nil, notFoundAs(err, util.ErrHabitNotFound)
	}
	h, err := s.Habits.FindByID(id)
	if err != nil {
		return nil, notFoundAs(err, util.ErrHabitNotFound)
	}
	return h, nil
}

func (s *HabitService) Delete(id uint) error {
	return notFoundAs(s.Habits.Delete(id), util.ErrHabitNotFound)
}

// notFoundAs swaps gorm's not-found error for a domain sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
