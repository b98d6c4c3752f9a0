package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/config"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
)

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// InitDB opens the connection and, when migrate is set, brings the schema up
// to date and seeds the habit library and the first admin account.
func InitDB(cfg *config.Config, migrate bool) (*gorm.DB, error) {
	d, err := dialector(&cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Log.Info("Database migration completed")

	if err := seedHabitLibrary(db); err != nil {
		return nil, err
	}
	if err := seedAdmin(db, &cfg.Admin); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.HabitDomain{},
		&model.Habit{},
		&model.Challenge{},
		&model.DailyCheckin{},
		&model.IdentityDeclaration{},
		&model.IdentityCheckin{},
		&model.DiscoveryResponse{},
		&model.Group{},
		&model.GroupMember{},
	)
}

type seedHabit struct {
	name, simpler string
	difficulty    model.Difficulty
}

var defaultLibrary = []struct {
	domain, emoji string
	habits        []seedHabit
}{
	{"Health", "💪", []seedHabit{
		{"Move for 30 minutes", "Put on your trainers and walk for 5 minutes", model.DifficultyMedium},
		{"Drink 2L of water", "Drink one glass of water after waking", model.DifficultyEasy},
		{"In bed by 11pm", "Put your phone on charge outside the bedroom", model.DifficultyMedium},
	}},
	{"Mind", "🧠", []seedHabit{
		{"Meditate for 10 minutes", "Take three slow breaths", model.DifficultyMedium},
		{"Journal one page", "Write one sentence about today", model.DifficultyEasy},
	}},
	{"Growth", "📚", []seedHabit{
		{"Read 20 pages", "Read one page", model.DifficultyMedium},
		{"Deep work block of 90 minutes", "Work on the one task for 10 minutes, no phone", model.DifficultyHard},
	}},
}

func seedHabitLibrary(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.HabitDomain{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range defaultLibrary {
			emoji := d.emoji
			domain := &model.HabitDomain{Name: d.domain, Emoji: &emoji}
			if err := tx.Create(domain).Error; err != nil {
				return err
			}
			for _, h := range d.habits {
				simpler := h.simpler
				habit := &model.Habit{
					DomainID:       &domain.ID,
					Name:           h.name,
					Difficulty:     h.difficulty,
					SimplerVersion: &simpler,
				}
				if err := tx.Create(habit).Error; err != nil {
					return err
				}
			}
		}
		logger.Log.Info("Seeded default habit library")
		return nil
	})
}

func seedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	name := cfg.Name
	if name == "" {
		name = "Admin"
	}
	if err := db.Create(&model.User{
		Name:     name,
		Email:    cfg.Email,
		Password: string(hash),
		Role:     model.Admin,
	}).Error; err != nil {
		return err
	}
	logger.Log.Info("Seeded admin account", zap.String("email", cfg.Email))
	return nil
}
