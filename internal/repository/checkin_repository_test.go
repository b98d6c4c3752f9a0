package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Each new connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.DailyCheckin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestCheckinUpsertOverwritesSameDay(t *testing.T) {
	repo := NewCheckinRepository(openTestDB(t))
	day := model.NewDate(2024, time.March, 7)

	first := &model.DailyCheckin{ChallengeID: 1, CheckDate: day, Habit1Done: true, Habit2Done: true, Mood: intPtr(2)}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := &model.DailyCheckin{ChallengeID: 1, CheckDate: day, Habit3Done: true, Mood: intPtr(5), Note: strPtr("better")}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := repo.DB.Model(&model.DailyCheckin{}).Where("challenge_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}

	got, err := repo.FindByChallengeAndDate(1, day)
	if err != nil {
		t.Fatalf("FindByChallengeAndDate: %v", err)
	}
	if got.Habit1Done || got.Habit2Done || !got.Habit3Done {
		t.Errorf("flags = %v %v %v, want second write's", got.Habit1Done, got.Habit2Done, got.Habit3Done)
	}
	if got.Mood == nil || *got.Mood != 5 {
		t.Errorf("mood = %v, want 5", got.Mood)
	}
	if got.Note == nil || *got.Note != "better" {
		t.Errorf("note = %v, want better", got.Note)
	}
	if !got.CheckDate.Equal(day) {
		t.Errorf("check date = %s, want %s", got.CheckDate, day)
	}
}

func TestCheckinUpsertKeepsOtherDaysAndChallenges(t *testing.T) {
	repo := NewCheckinRepository(openTestDB(t))
	day := model.NewDate(2024, time.March, 7)

	rows := []model.DailyCheckin{
		{ChallengeID: 1, CheckDate: day.AddDays(-1), Habit1Done: true},
		{ChallengeID: 1, CheckDate: day, Habit1Done: true},
		{ChallengeID: 2, CheckDate: day, Habit2Done: true},
	}
	for i := range rows {
		if err := repo.Upsert(&rows[i]); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	history, err := repo.ListByChallenge(1)
	if err != nil {
		t.Fatalf("ListByChallenge: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d rows, want 2", len(history))
	}
	if !history[0].CheckDate.Before(history[1].CheckDate) {
		t.Errorf("history not oldest first: %s, %s", history[0].CheckDate, history[1].CheckDate)
	}

	all, err := repo.ListByChallenges([]uint{1, 2})
	if err != nil {
		t.Fatalf("ListByChallenges: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d rows, want 3", len(all))
	}

	none, err := repo.ListByChallenges(nil)
	if err != nil || len(none) != 0 {
		t.Errorf("ListByChallenges(nil) = %v, %v", none, err)
	}

	if _, err := repo.FindByChallengeAndDate(2, day.AddDays(-1)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing day err = %v, want ErrRecordNotFound", err)
	}
}
