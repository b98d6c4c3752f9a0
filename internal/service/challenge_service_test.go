package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

func newChallengeFixture() (*ChallengeService, *fakeChallenges, *fakeCheckins, *fakeUploader) {
	habits := newFakeHabits(model.Habit{BaseModel: model.BaseModel{ID: 1}, Name: "Read"})
	challenges := newFakeChallenges(habits)
	checkins := &fakeCheckins{}
	uploader := &fakeUploader{}
	svc := NewChallengeService(challenges, checkins, habits, uploader)
	svc.Now = fixedClock(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
	return svc, challenges, checkins, uploader
}

func TestCreateChallengeValidation(t *testing.T) {
	svc, _, _, _ := newChallengeFixture()

	tests := []struct {
		name  string
		in    CreateChallengeInput
		field string
	}{
		{"missing email", CreateChallengeInput{DurationDays: 21, StartDate: "2024-03-01"}, "user_email"},
		{"bad duration", CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 14, StartDate: "2024-03-01"}, "duration_days"},
		{"missing start", CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 21}, "start_date"},
		{"malformed start", CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 21, StartDate: "01/03/2024"}, "start_date"},
		{"unknown habit", CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 21, StartDate: "2024-03-01", Habit2ID: uintPtr(7)}, "habit_ids"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.in)
			var verr *util.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("err = %v, want validation error on %s", err, tt.field)
			}
		})
	}
}

func TestCreateChallengeRetriesTokenCollision(t *testing.T) {
	svc, challenges, _, _ := newChallengeFixture()
	challenges.createErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}
	tokens := []string{"aaaa", "bbbb", "cccc"}
	svc.NewToken = func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}

	out, err := svc.Create(CreateChallengeInput{
		UserEmail:    " asha@example.com ",
		UserName:     strPtr("Asha"),
		DurationDays: 66,
		StartDate:    "2024-03-01",
		Habit1ID:     uintPtr(1),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Token != "cccc" || out.TrackerURL != "/tracker/cccc" {
		t.Errorf("token = %q url = %q", out.Token, out.TrackerURL)
	}
	if out.Challenge.Status != model.ChallengeActive || out.Challenge.UserEmail != "asha@example.com" {
		t.Errorf("challenge = %+v", out.Challenge)
	}
}

func TestCreateChallengeGivesUpAfterThreeCollisions(t *testing.T) {
	svc, challenges, _, _ := newChallengeFixture()
	challenges.createErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}

	_, err := svc.Create(CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 21, StartDate: "2024-03-01"})
	if !errors.Is(err, util.ErrTokenExhausted) {
		t.Fatalf("err = %v, want ErrTokenExhausted", err)
	}
}

func TestCreateChallengeOtherErrorNotRetried(t *testing.T) {
	svc, challenges, _, _ := newChallengeFixture()
	boom := errors.New("connection reset")
	challenges.createErrs = []error{boom}

	_, err := svc.Create(CreateChallengeInput{UserEmail: "a@b.c", DurationDays: 21, StartDate: "2024-03-01"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestListAndExport(t *testing.T) {
	svc, challenges, checkins, uploader := newChallengeFixture()
	start := model.NewDate(2024, time.March, 1)
	ch := challenges.add(model.Challenge{Token: "t1", UserEmail: "a@example.com", UserName: strPtr("Asha"), DurationDays: 21, StartDate: start, Habit1ID: uintPtr(1)})
	challenges.add(model.Challenge{Token: "t2", UserEmail: "b@example.com", DurationDays: 30, StartDate: start})
	for i := 0; i < 5; i++ {
		checkins.Upsert(&model.DailyCheckin{ChallengeID: ch.ID, CheckDate: start.AddDays(i), Habit1Done: true})
	}

	rows, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].Token != "t2" {
		t.Fatalf("rows = %+v, want newest first", rows)
	}
	asha := rows[1]
	if asha.DayNumber != 10 || asha.CompletedDays != 5 || asha.AdherencePct != 50 || asha.TrackerURL != "/tracker/t1" {
		t.Errorf("summary = day %d completed %d adherence %d url %s", asha.DayNumber, asha.CompletedDays, asha.AdherencePct, asha.TrackerURL)
	}

	res, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Count != 2 || res.URL != "/exports/challenges-20240310-090000.csv" {
		t.Errorf("export = %+v", res)
	}
	if uploader.contentType != util.MimeCSV {
		t.Errorf("content type = %q", uploader.contentType)
	}

	records, err := csv.NewReader(strings.NewReader(string(uploader.body))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 || records[0][0] != "id" {
		t.Fatalf("records = %v", records)
	}
	if got := strings.Join(records[2], ","); got != "1,Asha,a@example.com,21,2024-03-01,active,10,5,50,/tracker/t1" {
		t.Errorf("row = %s", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, challenges, _, _ := newChallengeFixture()
	ch := challenges.add(model.Challenge{Token: "t1", UserEmail: "a@example.com", DurationDays: 21})

	if _, err := svc.UpdateStatus(ch.ID, "archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := svc.UpdateStatus(99, model.ChallengePaused); !errors.Is(err, util.ErrChallengeNotFound) {
		t.Fatalf("err = %v, want ErrChallengeNotFound", err)
	}
	got, err := svc.UpdateStatus(ch.ID, model.ChallengePaused)
	if err != nil || got.Status != model.ChallengePaused {
		t.Fatalf("UpdateStatus = %+v, %v", got, err)
	}
}

func TestCompleteFinished(t *testing.T) {
	svc, challenges, _, _ := newChallengeFixture()
	// Today is 2024-03-10.
	done := challenges.add(model.Challenge{Token: "done", DurationDays: 21, StartDate: model.NewDate(2024, time.February, 10)})
	last := challenges.add(model.Challenge{Token: "last", DurationDays: 21, StartDate: model.NewDate(2024, time.February, 19)})
	paused := challenges.add(model.Challenge{Token: "paused", DurationDays: 21, StartDate: model.NewDate(2024, time.January, 1), Status: model.ChallengePaused})

	n, err := svc.CompleteFinished()
	if err != nil {
		t.Fatalf("CompleteFinished: %v", err)
	}
	if n != 1 {
		t.Errorf("completed = %d, want 1", n)
	}

	want := map[uint]model.ChallengeStatus{
		done.ID:   model.ChallengeCompleted,
		last.ID:   model.ChallengeActive,
		paused.ID: model.ChallengePaused,
	}
	for id, status := range want {
		if got := challenges.byID[id].Status; got != status {
			t.Errorf("challenge %d status = %s, want %s", id, got, status)
		}
	}
}
