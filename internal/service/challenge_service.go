package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/tracker"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
)

const tokenAttempts = 3

// Uploader is the slice of StorageService the roster export needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type CreateChallengeInput struct {
	UserEmail    string  `json:"user_email"`
	UserName     *string `json:"user_name"`
	DurationDays int     `json:"duration_days"`
	StartDate    string  `json:"start_date"`
	Habit1ID     *uint   `json:"habit_1_id"`
	Habit2ID     *uint   `json:"habit_2_id"`
	Habit3ID     *uint   `json:"habit_3_id"`
	Habit4ID     *uint   `json:"habit_4_id"`
	Habit5ID     *uint   `json:"habit_5_id"`
}

type CreatedChallenge struct {
	Challenge  *model.Challenge `json:"challenge"`
	Token      string           `json:"token"`
	TrackerURL string           `json:"trackerUrl"`
}

// ChallengeSummary is one row of the coach dashboard.
type ChallengeSummary struct {
	model.Challenge
	DayNumber     int    `json:"dayNumber"`
	CompletedDays int    `json:"completedDays"`
	AdherencePct  int    `json:"adherencePct"`
	TrackerURL    string `json:"trackerUrl"`
}

type ExportResult struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type ChallengeService struct {
	Challenges ChallengeStore
	Checkins   CheckinStore
	Habits     HabitStore
	Storage    Uploader
	Now        func() time.Time
	NewToken   func() string
}

func NewChallengeService(challenges ChallengeStore, checkins CheckinStore, habits HabitStore, storage Uploader) *ChallengeService {
	return &ChallengeService{
		Challenges: challenges,
		Checkins:   checkins,
		Habits:     habits,
		Storage:    storage,
		Now:        time.Now,
		NewToken:   tracker.GenerateToken,
	}
}

func (s *ChallengeService) Create(in CreateChallengeInput) (*CreatedChallenge, error) {
	email := strings.TrimSpace(in.UserEmail)
	if email == "" {
		return nil, util.Invalid("user_email", "is required")
	}
	if !model.ValidDuration(in.DurationDays) {
		return nil, util.Invalid("duration_days", "must be 21, 30, 66, or 100")
	}
	if in.StartDate == "" {
		return nil, util.Invalid("start_date", "is required")
	}
	start, err := model.ParseDate(in.StartDate)
	if err != nil {
		return nil, util.Invalid("start_date", "must be YYYY-MM-DD")
	}

	ids := [model.MaxSlots]*uint{in.Habit1ID, in.Habit2ID, in.Habit3ID, in.Habit4ID, in.Habit5ID}
	if err := habitsExist(s.Habits, ids); err != nil {
		return nil, err
	}

	ch := &model.Challenge{
		UserEmail:    email,
		UserName:     util.TrimmedPtr(in.UserName),
		DurationDays: in.DurationDays,
		StartDate:    start,
		Status:       model.ChallengeActive,
	}
	ch.SetHabitIDs(ids)

	created := false
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		ch.ID = 0
		ch.Token = s.NewToken()
		err = s.Challenges.Create(ch)
		if err == nil {
			created = true
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		logger.Log.Warn("Tracker token collision, retrying", zap.Int("attempt", attempt+1))
	}
	if !created {
		return nil, util.ErrTokenExhausted
	}

	logger.Log.Info("Challenge created",
		zap.Uint("challenge_id", ch.ID),
		zap.Int("duration_days", ch.DurationDays))

	return &CreatedChallenge{
		Challenge:  ch,
		Token:      ch.Token,
		TrackerURL: util.TrackerPath(ch.Token),
	}, nil
}

// List returns every challenge, newest first, with its dashboard figures.
func (s *ChallengeService) List() ([]ChallengeSummary, error) {
	challenges, err := s.Challenges.List()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(challenges))
	for i := range challenges {
		ids[i] = challenges[i].ID
	}
	all, err := s.Checkins.ListByChallenges(ids)
	if err != nil {
		return nil, err
	}
	byChallenge := make(map[uint][]model.DailyCheckin, len(challenges))
	for _, c := range all {
		byChallenge[c.ChallengeID] = append(byChallenge[c.ChallengeID], c)
	}

	now := s.Now()
	out := make([]ChallengeSummary, 0, len(challenges))
	for i := range challenges {
		ch := &challenges[i]
		checkins := byChallenge[ch.ID]
		out = append(out, ChallengeSummary{
			Challenge:     *ch,
			DayNumber:     tracker.DayNumber(ch.StartDate, now),
			CompletedDays: tracker.CompletedDays(checkins),
			AdherencePct:  tracker.OverallAdherence(ch, checkins, now),
			TrackerURL:    util.TrackerPath(ch.Token),
		})
	}
	return out, nil
}

func (s *ChallengeService) UpdateStatus(id uint, status model.ChallengeStatus) (*model.Challenge, error) {
	if !status.Valid() {
		return nil, util.Invalid("status", "must be active, paused, or completed")
	}
	if err := s.Challenges.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return s.Challenges.FindByID(id)
}

// Export writes the dashboard roster as CSV to the storage provider.
func (s *ChallengeService) Export(ctx context.Context) (*ExportResult, error) {
	rows, err := s.List()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{
		"id", "user_name", "user_email", "duration_days", "start_date", "status",
		"day_number", "completed_days", "adherence_pct", "tracker_url",
	})
	for _, r := range rows {
		w.Write([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			util.StringOr(r.UserName, ""),
			r.UserEmail,
			strconv.Itoa(r.DurationDays),
			r.StartDate.String(),
			string(r.Status),
			strconv.Itoa(r.DayNumber),
			strconv.Itoa(r.CompletedDays),
			strconv.Itoa(r.AdherencePct),
			r.TrackerURL,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("challenges-%s.csv", s.Now().UTC().Format("20060102-150405"))
	url, err := s.Storage.Upload(ctx, filename, &buf, int64(buf.Len()), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("upload roster: %w", err)
	}
	return &ExportResult{URL: url, Count: len(rows)}, nil
}

// CompleteFinished marks active challenges past their last day as completed
// and reports how many changed.
func (s *ChallengeService) CompleteFinished() (int, error) {
	active, err := s.Challenges.ListActive()
	if err != nil {
		return 0, err
	}

	now := s.Now()
	n := 0
	for i := range active {
		ch := &active[i]
		if tracker.DayNumber(ch.StartDate, now) <= ch.DurationDays {
			continue
		}
		if err := s.Challenges.UpdateStatus(ch.ID, model.ChallengeCompleted); err != nil {
			logger.Log.Error("Failed to complete challenge", zap.Uint("challenge_id", ch.ID), zap.Error(err))
			continue
		}
		n++
	}
	return n, nil
}
