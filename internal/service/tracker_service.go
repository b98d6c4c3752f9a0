package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/repository"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/tracker"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
)

const cohortLeaderboardSize = 20

type TrackerView struct {
	Challenge    *model.Challenge    `json:"challenge"`
	TodayCheckin *model.DailyCheckin `json:"todayCheckin"`
	DayNumber    int                 `json:"dayNumber"`
	WeekNumber   int                 `json:"weekNumber"`
}

type CheckinInput struct {
	Habit1Done bool    `json:"habit_1_done"`
	Habit2Done bool    `json:"habit_2_done"`
	Habit3Done bool    `json:"habit_3_done"`
	Habit4Done bool    `json:"habit_4_done"`
	Habit5Done bool    `json:"habit_5_done"`
	Mood       *int    `json:"mood"`
	Note       *string `json:"note"`
}

type AdaptiveSuggestion struct {
	Slot           model.Slot `json:"slot"`
	HabitName      string     `json:"habitName"`
	SimplerVersion *string    `json:"simplerVersion"`
	AdherencePct   int        `json:"adherencePct"`
}

type CheckinResult struct {
	Checkin             *model.DailyCheckin  `json:"checkin"`
	IsMilestoneDay      bool                 `json:"isMilestoneDay"`
	DayNumber           int                  `json:"dayNumber"`
	AdaptiveSuggestions []AdaptiveSuggestion `json:"adaptiveSuggestions"`
}

type HabitStat struct {
	Slot          model.Slot `json:"slot"`
	Streak        int        `json:"streak"`
	Adherence7Day int        `json:"adherence7Day"`
}

type LeaderboardEntry struct {
	UserName      string `json:"user_name"`
	CompletedDays int    `json:"completedDays"`
	IsYou         bool   `json:"isYou"`
}

type GroupLeaderboard struct {
	GroupName string             `json:"groupName"`
	Members   []LeaderboardEntry `json:"members"`
}

type ProgressView struct {
	Challenge           *model.Challenge     `json:"challenge"`
	Checkins            []model.DailyCheckin `json:"checkins"`
	Progress            tracker.Progress     `json:"progress"`
	HabitStats          []HabitStat          `json:"habitStats"`
	MotivationalMessage string               `json:"motivationalMessage"`
	Leaderboard         []LeaderboardEntry   `json:"leaderboard"`
	GroupLeaderboard    *GroupLeaderboard    `json:"groupLeaderboard"`
}

type SetupInput struct {
	DurationDays int   `json:"duration_days"`
	Habit1ID     *uint `json:"habit_1_id"`
	Habit2ID     *uint `json:"habit_2_id"`
	Habit3ID     *uint `json:"habit_3_id"`
	Habit4ID     *uint `json:"habit_4_id"`
	Habit5ID     *uint `json:"habit_5_id"`
}

func (in SetupInput) habitIDs() [model.MaxSlots]*uint {
	return [model.MaxSlots]*uint{in.Habit1ID, in.Habit2ID, in.Habit3ID, in.Habit4ID, in.Habit5ID}
}

// TrackerService serves the participant-facing tracker. The token in the URL
// is the only credential.
type TrackerService struct {
	Challenges ChallengeStore
	Checkins   CheckinStore
	Habits     HabitStore
	Groups     GroupStore
	Notifier   Notifier
	Milestones repository.MilestoneLedger
	Now        func() time.Time

	threshold atomic.Int64
}

func NewTrackerService(
	challenges ChallengeStore,
	checkins CheckinStore,
	habits HabitStore,
	groups GroupStore,
	notifier Notifier,
	milestones repository.MilestoneLedger,
	lowAdherenceThreshold int,
) *TrackerService {
	s := &TrackerService{
		Challenges: challenges,
		Checkins:   checkins,
		Habits:     habits,
		Groups:     groups,
		Notifier:   notifier,
		Milestones: milestones,
		Now:        time.Now,
	}
	s.SetLowAdherenceThreshold(lowAdherenceThreshold)
	return s
}

// SetLowAdherenceThreshold may be called while requests are in flight.
func (s *TrackerService) SetLowAdherenceThreshold(pct int) {
	s.threshold.Store(int64(pct))
}

func (s *TrackerService) LowAdherenceThreshold() int {
	return int(s.threshold.Load())
}

func (s *TrackerService) challenge(token string) (*model.Challenge, error) {
	ch, err := s.Challenges.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return ch, nil
}

func (s *TrackerService) GetTracker(token string) (*TrackerView, error) {
	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	today, err := s.Checkins.FindByChallengeAndDate(ch.ID, model.DateOf(now))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &TrackerView{
		Challenge:    ch,
		TodayCheckin: today,
		DayNumber:    tracker.DayNumber(ch.StartDate, now),
		WeekNumber:   tracker.WeekNumber(ch.StartDate, now),
	}, nil
}

// Checkin records today's completion flags, then runs the milestone and
// low-adherence checks. Notification failures are logged and never fail the
// check-in itself.
func (s *TrackerService) Checkin(ctx context.Context, token string, in CheckinInput) (*CheckinResult, error) {
	if in.Mood != nil && (*in.Mood < 1 || *in.Mood > 5) {
		return nil, util.Invalid("mood", "must be between 1 and 5")
	}

	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	today := model.DateOf(now)
	record := &model.DailyCheckin{
		ChallengeID: ch.ID,
		CheckDate:   today,
		Habit1Done:  in.Habit1Done,
		Habit2Done:  in.Habit2Done,
		Habit3Done:  in.Habit3Done,
		Habit4Done:  in.Habit4Done,
		Habit5Done:  in.Habit5Done,
		Mood:        in.Mood,
		Note:        util.TrimmedPtr(in.Note),
	}
	if err := s.Checkins.Upsert(record); err != nil {
		return nil, err
	}
	monitoring.CheckinsTotal.Inc()

	saved, err := s.Checkins.FindByChallengeAndDate(ch.ID, today)
	if err != nil {
		return nil, err
	}

	checkins, err := s.Checkins.ListByChallenge(ch.ID)
	if err != nil {
		return nil, err
	}

	day := tracker.DayNumber(ch.StartDate, now)
	isMilestone := tracker.IsMilestoneDay(ch.DurationDays, day)
	if isMilestone {
		s.notifyMilestone(ctx, ch, day)
	}

	threshold := s.LowAdherenceThreshold()
	suggestions := make([]AdaptiveSuggestion, 0)
	for _, slot := range ch.AssignedSlots() {
		habit := ch.Habit(slot)
		if habit == nil {
			continue
		}
		pct := tracker.RollingAdherence(checkins, slot, now)
		if pct >= threshold {
			continue
		}

		suggestions = append(suggestions, AdaptiveSuggestion{
			Slot:           slot,
			HabitName:      habit.Name,
			SimplerVersion: habit.SimplerVersion,
			AdherencePct:   pct,
		})
		monitoring.LowAdherenceTotal.WithLabelValues(strconv.Itoa(int(slot))).Inc()

		err := s.Notifier.LowAdherence(ctx, LowAdherenceNotice{
			UserName:       ch.DisplayName(),
			UserEmail:      ch.UserEmail,
			HabitName:      habit.Name,
			AdherencePct:   pct,
			Threshold:      threshold,
			SimplerVersion: habit.SimplerVersion,
			Token:          ch.Token,
		})
		if err != nil {
			logger.Log.Error("Low adherence notification failed",
				zap.Uint("challenge_id", ch.ID),
				zap.Int("slot", int(slot)),
				zap.Error(err))
		}
	}

	return &CheckinResult{
		Checkin:             saved,
		IsMilestoneDay:      isMilestone,
		DayNumber:           day,
		AdaptiveSuggestions: suggestions,
	}, nil
}

func (s *TrackerService) notifyMilestone(ctx context.Context, ch *model.Challenge, day int) {
	first, err := s.Milestones.MarkSent(ctx, ch.ID, day)
	if err != nil {
		// Ledger trouble should not cost the coach the mail.
		logger.Log.Warn("Milestone ledger unavailable", zap.Uint("challenge_id", ch.ID), zap.Error(err))
		first = true
	}
	if !first {
		return
	}

	monitoring.MilestonesTotal.WithLabelValues(strconv.Itoa(ch.DurationDays)).Inc()
	err = s.Notifier.MilestoneReached(ctx, MilestoneNotice{
		UserName:     ch.DisplayName(),
		UserEmail:    ch.UserEmail,
		DayNumber:    day,
		DurationDays: ch.DurationDays,
		Token:        ch.Token,
	})
	if err != nil {
		logger.Log.Error("Milestone notification failed",
			zap.Uint("challenge_id", ch.ID),
			zap.Int("day", day),
			zap.Error(err))
	}
}

func (s *TrackerService) Progress(token string) (*ProgressView, error) {
	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	checkins, err := s.Checkins.ListByChallenge(ch.ID)
	if err != nil {
		return nil, err
	}
	if checkins == nil {
		checkins = make([]model.DailyCheckin, 0)
	}

	stats := make([]HabitStat, 0, model.MaxSlots)
	for _, slot := range model.Slots {
		stats = append(stats, HabitStat{
			Slot:          slot,
			Streak:        tracker.Streak(checkins, slot, now),
			Adherence7Day: tracker.RollingAdherence(checkins, slot, now),
		})
	}

	progress := tracker.ComputeProgress(ch, checkins, now)
	maxStreak := tracker.MaxStreak(checkins, ch.AssignedSlots(), now)

	leaderboard, err := s.cohortLeaderboard(ch)
	if err != nil {
		return nil, err
	}
	group, err := s.groupLeaderboard(ch)
	if err != nil {
		return nil, err
	}

	return &ProgressView{
		Challenge:           ch,
		Checkins:            checkins,
		Progress:            progress,
		HabitStats:          stats,
		MotivationalMessage: tracker.MotivationalMessage(progress.DayNumber, progress.TotalDays, progress.TodayCompletionPct, maxStreak),
		Leaderboard:         leaderboard,
		GroupLeaderboard:    group,
	}, nil
}

// rank builds leaderboard rows for challenges, most completed days first.
func (s *TrackerService) rank(challenges []model.Challenge, you uint) ([]LeaderboardEntry, error) {
	ids := make([]uint, len(challenges))
	for i := range challenges {
		ids[i] = challenges[i].ID
	}

	all, err := s.Checkins.ListByChallenges(ids)
	if err != nil {
		return nil, err
	}
	completed := make(map[uint]int, len(challenges))
	for i := range all {
		if all[i].Completed() {
			completed[all[i].ChallengeID]++
		}
	}

	entries := make([]LeaderboardEntry, 0, len(challenges))
	for i := range challenges {
		c := &challenges[i]
		entries = append(entries, LeaderboardEntry{
			UserName:      util.StringOr(c.UserName, "Anonymous"),
			CompletedDays: completed[c.ID],
			IsYou:         c.ID == you,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CompletedDays > entries[j].CompletedDays
	})
	return entries, nil
}

func (s *TrackerService) cohortLeaderboard(ch *model.Challenge) ([]LeaderboardEntry, error) {
	cohort, err := s.Challenges.ListActiveByDuration(ch.DurationDays, cohortLeaderboardSize)
	if err != nil {
		return nil, err
	}
	return s.rank(cohort, ch.ID)
}

func (s *TrackerService) groupLeaderboard(ch *model.Challenge) (*GroupLeaderboard, error) {
	membership, err := s.Groups.FindMembership(ch.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	members, err := s.Groups.ListMembers(membership.GroupID)
	if err != nil {
		return nil, err
	}
	challenges := make([]model.Challenge, 0, len(members))
	for _, m := range members {
		if m.Challenge != nil {
			challenges = append(challenges, *m.Challenge)
		}
	}

	entries, err := s.rank(challenges, ch.ID)
	if err != nil {
		return nil, err
	}

	name := "Group"
	if membership.Group != nil && membership.Group.Name != "" {
		name = membership.Group.Name
	}
	return &GroupLeaderboard{GroupName: name, Members: entries}, nil
}

// Setup sets the duration and the five habit slots. Omitted slots are cleared.
func (s *TrackerService) Setup(token string, in SetupInput) (*model.Challenge, error) {
	if !model.ValidDuration(in.DurationDays) {
		return nil, util.Invalid("duration_days", "must be 21, 30, 66, or 100")
	}

	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	ids := in.habitIDs()
	if err := habitsExist(s.Habits, ids); err != nil {
		return nil, err
	}

	if err := s.Challenges.UpdateSetup(ch.ID, in.DurationDays, ids); err != nil {
		return nil, err
	}
	return s.Challenges.FindByID(ch.ID)
}

// habitsExist rejects slot assignments that reference missing habits.
func habitsExist(habits HabitStore, ids [model.MaxSlots]*uint) error {
	seen := make(map[uint]bool)
	var distinct []uint
	for _, id := range ids {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		distinct = append(distinct, *id)
	}
	if len(distinct) == 0 {
		return nil
	}

	n, err := habits.CountByIDs(distinct)
	if err != nil {
		return err
	}
	if int(n) != len(distinct) {
		return util.Invalid("habit_ids", "unknown habit referenced")
	}
	return nil
}

// JoinGroup adds the challenge to the group behind inviteCode. Joining the same
// group again is a no-op.
func (s *TrackerService) JoinGroup(token, inviteCode string) (*model.Group, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, util.Invalid("invite_code", "is required")
	}

	ch, err := s.challenge(token)
	if err != nil {
		return nil, err
	}

	group, err := s.Groups.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}

	existing, err := s.Groups.FindMembership(ch.ID)
	switch {
	case err == nil:
		if existing.GroupID == group.ID {
			return group, nil
		}
		return nil, util.ErrAlreadyInGroup
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := s.Groups.AddMember(&model.GroupMember{GroupID: group.ID, ChallengeID: ch.ID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyInGroup
		}
		return nil, err
	}
	return group, nil
}
