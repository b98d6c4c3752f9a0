// Package tracker computes day numbers, streaks, adherence and milestones for a
// challenge from its check-in history. Every function is pure: callers fetch the
// rows, pass the current instant, and persist whatever they need afterwards.
package tracker

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

// LowAdherenceThreshold is the rolling adherence below which a simpler habit version is suggested.
const LowAdherenceThreshold = 60

var milestoneDays = map[int][]int{
	21:  {7, 14, 21},
	30:  {10, 20, 30},
	66:  {21, 44, 66},
	100: {25, 50, 75, 100},
}

// Progress is the challenge-to-date summary shown on the tracker.
type Progress struct {
	DayNumber           int   `json:"dayNumber"`
	TotalDays           int   `json:"totalDays"`
	CompletedDays       int   `json:"completedDays"`
	TodayCompletionPct  int   `json:"todayCompletionPct"`
	OverallAdherencePct int   `json:"overallAdherencePct"`
	Milestones          []int `json:"milestones"`
	IsMilestoneDay      bool  `json:"isMilestoneDay"`
	NextMilestone       *int  `json:"nextMilestone"`
}

// DayNumber is the 1-based day of a challenge that started on start. It never
// drops below 1, even when start lies in the future.
func DayNumber(start model.Date, now time.Time) int {
	diff := model.DateOf(now).DaysSince(model.DateOf(start.Time))
	if diff+1 < 1 {
		return 1
	}
	return diff + 1
}

// WeekNumber is the 1-based sprint week containing now.
func WeekNumber(start model.Date, now time.Time) int {
	return (DayNumber(start, now)-1)/7 + 1
}

// Milestones returns the milestone days for a duration, or an empty list for
// durations outside the supported set.
func Milestones(durationDays int) []int {
	days := milestoneDays[durationDays]
	out := make([]int, len(days))
	copy(out, days)
	return out
}

func IsMilestoneDay(durationDays, dayNumber int) bool {
	for _, m := range milestoneDays[durationDays] {
		if m == dayNumber {
			return true
		}
	}
	return false
}

// CompletedDays counts check-ins with at least one habit done.
func CompletedDays(checkins []model.DailyCheckin) int {
	n := 0
	for i := range checkins {
		if checkins[i].Completed() {
			n++
		}
	}
	return n
}

// OverallAdherence is total habit completions over possible completions to date.
func OverallAdherence(ch *model.Challenge, checkins []model.DailyCheckin, now time.Time) int {
	day := DayNumber(ch.StartDate, now)
	possible := min(day, ch.DurationDays) * ch.HabitSlotCount()
	if possible <= 0 {
		return 0
	}
	actual := 0
	for i := range checkins {
		actual += checkins[i].DoneCount()
	}
	return percent(actual, possible)
}

func ComputeProgress(ch *model.Challenge, checkins []model.DailyCheckin, now time.Time) Progress {
	day := DayNumber(ch.StartDate, now)
	milestones := Milestones(ch.DurationDays)

	p := Progress{
		DayNumber:           day,
		TotalDays:           ch.DurationDays,
		CompletedDays:       CompletedDays(checkins),
		OverallAdherencePct: OverallAdherence(ch, checkins, now),
		Milestones:          milestones,
	}

	if slots := ch.HabitSlotCount(); slots > 0 {
		if today := findByDate(checkins, model.DateOf(now)); today != nil {
			p.TodayCompletionPct = percent(today.DoneCount(), slots)
		}
	}

	for _, m := range milestones {
		if m == day {
			p.IsMilestoneDay = true
		}
		if m > day && p.NextMilestone == nil {
			next := m
			p.NextMilestone = &next
		}
	}
	return p
}

// Streak is the current run of consecutive days on which slot was done, ending
// today. A today record with the flag still unset does not break the run; the
// walk continues from yesterday.
func Streak(checkins []model.DailyCheckin, slot model.Slot, now time.Time) int {
	if !slot.Valid() {
		return 0
	}
	sorted := make([]model.DailyCheckin, len(checkins))
	copy(sorted, checkins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckDate.After(sorted[j].CheckDate)
	})

	today := model.DateOf(now)
	expected := today
	streak := 0
	for i := range sorted {
		c := &sorted[i]
		diff := expected.DaysSince(c.CheckDate)
		if diff != 0 && diff != 1 {
			break
		}
		if c.Done(slot) {
			streak++
			expected = c.CheckDate
			continue
		}
		if diff == 0 && c.CheckDate.Equal(today) {
			continue
		}
		break
	}
	return streak
}

// MaxStreak is the best current streak across the given slots.
func MaxStreak(checkins []model.DailyCheckin, slots []model.Slot, now time.Time) int {
	best := 0
	for _, s := range slots {
		best = max(best, Streak(checkins, s, now))
	}
	return best
}

// RollingAdherence is the share of the last seven days (today included) on which
// slot was done. Missing days count as not done. With no record at all in the
// window it reports 100 so a habit that has not started yet raises no alarm.
func RollingAdherence(checkins []model.DailyCheckin, slot model.Slot, now time.Time) int {
	byDate := make(map[string]*model.DailyCheckin, len(checkins))
	for i := range checkins {
		byDate[checkins[i].CheckDate.String()] = &checkins[i]
	}

	today := model.DateOf(now)
	found, done := 0, 0
	for i := 0; i < 7; i++ {
		c, ok := byDate[today.AddDays(-i).String()]
		if !ok {
			continue
		}
		found++
		if c.Done(slot) {
			done++
		}
	}
	if found == 0 {
		return 100
	}
	return percent(done, 7)
}

// MotivationalMessage picks the tracker banner. Perfect days win over progress
// phases; within a perfect day a longer streak wins.
func MotivationalMessage(dayNumber, totalDays, todayPct, maxStreak int) string {
	if todayPct == 100 {
		switch {
		case maxStreak >= 7:
			return fmt.Sprintf("🔥 %d days in a row. This is who you are now.", maxStreak)
		case maxStreak >= 3:
			return fmt.Sprintf("💪 %d days strong. Keep the chain going.", maxStreak)
		default:
			return "✅ Every habit done today. That is the identity showing up."
		}
	}

	if dayNumber == 1 {
		return "🌟 Day 1. Small start, real start."
	}

	progress := float64(dayNumber) / float64(totalDays)
	switch {
	case progress <= 0.1:
		return "🚀 Foundation phase. Showing up is the whole job right now."
	case progress <= 0.33:
		return "🌱 Early days are where habits take root. Stay with it."
	case progress <= 0.5:
		return fmt.Sprintf("📅 Day %d of %d. Almost halfway, keep moving.", dayNumber, totalDays)
	case progress <= 0.75:
		return "⚡ The momentum is real. The new you is taking shape."
	case progress < 1:
		return fmt.Sprintf("🏁 Final stretch: day %d of %d. Finish strong.", dayNumber, totalDays)
	default:
		return "🏆 Challenge complete. You did what most people never do."
	}
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateToken returns an opaque tracker credential shaped xxxxxxxx-xxxx-xxxx.
// Uniqueness is enforced by the store, which retries on conflict.
func GenerateToken() string {
	var b strings.Builder
	b.Grow(18)
	for i, n := range []int{8, 4, 4} {
		if i > 0 {
			b.WriteByte('-')
		}
		for j := 0; j < n; j++ {
			b.WriteByte(tokenAlphabet[rand.Intn(len(tokenAlphabet))])
		}
	}
	return b.String()
}

func findByDate(checkins []model.DailyCheckin, d model.Date) *model.DailyCheckin {
	for i := range checkins {
		if checkins[i].CheckDate.Equal(d) {
			return &checkins[i]
		}
	}
	return nil
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
