package tracker

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func checkin(d model.Date, done ...model.Slot) model.DailyCheckin {
	c := model.DailyCheckin{CheckDate: d}
	for _, s := range done {
		switch s {
		case 1:
			c.Habit1Done = true
		case 2:
			c.Habit2Done = true
		case 3:
			c.Habit3Done = true
		case 4:
			c.Habit4Done = true
		case 5:
			c.Habit5Done = true
		}
	}
	return c
}

func TestDayNumber(t *testing.T) {
	start := model.NewDate(2024, time.March, 1)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"start day", at(2024, time.March, 1), 1},
		{"next day", at(2024, time.March, 2), 2},
		{"month boundary", at(2024, time.April, 1), 32},
		{"before start", at(2024, time.February, 20), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayNumber(start, tt.now); got != tt.want {
				t.Errorf("DayNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekNumber(t *testing.T) {
	start := model.NewDate(2024, time.March, 1)
	cases := map[int]int{1: 1, 7: 1, 8: 2, 14: 2, 15: 3}
	for day, want := range cases {
		now := start.AddDays(day - 1).Time
		if got := WeekNumber(start, now); got != want {
			t.Errorf("day %d: WeekNumber() = %d, want %d", day, got, want)
		}
	}
}

func TestMilestones(t *testing.T) {
	if got := Milestones(100); len(got) != 4 || got[3] != 100 {
		t.Errorf("Milestones(100) = %v", got)
	}
	if got := Milestones(45); got == nil || len(got) != 0 {
		t.Errorf("Milestones(45) = %v, want empty non-nil", got)
	}

	got := Milestones(21)
	got[0] = 99
	if Milestones(21)[0] != 7 {
		t.Error("Milestones returned shared backing array")
	}

	if !IsMilestoneDay(66, 44) || IsMilestoneDay(66, 45) || IsMilestoneDay(45, 7) {
		t.Error("IsMilestoneDay mismatch")
	}
}

func TestStreak(t *testing.T) {
	today := model.NewDate(2024, time.March, 10)
	now := at(2024, time.March, 10)

	tests := []struct {
		name     string
		checkins []model.DailyCheckin
		want     int
	}{
		{
			name: "four consecutive days ending today",
			checkins: []model.DailyCheckin{
				checkin(today, 1),
				checkin(today.AddDays(-1), 1),
				checkin(today.AddDays(-2), 1),
				checkin(today.AddDays(-3), 1),
				checkin(today.AddDays(-5), 1),
			},
			want: 4,
		},
		{
			name: "today not yet done keeps yesterday's run",
			checkins: []model.DailyCheckin{
				checkin(today),
				checkin(today.AddDays(-1), 1),
				checkin(today.AddDays(-2), 1),
			},
			want: 2,
		},
		{
			name: "no today record counts from yesterday",
			checkins: []model.DailyCheckin{
				checkin(today.AddDays(-1), 1),
				checkin(today.AddDays(-2), 1),
			},
			want: 2,
		},
		{
			name: "gap of two days",
			checkins: []model.DailyCheckin{
				checkin(today.AddDays(-2), 1),
			},
			want: 0,
		},
		{
			name: "missed yesterday breaks the run",
			checkins: []model.DailyCheckin{
				checkin(today, 1),
				checkin(today.AddDays(-1), 2),
				checkin(today.AddDays(-2), 1),
			},
			want: 1,
		},
		{
			name: "unordered input",
			checkins: []model.DailyCheckin{
				checkin(today.AddDays(-2), 1),
				checkin(today, 1),
				checkin(today.AddDays(-1), 1),
			},
			want: 3,
		},
		{name: "empty", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.checkins, 1, now); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := Streak(tests[0].checkins, 9, now); got != 0 {
		t.Errorf("invalid slot streak = %d, want 0", got)
	}
}

func TestMaxStreak(t *testing.T) {
	today := model.NewDate(2024, time.March, 10)
	checkins := []model.DailyCheckin{
		checkin(today, 1, 2),
		checkin(today.AddDays(-1), 2),
		checkin(today.AddDays(-2), 2),
	}
	if got := MaxStreak(checkins, []model.Slot{1, 2}, at(2024, time.March, 10)); got != 3 {
		t.Errorf("MaxStreak() = %d, want 3", got)
	}
}

func TestRollingAdherence(t *testing.T) {
	today := model.NewDate(2024, time.March, 10)
	now := at(2024, time.March, 10)

	t.Run("empty window is optimistic", func(t *testing.T) {
		if got := RollingAdherence(nil, 1, now); got != 100 {
			t.Errorf("got %d, want 100", got)
		}
	})

	t.Run("one done day out of seven", func(t *testing.T) {
		checkins := []model.DailyCheckin{
			checkin(today, 1),
			checkin(today.AddDays(-1)),
		}
		if got := RollingAdherence(checkins, 1, now); got != 14 {
			t.Errorf("got %d, want 14", got)
		}
	})

	t.Run("records outside the window are ignored", func(t *testing.T) {
		checkins := []model.DailyCheckin{checkin(today.AddDays(-7), 1)}
		if got := RollingAdherence(checkins, 1, now); got != 100 {
			t.Errorf("got %d, want 100", got)
		}
	})

	t.Run("full week", func(t *testing.T) {
		var checkins []model.DailyCheckin
		for i := 0; i < 7; i++ {
			checkins = append(checkins, checkin(today.AddDays(-i), 1))
		}
		if got := RollingAdherence(checkins, 1, now); got != 100 {
			t.Errorf("got %d, want 100", got)
		}
	})
}

func TestComputeProgress(t *testing.T) {
	start := model.NewDate(2024, time.March, 1)
	ch := &model.Challenge{
		DurationDays: 21,
		StartDate:    start,
		Habit1ID:     uintPtr(1),
		Habit2ID:     uintPtr(2),
	}
	now := at(2024, time.March, 7)
	checkins := []model.DailyCheckin{
		checkin(start, 1, 2),
		checkin(start.AddDays(1), 1),
		checkin(start.AddDays(2)),
		checkin(start.AddDays(6), 2),
	}

	p := ComputeProgress(ch, checkins, now)
	if p.DayNumber != 7 {
		t.Errorf("DayNumber = %d, want 7", p.DayNumber)
	}
	if p.CompletedDays != 3 {
		t.Errorf("CompletedDays = %d, want 3", p.CompletedDays)
	}
	if p.TodayCompletionPct != 50 {
		t.Errorf("TodayCompletionPct = %d, want 50", p.TodayCompletionPct)
	}
	// 4 completions over 7 days x 2 slots
	if p.OverallAdherencePct != 29 {
		t.Errorf("OverallAdherencePct = %d, want 29", p.OverallAdherencePct)
	}
	if !p.IsMilestoneDay {
		t.Error("day 7 of 21 should be a milestone")
	}
	if p.NextMilestone == nil || *p.NextMilestone != 14 {
		t.Errorf("NextMilestone = %v, want 14", p.NextMilestone)
	}
}

func TestComputeProgressWithoutHabits(t *testing.T) {
	ch := &model.Challenge{DurationDays: 30, StartDate: model.NewDate(2024, time.March, 1)}
	p := ComputeProgress(ch, []model.DailyCheckin{checkin(model.NewDate(2024, time.March, 1))}, at(2024, time.March, 1))
	if p.OverallAdherencePct != 0 || p.TodayCompletionPct != 0 {
		t.Errorf("expected zero percentages, got %+v", p)
	}
}

func TestComputeProgressAfterEnd(t *testing.T) {
	ch := &model.Challenge{DurationDays: 21, StartDate: model.NewDate(2024, time.March, 1), Habit1ID: uintPtr(1)}
	p := ComputeProgress(ch, nil, at(2024, time.May, 1))
	if p.NextMilestone != nil {
		t.Errorf("NextMilestone = %d, want nil", *p.NextMilestone)
	}
	if p.OverallAdherencePct != 0 {
		t.Errorf("OverallAdherencePct = %d, want 0", p.OverallAdherencePct)
	}
}

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		name                         string
		day, total, todayPct, streak int
		contains                     string
	}{
		{"long streak", 10, 30, 100, 8, "8 days in a row"},
		{"short streak", 10, 30, 100, 4, "4 days strong"},
		{"perfect day", 10, 30, 100, 1, "Every habit done"},
		{"first day", 1, 30, 0, 0, "Day 1"},
		{"foundation", 3, 30, 50, 0, "Foundation"},
		{"early", 9, 30, 50, 0, "take root"},
		{"halfway", 15, 30, 50, 0, "Day 15 of 30"},
		{"momentum", 20, 30, 50, 0, "momentum"},
		{"final stretch", 28, 30, 50, 0, "day 28 of 30"},
		{"complete", 30, 30, 50, 0, "Challenge complete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MotivationalMessage(tt.day, tt.total, tt.todayPct, tt.streak)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("MotivationalMessage() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{8}-[a-z0-9]{4}-[a-z0-9]{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tok := GenerateToken()
		if !pattern.MatchString(tok) {
			t.Fatalf("token %q does not match %s", tok, pattern)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}
