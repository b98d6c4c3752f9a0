package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/config"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
)

func notifierConfig(apiKey, coach string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "https://sprint.example.com/"},
		Notification: config.NotificationConfig{
			ResendAPIKey: apiKey,
			From:         "Sprint <sprint@example.com>",
			CoachEmail:   coach,
		},
	}
}

func TestEmailNotifierSkipsWhenUnconfigured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		coach  string
	}{
		{"no api key", "", "coach@example.com"},
		{"no coach address", "re_test", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewEmailNotifier(notifierConfig(tt.apiKey, tt.coach))
			skipped := monitoring.NotificationsTotal.WithLabelValues("milestone", "skipped")
			before := testutil.ToFloat64(skipped)

			err := n.MilestoneReached(context.Background(), MilestoneNotice{UserName: "Asha", DayNumber: 7, DurationDays: 21, Token: "tok"})
			if err != nil {
				t.Fatalf("MilestoneReached: %v", err)
			}
			if got := testutil.ToFloat64(skipped) - before; got != 1 {
				t.Errorf("skipped counter moved by %v, want 1", got)
			}
		})
	}
}

func TestEmailNotifierHonoursCancelledContext(t *testing.T) {
	n := NewEmailNotifier(notifierConfig("re_test", "coach@example.com"))
	failed := monitoring.NotificationsTotal.WithLabelValues("low_adherence", "failed")
	before := testutil.ToFloat64(failed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.LowAdherence(ctx, LowAdherenceNotice{UserName: "Asha", HabitName: "Walk", AdherencePct: 40, Threshold: 60, Token: "tok"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if got := testutil.ToFloat64(failed) - before; got != 1 {
		t.Errorf("failed counter moved by %v, want 1", got)
	}
}

func TestEmailNotifierApplySwapsSettings(t *testing.T) {
	n := NewEmailNotifier(notifierConfig("", ""))
	if s, client := n.snapshot(); client != nil || s.coachEmail != "" {
		t.Fatalf("unconfigured notifier has client=%v coach=%q", client, s.coachEmail)
	}

	n.Apply(notifierConfig("re_test", "coach@example.com"))
	s, client := n.snapshot()
	if client == nil {
		t.Fatal("client not built after Apply")
	}
	if s.coachEmail != "coach@example.com" || s.baseURL != "https://sprint.example.com" {
		t.Errorf("settings = %+v", s)
	}
}
