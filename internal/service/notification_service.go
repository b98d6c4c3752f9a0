package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/config"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
)

type MilestoneNotice struct {
	UserName     string
	UserEmail    string
	DayNumber    int
	DurationDays int
	Token        string
}

type LowAdherenceNotice struct {
	UserName       string
	UserEmail      string
	HabitName      string
	AdherencePct   int
	Threshold      int
	SimplerVersion *string
	Token          string
}

// Notifier tells the coach about events on a participant's tracker.
type Notifier interface {
	MilestoneReached(ctx context.Context, n MilestoneNotice) error
	LowAdherence(ctx context.Context, n LowAdherenceNotice) error
}

var (
	milestoneTmpl = template.Must(template.New("milestone").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #7c3aed;">Milestone Alert 🎉</h2>
  <p><strong>{{.UserName}}</strong> ({{.UserEmail}}) just reached <strong>Day {{.DayNumber}}</strong> of their {{.DurationDays}}-day challenge!</p>
  <p>This is a milestone day. Time for a review session prompt and some encouragement.</p>
  <a href="{{.TrackerURL}}" style="display:inline-block;background:#7c3aed;color:#fff;padding:12px 24px;border-radius:8px;text-decoration:none;margin-top:16px;">View Their Tracker</a>
  <hr style="margin:24px 0;border:none;border-top:1px solid #eee;" />
  <p style="color:#888;font-size:12px;">Identity Sprint Coach Dashboard</p>
</div>`))

	lowAdherenceTmpl = template.Must(template.New("low_adherence").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f59e0b;">Adherence Alert ⚠️</h2>
  <p><strong>{{.UserName}}</strong> ({{.UserEmail}}) has dropped below {{.Threshold}}% adherence on a habit.</p>
  <table style="border-collapse:collapse;width:100%;margin:16px 0;">
    <tr><td style="padding:8px;border:1px solid #eee;font-weight:600;">Habit</td><td style="padding:8px;border:1px solid #eee;">{{.HabitName}}</td></tr>
    <tr><td style="padding:8px;border:1px solid #eee;font-weight:600;">7-Day Adherence</td><td style="padding:8px;border:1px solid #eee;color:#ef4444;">{{.AdherencePct}}%</td></tr>
    {{- if .SimplerVersion}}
    <tr><td style="padding:8px;border:1px solid #eee;font-weight:600;">Suggested Simplification</td><td style="padding:8px;border:1px solid #eee;color:#7c3aed;">{{.SimplerVersion}}</td></tr>
    {{- end}}
  </table>
  <p>The app has already suggested the simplified version to the participant. Consider reaching out for a coaching check-in.</p>
  <a href="{{.TrackerURL}}" style="display:inline-block;background:#7c3aed;color:#fff;padding:12px 24px;border-radius:8px;text-decoration:none;margin-top:16px;">View Their Tracker</a>
  <hr style="margin:24px 0;border:none;border-top:1px solid #eee;" />
  <p style="color:#888;font-size:12px;">Identity Sprint Coach Dashboard</p>
</div>`))
)

type emailSettings struct {
	apiKey     string
	from       string
	coachEmail string
	baseURL    string
}

// EmailNotifier sends coach e-mails through Resend. Without an API key or a
// coach address every send is skipped with a warning.
type EmailNotifier struct {
	mu       sync.RWMutex
	settings emailSettings
	client   *resend.Client
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	n := &EmailNotifier{}
	n.Apply(cfg)
	return n
}

// Apply swaps in new notification settings; used on config reload.
func (n *EmailNotifier) Apply(cfg *config.Config) {
	s := emailSettings{
		apiKey:     cfg.Notification.ResendAPIKey,
		from:       cfg.Notification.From,
		coachEmail: cfg.Notification.CoachEmail,
		baseURL:    strings.TrimRight(cfg.Server.BaseURL, "/"),
	}

	var client *resend.Client
	if s.apiKey != "" {
		client = resend.NewClient(s.apiKey)
	}

	n.mu.Lock()
	n.settings = s
	n.client = client
	n.mu.Unlock()
}

func (n *EmailNotifier) snapshot() (emailSettings, *resend.Client) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.settings, n.client
}

func (n *EmailNotifier) MilestoneReached(ctx context.Context, m MilestoneNotice) error {
	s, client := n.snapshot()
	subject := fmt.Sprintf("🏆 Milestone reached: %s hit Day %d!", m.UserName, m.DayNumber)
	data := struct {
		MilestoneNotice
		TrackerURL string
	}{m, s.baseURL + util.TrackerPath(m.Token)}
	return n.send(ctx, "milestone", s, client, subject, milestoneTmpl, data)
}

func (n *EmailNotifier) LowAdherence(ctx context.Context, m LowAdherenceNotice) error {
	s, client := n.snapshot()
	subject := fmt.Sprintf("⚠️ Low adherence: %s needs support", m.UserName)
	data := struct {
		LowAdherenceNotice
		SimplerVersion string
		TrackerURL     string
	}{m, util.StringOr(m.SimplerVersion, ""), s.baseURL + util.TrackerPath(m.Token)}
	return n.send(ctx, "low_adherence", s, client, subject, lowAdherenceTmpl, data)
}

func (n *EmailNotifier) send(ctx context.Context, kind string, s emailSettings, client *resend.Client, subject string, tmpl *template.Template, data interface{}) error {
	if client == nil || s.coachEmail == "" {
		logger.Log.Warn("E-mail not configured, notification skipped", zap.String("kind", kind))
		monitoring.NotificationsTotal.WithLabelValues(kind, "skipped").Inc()
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return err
	}

	_, err := client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.coachEmail},
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		monitoring.NotificationsTotal.WithLabelValues(kind, "failed").Inc()
		return fmt.Errorf("send %s notification: %w", kind, err)
	}

	monitoring.NotificationsTotal.WithLabelValues(kind, "sent").Inc()
	logger.Log.Info("Coach notification sent", zap.String("kind", kind), zap.String("subject", subject))
	return nil
}
