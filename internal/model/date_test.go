package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOfTruncatesToUTCDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	got := DateOf(time.Date(2024, time.March, 10, 2, 0, 0, 0, ist))
	if got.String() != "2024-03-09" {
		t.Errorf("DateOf() = %s, want 2024-03-09", got)
	}
}

func TestDaysSince(t *testing.T) {
	a := NewDate(2024, time.February, 28)
	b := NewDate(2024, time.March, 1)
	if got := b.DaysSince(a); got != 2 {
		t.Errorf("DaysSince = %d, want 2 across leap day", got)
	}
	if got := a.DaysSince(b); got != -2 {
		t.Errorf("DaysSince = %d, want -2", got)
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		Start Date `json:"start"`
	}
	if err := json.Unmarshal([]byte(`{"start":"2024-03-01"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !v.Start.Equal(NewDate(2024, time.March, 1)) {
		t.Errorf("Start = %s", v.Start)
	}
	if err := json.Unmarshal([]byte(`{"start":"03/01/2024"}`), &v); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"time", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), "2024-03-01"},
		{"bytes", []byte("2024-03-01"), "2024-03-01"},
		{"timestamp string", "2024-03-01T00:00:00Z", "2024-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.value); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %s, want %s", d, tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
