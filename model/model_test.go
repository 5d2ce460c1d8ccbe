package model

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestValidCategory(t *testing.T) {
	for _, c := range []string{CategoryPre, CategoryLaunch, CategoryPost} {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	for _, c := range []string{"", "PRE", "during"} {
		if ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = true", c)
		}
	}
}

func TestLaunchLocation(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"", "UTC"},
		{"Europe/Berlin", "Europe/Berlin"},
		{"Not/AZone", "UTC"},
	}
	for _, tt := range tests {
		l := Launch{Timezone: tt.tz}
		if got := l.Location().String(); got != tt.want {
			t.Errorf("Location(%q) = %s, want %s", tt.tz, got, tt.want)
		}
	}
}

func TestBeforeSaveNormalizesToUTC(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	due := time.Date(2025, 6, 30, 9, 0, 0, 0, berlin)

	item := Checklist{DueDate: due}
	if err := item.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if item.DueDate.Location() != time.UTC || !item.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want same instant in UTC", item.DueDate)
	}

	sentAt := due.Add(time.Hour)
	r := Reminder{SendAt: due, SentAt: &sentAt}
	if err := r.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if r.SendAt.Location() != time.UTC || r.SentAt.Location() != time.UTC {
		t.Errorf("reminder times not UTC: %v %v", r.SendAt, r.SentAt)
	}
}
