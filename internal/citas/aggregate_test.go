package citas

import (
	"errors"
	"os"
	"testing"
	"time"
)

var pollTime = time.Date(2025, time.October, 1, 10, 0, 0, 0, time.UTC)

func TestAggregate(t *testing.T) {
	body := []byte(`foo({"2025-10-07":[{"time":"09:00","freeSlots":2},{"time":"09:30","freeSlots":0}],"2025-10-05":[{"time":"09:00","freeSlots":3}]});`)

	summary, err := Aggregate(body, pollTime)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if summary.TotalAvailableDates != 2 {
		t.Errorf("TotalAvailableDates = %d, want 2", summary.TotalAvailableDates)
	}
	if summary.TotalAvailableSlots != 5 {
		t.Errorf("TotalAvailableSlots = %d, want 5", summary.TotalAvailableSlots)
	}

	// Sorted ascending regardless of feed order.
	if summary.AvailableDates[0].Date != "2025-10-05" || summary.AvailableDates[1].Date != "2025-10-07" {
		t.Errorf("dates not sorted ascending: %v, %v",
			summary.AvailableDates[0].Date, summary.AvailableDates[1].Date)
	}

	// Zero-capacity time entries stay on included days.
	day := summary.AvailableDates[1]
	if day.TimesCount != 2 || len(day.Times) != 2 {
		t.Errorf("included day should keep all time entries, got %d", day.TimesCount)
	}
	if day.TotalFreeSlots != 2 {
		t.Errorf("TotalFreeSlots = %d, want 2", day.TotalFreeSlots)
	}

	if summary.LastUpdated != pollTime.Format(time.RFC3339) {
		t.Errorf("LastUpdated = %q", summary.LastUpdated)
	}
}

func TestAggregate_ExcludesDaysWithoutFreeSlots(t *testing.T) {
	body := []byte(`cb({"2025-10-05":[{"time":"09:00","freeSlots":0}]})`)

	summary, err := Aggregate(body, pollTime)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if summary.TotalAvailableDates != 0 || len(summary.AvailableDates) != 0 {
		t.Errorf("day with zero total should be excluded: %+v", summary)
	}
	if summary.TotalAvailableSlots != 0 {
		t.Errorf("TotalAvailableSlots = %d, want 0", summary.TotalAvailableSlots)
	}
}

func TestAggregate_BarePayload(t *testing.T) {
	body := []byte(`{"2025-10-05":[{"time":"09:00","freeSlots":3}]}`)

	summary, err := Aggregate(body, pollTime)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if summary.TotalAvailableSlots != 3 {
		t.Errorf("TotalAvailableSlots = %d, want 3", summary.TotalAvailableSlots)
	}
}

func TestAggregate_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing closing parenthesis", `foo({"2025-10-05":[]}`},
		{"Invalid inner JSON", `foo({not json});`},
		{"Not a callback at all", `<html>error page</html>`},
		{"Empty body", ``},
		{"Wrong payload shape", `foo([1,2,3]);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Aggregate([]byte(tt.body), pollTime)
			if err == nil {
				t.Fatal("expected ParseError, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error type = %T, want *ParseError", err)
			}
			if summary != nil {
				t.Errorf("no partial summary expected, got %+v", summary)
			}
		})
	}
}

func TestUnwrapJSONP(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"Simple callback", `foo({"a":1})`, `{"a":1}`, false},
		{"Trailing semicolon", `jQuery17520_abc123xyz({"a":1});`, `{"a":1}`, false},
		{"Surrounding whitespace", "  cb({\"a\":1});\n", `{"a":1}`, false},
		{"Dollar identifier", `$jsonp({"a":1})`, `{"a":1}`, false},
		{"Bare JSON object", `{"a":1}`, `{"a":1}`, false},
		{"Bare JSON array", `[1,2]`, `[1,2]`, false},
		{"No parentheses", `foo`, "", true},
		{"Leading digit identifier", `1foo({"a":1})`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnwrapJSONP([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnwrapJSONP(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
			if err == nil && string(got) != tt.want {
				t.Errorf("UnwrapJSONP(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestAggregate_Fixture(t *testing.T) {
	body, err := os.ReadFile("../../testdata/fixtures/citas_feed.jsonp")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	summary, err := Aggregate(body, pollTime)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if summary.TotalAvailableDates != 2 {
		t.Fatalf("TotalAvailableDates = %d, want 2: %+v", summary.TotalAvailableDates, summary)
	}
	if summary.AvailableDates[0].Date != "2025-10-03" || summary.AvailableDates[1].Date != "2025-10-09" {
		t.Errorf("dates = %v", summary.AvailableDates)
	}
	if summary.TotalAvailableSlots != 7 {
		t.Errorf("TotalAvailableSlots = %d, want 7", summary.TotalAvailableSlots)
	}
}
