package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParseLine(t *testing.T) {
	ts := time.Date(2026, 10, 16, 9, 12, 44, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want Entry
	}{
		{
			name: "empty line",
			in:   "",
			want: Entry{},
		},
		{
			name: "plain text",
			in:   "panic: something",
			want: Entry{Message: "panic: something", Raw: "panic: something"},
		},
		{
			name: "info with fields",
			in:   "2026-10-16T09:12:44Z INF submitting image bytes=5120 input=cat.png",
			want: Entry{
				Time:    ts,
				Level:   "INF",
				Message: "submitting image",
				Fields:  "bytes=5120 input=cat.png",
				Raw:     "2026-10-16T09:12:44Z INF submitting image bytes=5120 input=cat.png",
			},
		},
		{
			name: "error without fields",
			in:   "2026-10-16T09:12:44Z ERR submission failed",
			want: Entry{
				Time:    ts,
				Level:   "ERR",
				Message: "submission failed",
				Raw:     "2026-10-16T09:12:44Z ERR submission failed",
			},
		},
		{
			name: "unknown level",
			in:   "2026-10-16T09:12:44Z NOPE hello",
			want: Entry{Message: "2026-10-16T09:12:44Z NOPE hello", Raw: "2026-10-16T09:12:44Z NOPE hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.in)
			if !got.Time.Equal(tt.want.Time) {
				t.Errorf("Time = %v, want %v", got.Time, tt.want.Time)
			}
			got.Time, tt.want.Time = time.Time{}, time.Time{}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	got := ParseLines([]string{
		"2026-10-16T09:12:44Z WRN health probe failed error=refused",
		"    continuation",
	})
	if len(got) != 2 {
		t.Fatalf("ParseLines() returned %d entries, want 2", len(got))
	}
	if got[0].Level != "WRN" || got[0].Fields != "error=refused" {
		t.Errorf("first entry = %#v", got[0])
	}
	if got[1].Level != "" || got[1].Message != "    continuation" {
		t.Errorf("second entry = %#v", got[1])
	}
}
