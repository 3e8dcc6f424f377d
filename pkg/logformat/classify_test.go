package logformat

import (
	"testing"
	"time"

	"github.com/TimelordUK/emrlog/internal/config"
)

func TestClassifier_DefaultMarkers(t *testing.T) {
	c := NewClassifier(&config.DefaultConfig().Markers)

	tests := []struct {
		line string
		want Kind
	}{
		{"Patient ID: LCR-2024-001", KindPatient},
		{"PATIENT TRANSFER", KindPatient},
		{"Date: 2024-01-15", KindDateTime},
		{"ADMISSION TIME 10:30", KindDateTime},
		{"Diagnosis: Malaria", KindDiagnosis},
		{"FINAL DIAGNOSIS", KindDiagnosis},
		{"Time: 10:30 AM", KindGeneric},
		{"Patient Records:", KindGeneric},
		{"Status: Treated and Discharged", KindGeneric},
		{"", KindBlank},
		{"   \t", KindBlank},
		// patient markers take precedence
		{"Patient ID: X Date: Y Diagnosis: Z", KindPatient},
		{"Date: 2024-01-15 Diagnosis: Malaria", KindDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := c.Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifier_CustomMarkers(t *testing.T) {
	c := NewClassifier(&config.MarkerConfig{
		Patient:   []string{"MRN:"},
		DateTime:  []string{""},
		Diagnosis: nil,
	})

	if got := c.Classify("MRN: 42"); got != KindPatient {
		t.Errorf("Classify(MRN) = %v, want patient", got)
	}
	// empty markers never match
	if got := c.Classify("Date: today"); got != KindGeneric {
		t.Errorf("Classify(Date) = %v, want generic", got)
	}
}

func TestKindString(t *testing.T) {
	if KindDiagnosis.String() != "diagnosis" || KindUnknown.String() != "unknown" {
		t.Fatalf("unexpected kind names: %s %s", KindDiagnosis, KindUnknown)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 5, 0, time.Local)
	if got := FormatTimestamp(ts); got != "2024-01-15 10:30:05" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
}
