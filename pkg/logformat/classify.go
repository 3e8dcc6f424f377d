package logformat

import (
	"strings"

	"github.com/TimelordUK/emrlog/internal/config"
)

// Kind tags what a medical log line is about
type Kind int

const (
	KindUnknown Kind = iota // not classified
	KindBlank
	KindGeneric
	KindPatient
	KindDateTime
	KindDiagnosis
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindGeneric:
		return "generic"
	case KindPatient:
		return "patient"
	case KindDateTime:
		return "datetime"
	case KindDiagnosis:
		return "diagnosis"
	default:
		return "unknown"
	}
}

// Classifier tags lines by substring markers
type Classifier struct {
	patient   []string
	dateTime  []string
	diagnosis []string
}

// NewClassifier creates a classifier from config
func NewClassifier(cfg *config.MarkerConfig) *Classifier {
	return &Classifier{
		patient:   cfg.Patient,
		dateTime:  cfg.DateTime,
		diagnosis: cfg.Diagnosis,
	}
}

// Classify returns the kind for a line.
// Markers are case-sensitive; patient wins over date/time, which wins over
// diagnosis.
func (c *Classifier) Classify(line string) Kind {
	if containsAny(line, c.patient) {
		return KindPatient
	}
	if containsAny(line, c.dateTime) {
		return KindDateTime
	}
	if containsAny(line, c.diagnosis) {
		return KindDiagnosis
	}
	if strings.TrimSpace(line) == "" {
		return KindBlank
	}
	return KindGeneric
}

func containsAny(line string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(line, pattern) {
			return true
		}
	}
	return false
}
