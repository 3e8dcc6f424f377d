package sample

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/TimelordUK/emrlog/internal/config"
	"github.com/TimelordUK/emrlog/internal/source"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

var fixedNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return NewWriter(doc, func() time.Time { return fixedNow })
}

func TestDefault_ThreePatients(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(doc.Patients) != 3 {
		t.Fatalf("len(Patients) = %d, want 3", len(doc.Patients))
	}
	if got := doc.Patients[0].Field("Status"); got != "Treated and Discharged" {
		t.Fatalf("first patient status = %q", got)
	}
	if got := doc.Patients[0].Field("Missing"); got != "" {
		t.Fatalf("Field(Missing) = %q, want empty", got)
	}
}

func TestRender_Layout(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	lines, err := doc.Render(fixedNow)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(lines) != 37 {
		t.Fatalf("len(lines) = %d, want 37:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	checks := map[int]string{
		0:  "ST. MARY'S HOSPITAL LACOR - MEDICAL LOG FILE",
		2:  "Generated: 2024-01-15 09:00:00",
		3:  "Location: Gulu, Uganda",
		4:  "",
		5:  "Patient Records:",
		8:  "Patient ID: LCR-2024-001",
		15: "Status: Treated and Discharged",
		16: "",
		17: "Patient ID: LCR-2024-002",
		26: "Patient ID: LCR-2024-003",
		34: "",
		35: "END OF MEDICAL LOG",
		36: "==================",
	}
	for i, want := range checks {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	w := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "medical_log_sample.txt")

	src, err := w.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if src.Path != path {
		t.Fatalf("src.Path = %q, want %q", src.Path, path)
	}

	want, _ := w.doc.Render(fixedNow)
	readers := []source.Reader{source.NewStreamReader(), source.NewMappedReader()}
	for _, r := range readers {
		res, err := r.Read(src)
		if err != nil {
			t.Fatalf("%s Read: %v", r.Name(), err)
		}
		if !reflect.DeepEqual(res.Texts(), want) {
			t.Errorf("%s read back %q, want %q", r.Name(), res.Texts(), want)
		}
	}
}

func TestCreate_Truncates(t *testing.T) {
	w := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("old content\n", 500)), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := w.Create(path); err != nil {
		t.Fatalf("Create: %v", err)
	}
	res, err := source.NewStreamReader().Read(source.NewLogSource(path))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if res.LineCount() != 37 {
		t.Fatalf("LineCount() = %d, want 37", res.LineCount())
	}
}

func TestCreate_FailureStillReturnsSource(t *testing.T) {
	w := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "no-such-dir", "sample.txt")

	src, err := w.Create(path)
	if err == nil {
		t.Fatalf("Create returned nil error for an unwritable path")
	}
	if src.Path != path {
		t.Fatalf("src.Path = %q, want %q", src.Path, path)
	}
}

func TestSample_ClassifiedCounts(t *testing.T) {
	w := newTestWriter(t)
	src, err := w.Create(filepath.Join(t.TempDir(), "sample.txt"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	classifier := logformat.NewClassifier(&config.DefaultConfig().Markers)
	res, err := source.NewClassifiedReader(classifier).Read(src)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	counts := source.CountKinds(res)
	for _, kind := range []logformat.Kind{logformat.KindPatient, logformat.KindDateTime, logformat.KindDiagnosis} {
		if counts[kind] != 3 {
			t.Errorf("count[%v] = %d, want 3", kind, counts[kind])
		}
	}
	if res.Records != 37 {
		t.Errorf("Records = %d, want 37", res.Records)
	}
	if res.LineCount() != 32 {
		t.Errorf("LineCount() = %d, want 32 non-blank lines", res.LineCount())
	}
}
