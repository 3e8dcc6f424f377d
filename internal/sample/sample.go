// Package sample writes the demonstration medical log file.
package sample

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/TimelordUK/emrlog/internal/source"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

//go:embed patients.toml
var patientsTOML []byte

var bodyTemplate = template.Must(template.New("sample").Funcs(template.FuncMap{
	"underline": func(s string) string { return strings.Repeat("=", len(s)) },
}).Parse(`{{.Title}}
{{underline .Title}}
Generated: {{.Generated}}
Location: {{.Location}}

{{.Section}}
{{underline .Section}}

{{range .Patients}}{{range .Fields}}{{index . 0}}: {{index . 1}}
{{end}}
{{end}}{{.Footer}}
{{underline .Footer}}
`))

// Document is the data table behind the sample file
type Document struct {
	Title    string    `toml:"title"`
	Location string    `toml:"location"`
	Section  string    `toml:"section"`
	Footer   string    `toml:"footer"`
	Patients []Patient `toml:"patients"`
}

// Patient is one entry as ordered field/value pairs
type Patient struct {
	Fields [][]string `toml:"fields"`
}

// Field returns the value of the named field
func (p Patient) Field(name string) string {
	for _, f := range p.Fields {
		if f[0] == name {
			return f[1]
		}
	}
	return ""
}

// Default decodes the built-in document
func Default() (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(patientsTOML, &doc); err != nil {
		return nil, fmt.Errorf("parse sample data: %w", err)
	}
	for i, p := range doc.Patients {
		for _, f := range p.Fields {
			if len(f) != 2 {
				return nil, fmt.Errorf("parse sample data: patient %d: field %v is not a name/value pair", i+1, f)
			}
		}
	}
	return &doc, nil
}

// Render returns the lines of the document as they are written to disk
func (d *Document) Render(now time.Time) ([]string, error) {
	var b strings.Builder
	data := struct {
		*Document
		Generated string
	}{d, logformat.FormatTimestamp(now)}

	if err := bodyTemplate.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("render sample: %w", err)
	}
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n"), nil
}

// Writer creates the sample file
type Writer struct {
	doc *Document
	now func() time.Time
}

// NewWriter creates a writer for doc. A nil clock means time.Now.
func NewWriter(doc *Document, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{doc: doc, now: now}
}

// Create writes the sample to path, replacing any existing content.
// The source is returned even when writing fails so that callers can still
// attempt to read it.
func (w *Writer) Create(path string) (source.LogSource, error) {
	src := source.NewLogSource(path)

	lines, err := w.doc.Render(w.now())
	if err != nil {
		return src, err
	}

	file, err := os.Create(path)
	if err != nil {
		return src, fmt.Errorf("create sample: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return src, fmt.Errorf("write sample: %w", err)
	}
	if err := file.Close(); err != nil {
		return src, fmt.Errorf("close sample: %w", err)
	}

	return src, nil
}
