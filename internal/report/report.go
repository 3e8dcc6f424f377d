// Package report formats read results and failures for the console.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/emrlog/internal/config"
	"github.com/TimelordUK/emrlog/internal/fault"
	"github.com/TimelordUK/emrlog/internal/render"
	"github.com/TimelordUK/emrlog/internal/source"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

const (
	HospitalName = "St. Mary's Hospital Lacor"
	Location     = "Gulu, Uganda"
	SystemName   = "EMR File Reader System"
	Website      = "https://www.lacorhospital.org/"
)

var kindIcons = map[logformat.Kind]string{
	logformat.KindPatient:   "👤",
	logformat.KindDateTime:  "📅",
	logformat.KindDiagnosis: "🩺",
	logformat.KindGeneric:   "📝",
}

// Reporter writes human-readable output. Results go to out, failures to
// errOut. It holds styling only.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config

	outRenderer *lipgloss.Renderer

	bannerStyle  lipgloss.Style
	numberStyle  lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// New creates a reporter writing to out and errOut
func New(out, errOut io.Writer, cfg *config.Config) *Reporter {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)

	return &Reporter{
		out:          out,
		errOut:       errOut,
		cfg:          cfg,
		outRenderer:  outR,
		bannerStyle:  outR.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Banner)).Bold(true),
		numberStyle:  outR.NewStyle().Foreground(lipgloss.Color(cfg.Theme.LineNumbers)),
		successStyle: outR.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Success)),
		errorStyle:   errR.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Error)).Bold(true),
	}
}

// RendererFor returns the line renderer to use for a file
func (r *Reporter) RendererFor(path string) render.Renderer {
	return render.ForFile(r.cfg, path, r.outRenderer)
}

// SystemHeader prints the hospital banner
func (r *Reporter) SystemHeader(now time.Time) {
	rule := strings.Repeat("=", r.cfg.Display.HeaderWidth)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, r.bannerStyle.Render("    "+strings.ToUpper(HospitalName)))
	fmt.Fprintln(r.out, "    "+Location)
	fmt.Fprintln(r.out, "    "+SystemName)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "🏥 Electronic Medical Records (EMR) System")
	fmt.Fprintln(r.out, "📅 Session Time: "+logformat.FormatTimestamp(now))
	fmt.Fprintln(r.out, "🌐 Website: "+Website)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
}

// Banner prints a titled rule block
func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", r.cfg.Display.BannerWidth)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, r.bannerStyle.Render(title))
	fmt.Fprintln(r.out, rule)
}

// SampleCreated reports the sample file
func (r *Reporter) SampleCreated(path string) {
	fmt.Fprintln(r.out, r.successStyle.Render("Sample medical log file created: "+path))
}

// SampleFailed reports a failed sample write
func (r *Reporter) SampleFailed(err error) {
	fmt.Fprintln(r.errOut, r.errorStyle.Render("Could not create sample medical log file: ")+err.Error())
}

// Lines prints every line with its number followed by a count
func (r *Reporter) Lines(res *source.Result, lr render.Renderer) {
	width := r.cfg.Display.BannerWidth
	fmt.Fprintln(r.out, "📄 MEDICAL LOG CONTENT:")
	fmt.Fprintln(r.out, strings.Repeat("-", width))

	for i := range res.Lines {
		line := &res.Lines[i]
		if r.cfg.Display.ShowLineNumbers {
			fmt.Fprintf(r.out, "%s | %s\n", r.numberStyle.Render(fmt.Sprintf("%3d", line.Number)), lr.Render(line))
		} else {
			fmt.Fprintln(r.out, lr.Render(line))
		}
	}

	fmt.Fprintln(r.out, strings.Repeat("-", width))
	fmt.Fprintln(r.out, r.successStyle.Render(
		fmt.Sprintf("✅ Successfully read %d lines from %s", res.LineCount(), res.Source.Name())))
}

// Classified prints the tagged view of a classified read
func (r *Reporter) Classified(res *source.Result) {
	fmt.Fprintln(r.out, "📊 MEDICAL RECORDS SUMMARY:")
	fmt.Fprintln(r.out, strings.Repeat("-", 50))

	for _, line := range res.Lines {
		icon, ok := kindIcons[line.Kind]
		if !ok {
			icon = kindIcons[logformat.KindGeneric]
		}
		fmt.Fprintln(r.out, icon+" "+line.Text)
	}

	counts := source.CountKinds(res)
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	fmt.Fprintf(r.out, "   Patients: %d  Dates/Times: %d  Diagnoses: %d\n",
		counts[logformat.KindPatient], counts[logformat.KindDateTime], counts[logformat.KindDiagnosis])
	fmt.Fprintln(r.out, r.successStyle.Render(
		fmt.Sprintf("✅ Processed %d records from %s", res.Records, res.Source.Name())))
}

// WholeFile prints a whole-file read with file statistics
func (r *Reporter) WholeFile(res *source.Result, lr render.Renderer) {
	fmt.Fprintln(r.out, "📋 COMPLETE MEDICAL LOG:")
	fmt.Fprintln(r.out, strings.Repeat("=", 60))

	for i := range res.Lines {
		line := &res.Lines[i]
		fmt.Fprintf(r.out, "%s: %s\n", r.numberStyle.Render(fmt.Sprintf("%4d", line.Number)), lr.Render(line))
	}

	fmt.Fprintln(r.out, strings.Repeat("=", 60))
	fmt.Fprintln(r.out, "📊 File Statistics:")
	fmt.Fprintf(r.out, "   Total Lines: %d\n", res.LineCount())
	fmt.Fprintf(r.out, "   File Size: %d bytes\n", res.Size)
	fmt.Fprintf(r.out, "   Last Modified: %s\n", logformat.FormatTimestamp(res.ModTime))
}

// Failure prints a categorized error block
func (r *Reporter) Failure(err *fault.Error) {
	fmt.Fprintln(r.errOut, r.errorStyle.Render("❌ "+failureTitle(err.Kind)))
	fmt.Fprintf(r.errOut, "   Kind: %s\n", err.Kind)
	fmt.Fprintf(r.errOut, "   Path: %s\n", err.Path)
	for _, hint := range err.Guidance() {
		fmt.Fprintln(r.errOut, "   "+hint)
	}
	fmt.Fprintln(r.errOut, "   Error details: "+err.Detail())
}

func failureTitle(k fault.Kind) string {
	switch k {
	case fault.NotFound:
		return "FILE NOT FOUND ERROR:"
	case fault.PermissionDenied:
		return "ACCESS DENIED ERROR:"
	default:
		return "INPUT/OUTPUT ERROR:"
	}
}

// Logged confirms a failure record was written
func (r *Reporter) Logged(path string) {
	fmt.Fprintln(r.out, "Error logged to: "+path)
}

// LogWriteFailed reports a failure record that could not be written
func (r *Reporter) LogWriteFailed(err error) {
	fmt.Fprintln(r.errOut, r.errorStyle.Render("⚠️  Could not log error: ")+err.Error())
}

// Info prints a plain message
func (r *Reporter) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}
