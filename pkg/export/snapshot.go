// Package export renders the learner's progress report as SVG or PNG.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/stats"
)

// Report layout in pixels.
const (
	reportWidth  = 720
	rowHeight    = 34
	headerHeight = 90
	labelWidth   = 260
	barWidth     = 360
	barHeight    = 16
	margin       = 24
)

// ProgressSnapshotOptions configures a report export.
type ProgressSnapshotOptions struct {
	Path    string
	Format  string // "svg" or "png"; inferred from Path when empty
	Learner string
	Courses []model.Course
}

// SaveProgressSnapshot writes the progress report for enrolled courses.
func SaveProgressSnapshot(opts ProgressSnapshotOptions) error {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Path)), ".")
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported report format %q (want svg or png)", format)
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if format == "svg" {
		err = WriteSVG(w, opts.Learner, opts.Courses)
	} else {
		err = WritePNG(w, opts.Learner, opts.Courses)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

type reportRow struct {
	label    string
	progress float64
}

func buildRows(courses []model.Course) []reportRow {
	enrolled := stats.Enrolled(courses)
	rows := make([]reportRow, 0, len(enrolled))
	for _, c := range enrolled {
		p := c.Progress
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		rows = append(rows, reportRow{label: c.Title, progress: p})
	}
	return rows
}

func reportHeight(rows int) int {
	return headerHeight + rows*rowHeight + margin
}

func summaryLine(courses []model.Course) string {
	p := stats.Summarize(courses)
	return fmt.Sprintf("%d enrolled · %d completed · mean %.0f%% · median %.0f%% · %.1f/%.1f h",
		p.Enrolled, p.Completed, p.Mean*100, p.Median*100, p.HoursDone, p.HoursTotal)
}

func title(learner string) string {
	if learner == "" {
		return "Learning progress"
	}
	return "Learning progress: " + learner
}

// WriteSVG renders the report as SVG.
func WriteSVG(w io.Writer, learner string, courses []model.Course) error {
	rows := buildRows(courses)
	height := reportHeight(len(rows))

	canvas := svg.New(w)
	canvas.Start(reportWidth, height)
	canvas.Title(title(learner))
	canvas.Rect(0, 0, reportWidth, height, "fill:#282A36")
	canvas.Text(margin, 36, title(learner), "fill:#BD93F9;font-family:monospace;font-size:20px;font-weight:bold")
	canvas.Text(margin, 62, summaryLine(courses), "fill:#BFBFBF;font-family:monospace;font-size:12px")

	for i, r := range rows {
		y := headerHeight + i*rowHeight
		canvas.Text(margin, y+barHeight-3, truncate(r.label, 32), "fill:#F8F8F2;font-family:monospace;font-size:13px")
		canvas.Rect(labelWidth, y, barWidth, barHeight, "fill:#44475A")
		canvas.Rect(labelWidth, y, int(float64(barWidth)*r.progress), barHeight, "fill:"+barColor(r.progress))
		canvas.Text(labelWidth+barWidth+10, y+barHeight-3, fmt.Sprintf("%3.0f%%", r.progress*100), "fill:#BFBFBF;font-family:monospace;font-size:12px")
	}
	canvas.End()
	return nil
}

// WritePNG renders the report as PNG.
func WritePNG(w io.Writer, learner string, courses []model.Course) error {
	rows := buildRows(courses)
	height := reportHeight(len(rows))

	dc := gg.NewContext(reportWidth, height)
	dc.SetHexColor("#282A36")
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor("#BD93F9")
	dc.DrawString(title(learner), margin, 36)
	dc.SetHexColor("#BFBFBF")
	dc.DrawString(summaryLine(courses), margin, 62)

	for i, r := range rows {
		y := float64(headerHeight + i*rowHeight)
		dc.SetHexColor("#F8F8F2")
		dc.DrawString(truncate(r.label, 32), margin, y+barHeight-3)

		dc.SetHexColor("#44475A")
		dc.DrawRectangle(labelWidth, y, barWidth, barHeight)
		dc.Fill()

		dc.SetHexColor(barColor(r.progress))
		dc.DrawRectangle(labelWidth, y, barWidth*r.progress, barHeight)
		dc.Fill()

		dc.SetHexColor("#BFBFBF")
		dc.DrawString(fmt.Sprintf("%3.0f%%", r.progress*100), labelWidth+barWidth+10, y+barHeight-3)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func barColor(p float64) string {
	switch {
	case p >= 0.75:
		return "#50FA7B"
	case p >= 0.5:
		return "#FFB86C"
	case p >= 0.25:
		return "#8BE9FD"
	default:
		return "#6272A4"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
