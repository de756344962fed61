// Package stats summarizes learner progress for the dashboard and reports.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// Progress summarizes progress across enrolled courses.
type Progress struct {
	Enrolled   int
	Completed  int     // progress >= 1
	Mean       float64 // 0..1
	Median     float64
	StdDev     float64
	HoursTotal float64
	HoursDone  float64
}

// Summarize computes progress statistics over the enrolled courses.
func Summarize(courses []model.Course) Progress {
	var values, hours []float64
	var p Progress
	for _, c := range courses {
		if !c.Enrolled {
			continue
		}
		p.Enrolled++
		if c.Progress >= 1 {
			p.Completed++
		}
		values = append(values, c.Progress)
		hours = append(hours, c.Hours)
		p.HoursDone += c.Hours * c.Progress
	}
	if len(values) == 0 {
		return p
	}

	p.HoursTotal = floats.Sum(hours)
	p.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		p.StdDev = stat.StdDev(values, nil)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	p.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return p
}

// Enrolled returns the enrolled courses ordered by progress, most advanced
// first.
func Enrolled(courses []model.Course) []model.Course {
	var out []model.Course
	for _, c := range courses {
		if c.Enrolled {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Progress > out[j].Progress
	})
	return out
}
