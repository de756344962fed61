package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

var reportCourses = []model.Course{
	{ID: "go-101", Title: "Go Fundamentals", Enrolled: true, Progress: 0.65, Hours: 12},
	{ID: "cloud", Title: "Cloud Architecture Patterns", Enrolled: true, Progress: 0.9, Hours: 20},
	{ID: "ux", Title: "UX Research Methods"},
}

func TestSaveProgressSnapshot_SVGAndPNG(t *testing.T) {
	tmp := t.TempDir()
	cases := []struct {
		name string
		file string
	}{
		{"svg", "report.svg"},
		{"png", filepath.Join("nested", "report.png")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(tmp, tc.file)
			err := SaveProgressSnapshot(ProgressSnapshotOptions{
				Path:    out,
				Learner: "Sam",
				Courses: reportCourses,
			})
			if err != nil {
				t.Fatalf("SaveProgressSnapshot error: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatalf("output file is empty")
			}
		})
	}
}

func TestSaveProgressSnapshot_InvalidFormat(t *testing.T) {
	err := SaveProgressSnapshot(ProgressSnapshotOptions{
		Path:    filepath.Join(t.TempDir(), "report.txt"),
		Courses: reportCourses,
	})
	if err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestWriteSVGContent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, "", reportCourses); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("Expected an svg document")
	}
	if !strings.Contains(out, "Go Fundamentals") || strings.Contains(out, "UX Research") {
		t.Error("Expected only enrolled courses in the report")
	}
	if !strings.Contains(out, "2 enrolled") {
		t.Error("Expected summary line")
	}
}

func TestWritePNGSignature(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, "Sam", reportCourses); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG signature")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}
