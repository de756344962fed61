package ui

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// CourseItem wraps model.Course to implement list.Item
type CourseItem struct {
	Course     model.Course
	Bookmarked bool
}

func (i CourseItem) Title() string {
	return i.Course.Title
}

func (i CourseItem) Description() string {
	return fmt.Sprintf("%s • %s • %.0fh", i.Course.Provider, i.Course.Level, i.Course.Hours)
}

func (i CourseItem) FilterValue() string {
	return i.Course.Title + " " + i.Course.Provider + " " + i.Course.Category + " " + strings.Join(i.Course.Tags, " ")
}
