// Package loader reads the portal's static datasets: courses,
// conversations, notifications and consultants.
//
// Each dataset is a YAML file. Defaults are embedded in the binary; a data
// directory may override any of them file by file.
package loader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// Dataset file names.
const (
	CoursesFile       = "courses.yaml"
	ConversationsFile = "conversations.yaml"
	NotificationsFile = "notifications.yaml"
	ConsultantsFile   = "consultants.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Dataset is everything the static screens render.
type Dataset struct {
	Courses       []model.Course
	Conversations []model.Conversation
	Notifications []model.Notification
	Consultants   []model.Consultant
}

// Files lists the dataset file names in load order.
func Files() []string {
	return []string{CoursesFile, ConversationsFile, NotificationsFile, ConsultantsFile}
}

// LoadDataset loads every dataset, preferring files in dir over the embedded
// defaults. An empty dir uses only the defaults.
func LoadDataset(dir string) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Courses, err = loadCourses(dir); err != nil {
		return Dataset{}, err
	}
	if err = loadInto(dir, ConversationsFile, &ds.Conversations); err != nil {
		return Dataset{}, err
	}
	if err = loadInto(dir, NotificationsFile, &ds.Notifications); err != nil {
		return Dataset{}, err
	}
	if err = loadInto(dir, ConsultantsFile, &ds.Consultants); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func loadCourses(dir string) ([]model.Course, error) {
	var raw []model.Course
	if err := loadInto(dir, CoursesFile, &raw); err != nil {
		return nil, err
	}
	courses := raw[:0]
	for _, c := range raw {
		if err := c.Validate(); err != nil {
			// Skip malformed entries but keep the rest of the catalog
			log.Printf("Warning: skipping course: %v", err)
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func loadInto(dir, name string, out any) error {
	data, err := readFile(dir, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// readFile returns the override from dir if present, else the embedded copy.
func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return data, nil
}
