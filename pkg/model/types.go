package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Course is a catalog entry, optionally enrolled by the current learner.
type Course struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Provider    string   `json:"provider" yaml:"provider"`
	Category    string   `json:"category" yaml:"category"`
	Level       Level    `json:"level" yaml:"level"`
	Hours       float64  `json:"hours" yaml:"hours"`
	Description string   `json:"description" yaml:"description"` // markdown
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Enrolled    bool     `json:"enrolled,omitempty" yaml:"enrolled,omitempty"`
	Progress    float64  `json:"progress,omitempty" yaml:"progress,omitempty"` // 0..1
}

// Validate checks the course is usable
func (c *Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course ID cannot be empty")
	}
	if c.Title == "" {
		return fmt.Errorf("course %s title cannot be empty", c.ID)
	}
	if c.Progress < 0 || c.Progress > 1 {
		return fmt.Errorf("course %s progress %v out of range [0,1]", c.ID, c.Progress)
	}
	if c.Level != "" && !c.Level.IsValid() {
		return fmt.Errorf("course %s has invalid level: %s", c.ID, c.Level)
	}
	return nil
}

// Level is a course difficulty
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// IsValid returns true if the level is a recognized value
func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Conversation is a message thread with one counterpart.
type Conversation struct {
	ID       string    `json:"id" yaml:"id"`
	With     string    `json:"with" yaml:"with"`
	Role     string    `json:"role,omitempty" yaml:"role,omitempty"` // "mentor", "recruiter", ...
	Unread   int       `json:"unread,omitempty" yaml:"unread,omitempty"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Message is a single entry in a conversation.
type Message struct {
	From   string    `json:"from" yaml:"from"`
	Text   string    `json:"text" yaml:"text"`
	SentAt time.Time `json:"sent_at" yaml:"sent_at"`
	Mine   bool      `json:"mine,omitempty" yaml:"mine,omitempty"`
}

// LastMessage returns the most recent message, if any.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Clone creates a deep copy of the conversation
func (c Conversation) Clone() Conversation {
	clone := c
	if c.Messages != nil {
		clone.Messages = make([]Message, len(c.Messages))
		copy(clone.Messages, c.Messages)
	}
	return clone
}

// Notification is an inbox entry.
type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	Kind      NotificationKind `json:"kind" yaml:"kind"`
	Title     string           `json:"title" yaml:"title"`
	Body      string           `json:"body" yaml:"body"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
	Read      bool             `json:"read,omitempty" yaml:"read,omitempty"`
}

// NotificationKind categorizes a notification
type NotificationKind string

const (
	KindCourse  NotificationKind = "course"
	KindMessage NotificationKind = "message"
	KindJob     NotificationKind = "job"
	KindSystem  NotificationKind = "system"
)

// IsValid returns true if the kind is a recognized value
func (k NotificationKind) IsValid() bool {
	switch k {
	case KindCourse, KindMessage, KindJob, KindSystem:
		return true
	}
	return false
}

// Job is a listing from the jobs endpoint.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"` // full-time, contract, ...
	Salary      string    `json:"salary,omitempty"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// BookmarkType is what a bookmark points at.
type BookmarkType string

const (
	BookmarkJob    BookmarkType = "JOB"
	BookmarkCourse BookmarkType = "COURSE"
)

// IsValid returns true if the bookmark type is a recognized value
func (t BookmarkType) IsValid() bool {
	return t == BookmarkJob || t == BookmarkCourse
}

// Bookmark references a job or course by id.
type Bookmark struct {
	Type     BookmarkType `json:"type"`
	TargetID string       `json:"targetId"`
}

// JobProfile is the learner's profile shown to employers.
type JobProfile struct {
	Headline   string    `json:"headline"`
	Summary    string    `json:"summary"`
	Location   string    `json:"location"`
	Skills     []string  `json:"skills"`
	OpenToWork bool      `json:"openToWork"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// ErrRequired is wrapped by validation errors for missing fields.
var ErrRequired = errors.New("required")

// Validate checks the required profile fields
func (p *JobProfile) Validate() error {
	if strings.TrimSpace(p.Headline) == "" {
		return fmt.Errorf("headline: %w", ErrRequired)
	}
	if strings.TrimSpace(p.Location) == "" {
		return fmt.Errorf("location: %w", ErrRequired)
	}
	return nil
}

// ParseSkills splits a comma-separated skill list, dropping blanks.
func ParseSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
