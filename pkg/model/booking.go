package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Consultant offers bookable consultation slots
type Consultant struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Expertise string   `json:"expertise" yaml:"expertise"`
	Bio       string   `json:"bio" yaml:"bio"`
	Slots     []string `json:"slots" yaml:"slots"` // e.g. "Mon 10:00"
}

// Booking is a requested consultation
type Booking struct {
	ID           int64     `json:"id"`
	ConsultantID string    `json:"consultant_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Topic        string    `json:"topic"`
	Slot         string    `json:"slot"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the required booking fields
func (b *Booking) Validate() error {
	if b.ConsultantID == "" {
		return fmt.Errorf("consultant: %w", ErrRequired)
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name: %w", ErrRequired)
	}
	if err := ValidateEmail(b.Email); err != nil {
		return err
	}
	if strings.TrimSpace(b.Topic) == "" {
		return fmt.Errorf("topic: %w", ErrRequired)
	}
	if strings.TrimSpace(b.Slot) == "" {
		return fmt.Errorf("slot: %w", ErrRequired)
	}
	return nil
}

// ValidateEmail checks an email address is present and well formed
func ValidateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("email: %w", ErrRequired)
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("email: invalid address %q", s)
	}
	return nil
}
