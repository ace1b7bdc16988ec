package models

import (
	"fmt"
	"time"
)

type Reminder struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"userId,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ReminderTime time.Time  `json:"reminderTime"`
	IsCompleted  bool       `json:"isCompleted"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (r *Reminder) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("reminder: %w", err)
	}

	var out Reminder
	if out.ID, _, err = f.id("id", "reminderId"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.UserID, err = f.str("userId"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.Title, err = f.str("title"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.Description, err = f.str("description"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.ReminderTime, err = f.time("reminderTime"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.IsCompleted, err = f.boolean("isCompleted"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.CompletedAt, err = f.timePtr("completedAt"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.CreatedAt, err = f.time("createdAt"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if out.UpdatedAt, err = f.time("updatedAt"); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}

	*r = out
	return nil
}

// Due reports whether the reminder is still open and scheduled after now.
func (r Reminder) Due(now time.Time) bool {
	return !r.IsCompleted && r.ReminderTime.After(now)
}

// ReminderInput is the body of reminder create and update calls.
// CompletedAt is sent as null when unset; UserID is omitted when unknown.
type ReminderInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ReminderTime Timestamp  `json:"reminderTime"`
	IsCompleted  bool       `json:"isCompleted"`
	CompletedAt  *Timestamp `json:"completedAt"`
	UserID       *int64     `json:"userId,omitempty"`
}
