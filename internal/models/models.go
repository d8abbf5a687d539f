package models

import (
	"time"

	"daytrack/internal/calendar"
)

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`         // Encrypted in DB
	EmailBlindIndex string    `db:"email_blind_index" json:"-"` // HMAC hash for searching
	PasswordHash    string    `db:"password_hash" json:"-"`
	FirstName       *string   `db:"first_name" json:"first_name,omitempty"`
	LastName        *string   `db:"last_name" json:"last_name,omitempty"`
	IsAdmin         bool      `db:"is_admin" json:"is_admin"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Habit struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   int       `db:"owner_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon,omitempty"`
	Color     string    `db:"color" json:"color,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// JournalEntry is at most one per owner per calendar day.
type JournalEntry struct {
	ID        string        `db:"id" json:"id"`
	OwnerID   int           `db:"owner_id" json:"-"`
	Date      calendar.Date `db:"entry_date" json:"date"`
	Mood      string        `db:"mood" json:"mood"`       // empty when not given
	Content   string        `db:"content" json:"content"` // Encrypted in DB
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// HabitLog belongs to exactly one journal entry and one habit. Date is the
// parent entry's date, filled by joins.
type HabitLog struct {
	ID        string        `db:"id" json:"id"`
	EntryID   string        `db:"entry_id" json:"entry_id"`
	HabitID   string        `db:"habit_id" json:"habit_id"`
	Completed bool          `db:"completed" json:"completed"`
	Notes     string        `db:"notes" json:"notes,omitempty"`
	Date      calendar.Date `db:"entry_date" json:"date"`
}

type Project struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   int       `db:"owner_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Project statuses.
const (
	ProjectActive   = "active"
	ProjectArchived = "archived"
)

type Task struct {
	ID        string         `db:"id" json:"id"`
	OwnerID   int            `db:"owner_id" json:"-"`
	ProjectID *string        `db:"project_id" json:"project_id,omitempty"`
	Title     string         `db:"title" json:"title"`
	Done      bool           `db:"done" json:"done"`
	DueDate   *calendar.Date `db:"due_date" json:"due_date,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
