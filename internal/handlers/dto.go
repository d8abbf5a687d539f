package handlers

import (
	"time"

	"daytrack/internal/analytics"
	"daytrack/internal/calendar"
	"daytrack/internal/models"
)

// UserDTO carries the decrypted email and a fixed created_at format.
type UserDTO struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
}

func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

type HabitLogDTO struct {
	HabitID   string `json:"habit_id"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

// JournalEntryDTO reports an absent mood as neutral.
type JournalEntryDTO struct {
	ID        string         `json:"id"`
	Date      calendar.Date  `json:"date"`
	Mood      analytics.Mood `json:"mood"`
	Content   string         `json:"content"`
	Logs      []HabitLogDTO  `json:"logs"`
	UpdatedAt string         `json:"updated_at"`
}

func ToJournalEntryDTO(e models.JournalEntry, logs []models.HabitLog) JournalEntryDTO {
	dto := JournalEntryDTO{
		ID:        e.ID,
		Date:      e.Date,
		Mood:      analytics.MoodOf(e.Mood),
		Content:   e.Content,
		Logs:      make([]HabitLogDTO, 0, len(logs)),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, l := range logs {
		dto.Logs = append(dto.Logs, HabitLogDTO{HabitID: l.HabitID, Completed: l.Completed, Notes: l.Notes})
	}
	return dto
}

// journalInput is the body of a journal upsert and one element of an import.
type journalInput struct {
	Date    string        `json:"date"`
	Mood    string        `json:"mood"`
	Content string        `json:"content"`
	Logs    []HabitLogDTO `json:"logs"`
}

// toModels validates the input. Duplicate habit ids are rejected.
func (in journalInput) toModels(ownerID int) (models.JournalEntry, []models.HabitLog, error) {
	if in.Date == "" {
		return models.JournalEntry{}, nil, invalid("date is required")
	}
	day, err := dateParam("date", in.Date)
	if err != nil {
		return models.JournalEntry{}, nil, err
	}
	entry := models.JournalEntry{OwnerID: ownerID, Date: day, Content: in.Content}
	if in.Mood != "" {
		m, ok := analytics.ParseMood(in.Mood)
		if !ok {
			return models.JournalEntry{}, nil, invalid("unknown mood %q", in.Mood)
		}
		entry.Mood = string(m)
	}

	seen := make(map[string]bool, len(in.Logs))
	logs := make([]models.HabitLog, 0, len(in.Logs))
	for _, l := range in.Logs {
		if l.HabitID == "" {
			return models.JournalEntry{}, nil, invalid("habit_id is required for every log")
		}
		if seen[l.HabitID] {
			return models.JournalEntry{}, nil, invalid("habit %s logged twice", l.HabitID)
		}
		seen[l.HabitID] = true
		logs = append(logs, models.HabitLog{HabitID: l.HabitID, Completed: l.Completed, Notes: l.Notes})
	}
	return entry, logs, nil
}
