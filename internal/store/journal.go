package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"daytrack/internal/calendar"
	"daytrack/internal/models"
)

const entryColumns = `id, owner_id, entry_date, mood, content, created_at, updated_at`

// SaveJournalEntry creates or updates the owner's entry for entry.Date and
// upserts one log per habit in logs. Logs may only reference the owner's
// active habits; logs for habits not listed are left as they are.
func (s *Store) SaveJournalEntry(ctx context.Context, entry models.JournalEntry, logs []models.HabitLog) (models.JournalEntry, error) {
	var saved models.JournalEntry
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		saved, err = s.saveEntryTx(ctx, tx, entry, logs)
		return err
	})
	return saved, err
}

// ImportJournalEntries saves every entry in one transaction; any failure
// leaves the store untouched.
func (s *Store) ImportJournalEntries(ctx context.Context, entries []models.JournalEntry, logs [][]models.HabitLog) (int, error) {
	if len(logs) != len(entries) {
		return 0, fmt.Errorf("import: %d entries but %d log sets", len(entries), len(logs))
	}
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for i, e := range entries {
			if _, err := s.saveEntryTx(ctx, tx, e, logs[i]); err != nil {
				return fmt.Errorf("entry %s: %w", e.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *Store) saveEntryTx(ctx context.Context, tx *sqlx.Tx, entry models.JournalEntry, logs []models.HabitLog) (models.JournalEntry, error) {
	for _, l := range logs {
		var n int
		err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(1) FROM habits WHERE id = ? AND owner_id = ? AND active = ?`),
			l.HabitID, entry.OwnerID, true)
		if err != nil {
			return models.JournalEntry{}, err
		}
		if n == 0 {
			return models.JournalEntry{}, fmt.Errorf("habit %s: %w", l.HabitID, ErrNotFound)
		}
	}

	now := s.timestamp()
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO journal_entries (id, owner_id, entry_date, mood, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, entry_date)
		DO UPDATE SET
			mood = EXCLUDED.mood,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at`),
		uuid.NewString(), entry.OwnerID, entry.Date, entry.Mood, entry.Content, now, now)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("upsert journal entry: %w", err)
	}

	var saved models.JournalEntry
	if err := tx.GetContext(ctx, &saved, tx.Rebind(`SELECT `+entryColumns+` FROM journal_entries WHERE owner_id = ? AND entry_date = ?`),
		entry.OwnerID, entry.Date); err != nil {
		return models.JournalEntry{}, fmt.Errorf("reload journal entry: %w", err)
	}

	for _, l := range logs {
		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO habit_logs (id, entry_id, habit_id, completed, notes)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (entry_id, habit_id)
			DO UPDATE SET completed = EXCLUDED.completed, notes = EXCLUDED.notes`),
			uuid.NewString(), saved.ID, l.HabitID, l.Completed, l.Notes)
		if err != nil {
			return models.JournalEntry{}, fmt.Errorf("upsert habit log: %w", err)
		}
	}
	return saved, nil
}

// ListJournalEntries returns full entries inside rng, newest first.
func (s *Store) ListJournalEntries(ctx context.Context, ownerID int, rng calendar.Range) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := s.db.SelectContext(ctx, &entries, s.q(`
		SELECT `+entryColumns+` FROM journal_entries
		WHERE owner_id = ? AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date DESC`), ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// JournalDays is the analytics projection of ListJournalEntries: content is
// never read.
func (s *Store) JournalDays(ctx context.Context, ownerID int, rng calendar.Range) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := s.db.SelectContext(ctx, &entries, s.q(`
		SELECT id, owner_id, entry_date, mood FROM journal_entries
		WHERE owner_id = ? AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date DESC`), ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("read journal days: %w", err)
	}
	return entries, nil
}

// EntryLogs returns every log (active or not) attached to the owner's entries in rng.
func (s *Store) EntryLogs(ctx context.Context, ownerID int, rng calendar.Range) ([]models.HabitLog, error) {
	logs := []models.HabitLog{}
	err := s.db.SelectContext(ctx, &logs, s.q(`
		SELECT l.id, l.entry_id, l.habit_id, l.completed, l.notes, e.entry_date
		FROM habit_logs l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.owner_id = ? AND e.entry_date >= ? AND e.entry_date <= ?
		ORDER BY e.entry_date DESC, l.habit_id`), ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("read entry logs: %w", err)
	}
	return logs, nil
}

// DeleteJournalEntry removes the entry for day together with its habit logs.
func (s *Store) DeleteJournalEntry(ctx context.Context, ownerID int, day calendar.Date) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var id string
		err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM journal_entries WHERE owner_id = ? AND entry_date = ?`), ownerID, day)
		if err != nil {
			return notFound(err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habit_logs WHERE entry_id = ?`), id); err != nil {
			return fmt.Errorf("delete habit logs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM journal_entries WHERE id = ?`), id); err != nil {
			return fmt.Errorf("delete journal entry: %w", err)
		}
		return nil
	})
}

// HasEntryOn reports whether an entry exists between the start of ref's day
// and the start of the next.
func (s *Store) HasEntryOn(ctx context.Context, ownerID int, ref calendar.Reference) (bool, error) {
	var exists bool
	err := s.db.QueryRowxContext(ctx, s.q(`
		SELECT EXISTS (SELECT 1 FROM journal_entries WHERE owner_id = ? AND entry_date >= ? AND entry_date < ?)`),
		ownerID, calendar.DayOf(ref.StartOfDay()), calendar.DayOf(ref.EndOfDay())).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check entry for %s: %w", ref.Today, err)
	}
	return exists, nil
}

func (s *Store) CountEntries(ctx context.Context, ownerID int) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(1) FROM journal_entries WHERE owner_id = ?`), ownerID); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}
