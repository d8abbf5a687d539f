package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"daytrack/internal/calendar"
	"daytrack/internal/models"
)

const habitColumns = `id, owner_id, name, icon, color, active, created_at`

func (s *Store) CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.CreatedAt = s.timestamp()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO habits (id, owner_id, name, icon, color, active, created_at)
		VALUES (:id, :owner_id, :name, :icon, :color, :active, :created_at)`, h)
	if err != nil {
		return models.Habit{}, fmt.Errorf("insert habit: %w", err)
	}
	return h, nil
}

// GetHabit returns ErrNotFound for habits that do not exist or belong to someone else.
func (s *Store) GetHabit(ctx context.Context, ownerID int, id string) (models.Habit, error) {
	var h models.Habit
	err := s.db.GetContext(ctx, &h, s.q(`SELECT `+habitColumns+` FROM habits WHERE id = ? AND owner_id = ?`), id, ownerID)
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, ownerID int, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE owner_id = ?`
	args := []any{ownerID}
	if !includeInactive {
		query += ` AND active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at, id`

	habits := []models.Habit{}
	if err := s.db.SelectContext(ctx, &habits, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// UpdateHabit rewrites the mutable fields. Setting Active=false stops future
// tracking but keeps the habit's history.
func (s *Store) UpdateHabit(ctx context.Context, h models.Habit) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE habits SET name = ?, icon = ?, color = ?, active = ?
		WHERE id = ? AND owner_id = ?`),
		h.Name, h.Icon, h.Color, h.Active, h.ID, h.OwnerID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return expectRows(res)
}

// DeleteHabit removes the habit and every log recorded for it.
func (s *Store) DeleteHabit(ctx context.Context, ownerID int, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(1) FROM habits WHERE id = ? AND owner_id = ?`), id, ownerID); err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habit_logs WHERE habit_id = ?`), id); err != nil {
			return fmt.Errorf("delete habit logs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habits WHERE id = ? AND owner_id = ?`), id, ownerID); err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}
		return nil
	})
}

// HabitLogs reads the logs of one habit, or of every active habit when
// habitID is empty, whose journal entry falls inside rng. Each log carries
// its entry's date; results are newest first.
//
// A habit owned by someone else is reported as ErrNotFound. A habit with no
// logs in range yields an empty slice.
func (s *Store) HabitLogs(ctx context.Context, ownerID int, habitID string, rng calendar.Range) ([]models.HabitLog, error) {
	if habitID != "" {
		if _, err := s.GetHabit(ctx, ownerID, habitID); err != nil {
			return nil, err
		}
	}

	query := `
		SELECT l.id, l.entry_id, l.habit_id, l.completed, l.notes, e.entry_date
		FROM habit_logs l
		JOIN journal_entries e ON e.id = l.entry_id
		JOIN habits h ON h.id = l.habit_id
		WHERE e.owner_id = ? AND h.owner_id = ? AND e.entry_date >= ? AND e.entry_date <= ?`
	args := []any{ownerID, ownerID, rng.Start, rng.End}
	if habitID != "" {
		query += ` AND l.habit_id = ?`
		args = append(args, habitID)
	} else {
		query += ` AND h.active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY e.entry_date DESC, l.habit_id`

	logs := []models.HabitLog{}
	if err := s.db.SelectContext(ctx, &logs, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("read habit logs: %w", err)
	}
	return logs, nil
}
