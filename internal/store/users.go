package store

import (
	"context"
	"fmt"
	"strings"

	"daytrack/internal/calendar"
	"daytrack/internal/models"
)

const userColumns = `id, email, email_blind_index, password_hash, first_name, last_name, is_admin, created_at`

// CreateUser expects Email to be encrypted and EmailBlindIndex set already.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if _, err := s.UserByBlindIndex(ctx, u.EmailBlindIndex); err == nil {
		return models.User{}, ErrConflict
	}
	u.CreatedAt = s.timestamp()
	err := s.db.QueryRowxContext(ctx, s.q(`
		INSERT INTO users (email, email_blind_index, password_hash, first_name, last_name, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		u.Email, u.EmailBlindIndex, u.PasswordHash, u.FirstName, u.LastName, u.IsAdmin, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByBlindIndex(ctx context.Context, blindIndex string) (models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, s.q(`SELECT `+userColumns+` FROM users WHERE email_blind_index = ?`), blindIndex); err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int) (models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, s.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), id); err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}

func (s *Store) UpdateUserProfile(ctx context.Context, id int, p ProfileUpdate) error {
	setClauses := []string{}
	args := []any{}
	if p.FirstName != nil {
		setClauses = append(setClauses, "first_name = ?")
		args = append(args, *p.FirstName)
	}
	if p.LastName != nil {
		setClauses = append(setClauses, "last_name = ?")
		args = append(args, *p.LastName)
	}
	if len(setClauses) == 0 {
		return nil
	}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectRows(res)
}

func (s *Store) IsAdmin(ctx context.Context, id int) (bool, error) {
	var isAdmin bool
	if err := s.db.GetContext(ctx, &isAdmin, s.q(`SELECT is_admin FROM users WHERE id = ?`), id); err != nil {
		return false, notFound(err)
	}
	return isAdmin, nil
}

// Overview holds instance-wide counts for administrators.
type Overview struct {
	TotalUsers          int `json:"total_users"`
	TotalJournalEntries int `json:"total_journal_entries"`
	TotalHabits         int `json:"total_habits"`
	TotalHabitLogs      int `json:"total_habit_logs"`
	ActiveUsersThisWeek int `json:"active_users_this_week"`
	EntriesThisWeek     int `json:"entries_this_week"`
}

// Overview counts activity; "this week" is the seven days ending at ref's day.
func (s *Store) Overview(ctx context.Context, ref calendar.Reference) (Overview, error) {
	week := ref.Window(7)
	var out Overview
	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&out.TotalUsers, `SELECT COUNT(1) FROM users`, nil},
		{&out.TotalJournalEntries, `SELECT COUNT(1) FROM journal_entries`, nil},
		{&out.TotalHabits, `SELECT COUNT(1) FROM habits`, nil},
		{&out.TotalHabitLogs, `SELECT COUNT(1) FROM habit_logs`, nil},
		{&out.ActiveUsersThisWeek, `SELECT COUNT(DISTINCT owner_id) FROM journal_entries WHERE entry_date >= ? AND entry_date <= ?`, []any{week.Start, week.End}},
		{&out.EntriesThisWeek, `SELECT COUNT(1) FROM journal_entries WHERE entry_date >= ? AND entry_date <= ?`, []any{week.Start, week.End}},
	}
	for _, c := range counts {
		if err := s.db.GetContext(ctx, c.dst, s.q(c.query), c.args...); err != nil {
			return Overview{}, fmt.Errorf("overview: %w", err)
		}
	}
	return out, nil
}
