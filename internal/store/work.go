package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"daytrack/internal/models"
)

func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	p.CreatedAt = s.timestamp()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO projects (id, owner_id, name, status, created_at)
		VALUES (:id, :owner_id, :name, :status, :created_at)`, p)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, ownerID int) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.SelectContext(ctx, &projects, s.q(`
		SELECT id, owner_id, name, status, created_at FROM projects
		WHERE owner_id = ? ORDER BY created_at, id`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) CountActiveProjects(ctx context.Context, ownerID int) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(1) FROM projects WHERE owner_id = ? AND status = ?`), ownerID, models.ProjectActive)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// CreateTask checks that an optional project belongs to the same owner.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if t.ProjectID != nil {
		var n int
		if err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(1) FROM projects WHERE id = ? AND owner_id = ?`), *t.ProjectID, t.OwnerID); err != nil {
			return models.Task{}, err
		}
		if n == 0 {
			return models.Task{}, fmt.Errorf("project %s: %w", *t.ProjectID, ErrNotFound)
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = s.timestamp()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tasks (id, owner_id, project_id, title, done, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.OwnerID, t.ProjectID, t.Title, t.Done, t.DueDate, t.CreatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, ownerID int, includeDone bool) ([]models.Task, error) {
	query := `SELECT id, owner_id, project_id, title, done, due_date, created_at FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}
	if !includeDone {
		query += ` AND done = ?`
		args = append(args, false)
	}
	query += ` ORDER BY created_at, id`

	tasks := []models.Task{}
	if err := s.db.SelectContext(ctx, &tasks, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) SetTaskDone(ctx context.Context, ownerID int, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, s.q(`UPDATE tasks SET done = ? WHERE id = ? AND owner_id = ?`), done, id, ownerID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectRows(res)
}

func (s *Store) CountOpenTasks(ctx context.Context, ownerID int) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(1) FROM tasks WHERE owner_id = ? AND done = ?`), ownerID, false); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
