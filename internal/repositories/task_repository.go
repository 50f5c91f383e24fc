package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"construtora/internal/database"
	"construtora/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error
	// Delete removes the task, its comments, and detaches its files in one
	// transaction.
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskSelect = `
SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
       t.author_id, t.assigned_to_id, t.projeto_id, t.created_at, t.updated_at,
       a.name, u.name, p.title
FROM tasks t
JOIN users a ON a.id = t.author_id
JOIN users u ON u.id = t.assigned_to_id
LEFT JOIN projetos p ON p.id = t.projeto_id`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var (
		t            models.Task
		desc         sql.NullString
		due          sql.NullTime
		projetoID    sql.NullInt64
		authorName   string
		assigneeName string
		projetoTitle sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.Title, &desc, &t.Status, &t.Priority, &due,
		&t.AuthorID, &t.AssignedToID, &projetoID, &t.CreatedAt, &t.UpdatedAt,
		&authorName, &assigneeName, &projetoTitle,
	); err != nil {
		return nil, err
	}
	t.Description = nullString(desc)
	t.DueDate = nullTime(due)
	t.ProjetoID = nullInt64(projetoID)
	t.Author = &models.UserRef{ID: t.AuthorID, Name: authorName}
	t.AssignedTo = &models.UserRef{ID: t.AssignedToID, Name: assigneeName}
	if t.ProjetoID != nil {
		t.Projeto = &models.ProjetoRef{ID: *t.ProjetoID, Title: projetoTitle.String}
	}
	return &t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			title, description, status, priority, due_date,
			author_id, assigned_to_id, projeto_id, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		task.AuthorID, task.AssignedToID, task.ProjetoID, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return fmt.Errorf("store task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := taskSelect

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.ProjetoID != nil {
		conditions = append(conditions, fmt.Sprintf("t.projeto_id = $%d", argID))
		args = append(args, *filter.ProjetoID)
		argID++
	}
	if filter.AssignedToID != nil {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to_id = $%d", argID))
		args = append(args, *filter.AssignedToID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, priority=$4, due_date=$5,
			assigned_to_id=$6, projeto_id=$7, updated_at=$8
		WHERE id=$9`
	if _, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		task.AssignedToID, task.ProjetoID, task.UpdatedAt, task.ID,
	); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2`, to, id); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE task_id = $1`, id); err != nil {
			return fmt.Errorf("delete task comments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE files SET task_id = NULL WHERE task_id = $1`, id); err != nil {
			return fmt.Errorf("detach task files: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
