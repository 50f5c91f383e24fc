package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"construtora/internal/database"
	"construtora/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	UpdateMessage(ctx context.Context, id int64, message string) error
	Delete(ctx context.Context, id int64) error
	// MarkViewed appends userID to viewed_by of every comment of the task
	// that does not contain it yet and returns how many rows changed.
	MarkViewed(ctx context.Context, taskID, userID int64) (int, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentSelect = `
SELECT c.id, c.message, c.author_id, c.task_id, c.viewed_by, c.created_at, c.updated_at,
       a.name,
       ARRAY(SELECT v.name FROM users v WHERE v.id = ANY(c.viewed_by) ORDER BY v.name)
FROM comments c
JOIN users a ON a.id = c.author_id`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var (
		c          models.Comment
		viewedBy   pq.Int64Array
		authorName string
		names      pq.StringArray
	)
	if err := row.Scan(
		&c.ID, &c.Message, &c.AuthorID, &c.TaskID, &viewedBy, &c.CreatedAt, &c.UpdatedAt,
		&authorName, &names,
	); err != nil {
		return nil, err
	}
	c.ViewedBy = []int64(viewedBy)
	if c.ViewedBy == nil {
		c.ViewedBy = []int64{}
	}
	c.Author = &models.UserRef{ID: c.AuthorID, Name: authorName}
	c.ViewedByNames = []string(names)
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, c *models.Comment) error {
	const q = `
		INSERT INTO comments (message, author_id, task_id, viewed_by)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at`
	if c.ViewedBy == nil {
		c.ViewedBy = []int64{}
	}
	if err := r.db.QueryRowContext(ctx, q,
		c.Message, c.AuthorID, c.TaskID, pq.Array(c.ViewedBy),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, commentSelect+` WHERE c.task_id = $1 ORDER BY c.created_at, c.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	res := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

func (r *commentRepository) UpdateMessage(ctx context.Context, id int64, message string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE comments SET message=$1, updated_at=NOW() WHERE id=$2`, message, id); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (r *commentRepository) MarkViewed(ctx context.Context, taskID, userID int64) (int, error) {
	marked := 0
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id, viewed_by FROM comments WHERE task_id = $1 ORDER BY id FOR UPDATE`, taskID)
		if err != nil {
			return fmt.Errorf("lock comments: %w", err)
		}
		var pending []int64
		for rows.Next() {
			var (
				c        models.Comment
				viewedBy pq.Int64Array
			)
			if err := rows.Scan(&c.ID, &viewedBy); err != nil {
				rows.Close()
				return fmt.Errorf("scan comment: %w", err)
			}
			c.ViewedBy = viewedBy
			if !c.SeenBy(userID) {
				pending = append(pending, c.ID)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, id := range pending {
			if _, err := tx.ExecContext(ctx,
				`UPDATE comments SET viewed_by = array_append(viewed_by, $1) WHERE id = $2`, userID, id); err != nil {
				return fmt.Errorf("mark comment %d viewed: %w", id, err)
			}
		}
		marked = len(pending)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}
