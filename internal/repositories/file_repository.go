package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"construtora/internal/models"
)

type FileRepository interface {
	Create(ctx context.Context, f *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	List(ctx context.Context, filter models.FileFilter) ([]models.File, error)
	UpdateAssociations(ctx context.Context, id int64, taskID, projetoID *int64) error
	Delete(ctx context.Context, id int64) error
}

type fileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) FileRepository {
	return &fileRepository{db: db}
}

const fileSelect = `
SELECT f.id, f.url, f.filename, f.mimetype, f.uploaded_by_id, f.task_id, f.projeto_id, f.created_at,
       u.name
FROM files f
JOIN users u ON u.id = f.uploaded_by_id`

func scanFile(row interface{ Scan(...any) error }) (*models.File, error) {
	var (
		f         models.File
		taskID    sql.NullInt64
		projetoID sql.NullInt64
		uploader  string
	)
	if err := row.Scan(
		&f.ID, &f.URL, &f.Filename, &f.Mimetype, &f.UploadedByID, &taskID, &projetoID, &f.CreatedAt,
		&uploader,
	); err != nil {
		return nil, err
	}
	f.TaskID = nullInt64(taskID)
	f.ProjetoID = nullInt64(projetoID)
	f.UploadedBy = &models.UserRef{ID: f.UploadedByID, Name: uploader}
	return &f, nil
}

func (r *fileRepository) Create(ctx context.Context, f *models.File) error {
	const q = `
		INSERT INTO files (url, filename, mimetype, uploaded_by_id, task_id, projeto_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q,
		f.URL, f.Filename, f.Mimetype, f.UploadedByID, f.TaskID, f.ProjetoID,
	).Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (r *fileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, fileSelect+` WHERE f.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return f, nil
}

func (r *fileRepository) List(ctx context.Context, filter models.FileFilter) ([]models.File, error) {
	query := fileSelect
	conditions := []string{}
	args := []interface{}{}

	if filter.TaskID != nil {
		args = append(args, *filter.TaskID)
		conditions = append(conditions, fmt.Sprintf("f.task_id = $%d", len(args)))
	}
	if filter.ProjetoID != nil {
		args = append(args, *filter.ProjetoID)
		conditions = append(conditions, fmt.Sprintf("f.projeto_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY f.created_at DESC, f.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	res := []models.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		res = append(res, *f)
	}
	return res, rows.Err()
}

func (r *fileRepository) UpdateAssociations(ctx context.Context, id int64, taskID, projetoID *int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE files SET task_id=$1, projeto_id=$2 WHERE id=$3`, taskID, projetoID, id); err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

// Delete removes the metadata row only; the stored blob is left alone.
func (r *fileRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
