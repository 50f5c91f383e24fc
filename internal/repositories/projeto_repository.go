package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"construtora/internal/models"
)

type ProjetoRepository interface {
	Create(ctx context.Context, p *models.Projeto) error
	GetByID(ctx context.Context, id int64) (*models.Projeto, error)
	List(ctx context.Context) ([]models.Projeto, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type projetoRepository struct {
	db *sql.DB
}

func NewProjetoRepository(db *sql.DB) ProjetoRepository {
	return &projetoRepository{db: db}
}

func (r *projetoRepository) Create(ctx context.Context, p *models.Projeto) error {
	const q = `INSERT INTO projetos (title, description) VALUES ($1,$2) RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q, p.Title, p.Description).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create projeto: %w", err)
	}
	return nil
}

func (r *projetoRepository) GetByID(ctx context.Context, id int64) (*models.Projeto, error) {
	var (
		p    models.Projeto
		desc sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at FROM projetos WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &desc, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get projeto: %w", err)
	}
	p.Description = nullString(desc)
	return &p, nil
}

func (r *projetoRepository) List(ctx context.Context) ([]models.Projeto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM projetos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projetos: %w", err)
	}
	defer rows.Close()

	res := []models.Projeto{}
	for rows.Next() {
		var (
			p    models.Projeto
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Title, &desc, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan projeto: %w", err)
		}
		p.Description = nullString(desc)
		res = append(res, p)
	}
	return res, rows.Err()
}

// Delete relies on ON DELETE SET NULL to detach tasks and files.
func (r *projetoRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projetos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete projeto: %w", err)
	}
	return nil
}

func (r *projetoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM projetos WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("projeto exists: %w", err)
	}
	return ok, nil
}
