package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// FAQRepository manages published FAQ entries.
type FAQRepository interface {
	Create(ctx context.Context, entry *domain.FAQEntry) error
	Update(ctx context.Context, entry *domain.FAQEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.FAQEntry, error)
	List(ctx context.Context, category *string) ([]domain.FAQEntry, error)
	IncrementView(ctx context.Context, id string) error
	AddVote(ctx context.Context, id string, helpful bool) error
}

type faqRepository struct {
	pool *pgxpool.Pool
}

// NewFAQRepository instantiates repository.
func NewFAQRepository(pool *pgxpool.Pool) FAQRepository {
	return &faqRepository{pool: pool}
}

const faqColumns = `id, question, answer, category, view_count, helpful_count, unhelpful_count, created_at, updated_at`

func (r *faqRepository) Create(ctx context.Context, entry *domain.FAQEntry) error {
	const query = `
        INSERT INTO faq_entries (question, answer, category)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		entry.Question,
		entry.Answer,
		entry.Category,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *faqRepository) Update(ctx context.Context, entry *domain.FAQEntry) error {
	const query = `
        UPDATE faq_entries SET question=$1, answer=$2, category=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		entry.Question,
		entry.Answer,
		entry.Category,
		entry.ID,
	).Scan(&entry.UpdatedAt)
	return err
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM faq_entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *faqRepository) GetByID(ctx context.Context, id string) (*domain.FAQEntry, error) {
	var entry domain.FAQEntry
	if err := r.pool.QueryRow(ctx, `SELECT `+faqColumns+` FROM faq_entries WHERE id=$1`, id).Scan(
		&entry.ID,
		&entry.Question,
		&entry.Answer,
		&entry.Category,
		&entry.ViewCount,
		&entry.HelpfulCount,
		&entry.UnhelpfulCount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *faqRepository) List(ctx context.Context, category *string) ([]domain.FAQEntry, error) {
	query := `SELECT ` + faqColumns + ` FROM faq_entries ORDER BY created_at ASC`
	args := []any{}
	if category != nil {
		query = `SELECT ` + faqColumns + ` FROM faq_entries WHERE category=$1 ORDER BY created_at ASC`
		args = append(args, *category)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FAQEntry
	for rows.Next() {
		var entry domain.FAQEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Question,
			&entry.Answer,
			&entry.Category,
			&entry.ViewCount,
			&entry.HelpfulCount,
			&entry.UnhelpfulCount,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *faqRepository) IncrementView(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE faq_entries SET view_count=view_count+1 WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *faqRepository) AddVote(ctx context.Context, id string, helpful bool) error {
	query := `UPDATE faq_entries SET unhelpful_count=unhelpful_count+1 WHERE id=$1`
	if helpful {
		query = `UPDATE faq_entries SET helpful_count=helpful_count+1 WHERE id=$1`
	}
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
