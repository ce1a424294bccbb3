package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// ApplicationFilter narrows partner application listings.
type ApplicationFilter struct {
	Statuses []domain.ApplicationStatus
	Limit    int
	Offset   int
}

// ApplicationRepository stores partner onboarding applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.PartnerApplication) error
	Update(ctx context.Context, app *domain.PartnerApplication) error
	GetByID(ctx context.Context, id string) (*domain.PartnerApplication, error)
	ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.PartnerApplication, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, application_number, fields, attachments, status, review_note, created_at, reviewed_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.PartnerApplication) error {
	fields, err := json.Marshal(app.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	attachments, err := json.Marshal(app.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	const query = `
        INSERT INTO partner_applications (application_number, fields, attachments, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		app.ApplicationNumber,
		fields,
		attachments,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.PartnerApplication) error {
	const query = `
        UPDATE partner_applications SET status=$1, review_note=$2, reviewed_at=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		app.Status,
		app.ReviewNote,
		app.ReviewedAt,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.PartnerApplication, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM partner_applications WHERE id=$1`, id)
	return scanApplication(row)
}

func (r *applicationRepository) ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.PartnerApplication, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM partner_applications WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		applicationColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PartnerApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.PartnerApplication, error) {
	var app domain.PartnerApplication
	var fields, attachments []byte
	if err := row.Scan(
		&app.ID,
		&app.ApplicationNumber,
		&fields,
		&attachments,
		&app.Status,
		&app.ReviewNote,
		&app.CreatedAt,
		&app.ReviewedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &app.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	if err := json.Unmarshal(attachments, &app.Attachments); err != nil {
		return nil, fmt.Errorf("unmarshal attachments: %w", err)
	}
	return &app, nil
}
