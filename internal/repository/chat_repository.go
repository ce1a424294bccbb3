package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// ChatFilter narrows chat session listings.
type ChatFilter struct {
	Statuses []domain.ChatStatus
	Agent    *string
	Limit    int
	Offset   int
}

// ChatRepository encapsulates live chat session persistence.
type ChatRepository interface {
	Create(ctx context.Context, session *domain.ChatSession) error
	Update(ctx context.Context, session *domain.ChatSession) error
	GetByID(ctx context.Context, id string) (*domain.ChatSession, error)
	ListWithFilter(ctx context.Context, filter ChatFilter) ([]domain.ChatSession, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository instantiates repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

const chatColumns = `id, visitor_name, visitor_email, visitor_ip, visitor_location, status, agent, started_at, ended_at`

func (r *chatRepository) Create(ctx context.Context, session *domain.ChatSession) error {
	const query = `
        INSERT INTO chat_sessions (visitor_name, visitor_email, visitor_ip, visitor_location, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, started_at`
	return r.pool.QueryRow(ctx, query,
		session.Visitor.Name,
		session.Visitor.Email,
		session.Visitor.IP,
		session.Visitor.Location,
		session.Status,
	).Scan(&session.ID, &session.StartedAt)
}

func (r *chatRepository) Update(ctx context.Context, session *domain.ChatSession) error {
	const query = `
        UPDATE chat_sessions SET status=$1, agent=$2, ended_at=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		session.Status,
		session.Agent,
		session.EndedAt,
		session.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE id=$1`, chatColumns)
	var session domain.ChatSession
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Visitor.Name,
		&session.Visitor.Email,
		&session.Visitor.IP,
		&session.Visitor.Location,
		&session.Status,
		&session.Agent,
		&session.StartedAt,
		&session.EndedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepository) ListWithFilter(ctx context.Context, filter ChatFilter) ([]domain.ChatSession, error) {
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
	if filter.Agent != nil {
		args = append(args, *filter.Agent)
		clauses = append(clauses, fmt.Sprintf("agent=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE %s ORDER BY started_at DESC LIMIT %d OFFSET %d`,
		chatColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatSession
	for rows.Next() {
		var session domain.ChatSession
		if err := rows.Scan(
			&session.ID,
			&session.Visitor.Name,
			&session.Visitor.Email,
			&session.Visitor.IP,
			&session.Visitor.Location,
			&session.Status,
			&session.Agent,
			&session.StartedAt,
			&session.EndedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, session)
	}
	return result, rows.Err()
}
