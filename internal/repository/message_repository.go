package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// MessageRepository stores append-only conversation messages for both
// ticket threads and live chats.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByParent(ctx context.Context, kind domain.ParentKind, parentID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO conversation_messages (parent_kind, parent_id, author, body, read)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.ParentKind,
		msg.ParentID,
		msg.Author,
		msg.Body,
		msg.Read,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListByParent(ctx context.Context, kind domain.ParentKind, parentID string) ([]domain.Message, error) {
	const query = `
        SELECT id, parent_kind, parent_id, author, body, read, created_at
        FROM conversation_messages WHERE parent_kind=$1 AND parent_id=$2 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, kind, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ParentKind,
			&msg.ParentID,
			&msg.Author,
			&msg.Body,
			&msg.Read,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
