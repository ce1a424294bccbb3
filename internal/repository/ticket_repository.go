package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// TicketFilter captures console search parameters. All dimensions are
// optional and combine with AND semantics; an absent dimension matches
// everything.
type TicketFilter struct {
	ShopID     *string
	Search     *string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Categories []domain.TicketCategory
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, shopID *string) (map[domain.TicketStatus]int, error)
	CountByPriorityAtOrAbove(ctx context.Context, shopID *string, min domain.TicketPriority) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, shop_id, customer_name, customer_email, customer_phone,
               subject, status, priority, category, attachments, created_at, last_response_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, shop_id, customer_name, customer_email, customer_phone, subject, status, priority, category, attachments)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.ShopID,
		ticket.Customer.Name,
		ticket.Customer.Email,
		ticket.Customer.Phone,
		ticket.Subject,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Attachments,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET subject=$1, status=$2, priority=$3, category=$4, attachments=$5, last_response_at=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Subject,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Attachments,
		ticket.LastResponseAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.ShopID,
		&ticket.Customer.Name,
		&ticket.Customer.Email,
		&ticket.Customer.Phone,
		&ticket.Subject,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.Attachments,
		&ticket.CreatedAt,
		&ticket.LastResponseAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ShopID != nil {
		args = append(args, *filter.ShopID)
		clauses = append(clauses, fmt.Sprintf("shop_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, cat := range filter.Categories {
			args = append(args, cat)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(ticket_number) LIKE %s OR LOWER(customer_name) LIKE %s OR LOWER(subject) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, shopID *string) (map[domain.TicketStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	args := []any{}
	if shopID != nil {
		query = `SELECT status, COUNT(*) FROM tickets WHERE shop_id=$1 GROUP BY status`
		args = append(args, *shopID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) CountByPriorityAtOrAbove(ctx context.Context, shopID *string, min domain.TicketPriority) (int, error) {
	priorities := prioritiesAtOrAbove(min)
	placeholders := make([]string, len(priorities))
	args := make([]any, 0, len(priorities)+1)
	for i, pr := range priorities {
		args = append(args, pr)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM tickets WHERE priority IN (%s)`, strings.Join(placeholders, ","))
	if shopID != nil {
		args = append(args, *shopID)
		query += fmt.Sprintf(" AND shop_id=$%d", len(args))
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func prioritiesAtOrAbove(min domain.TicketPriority) []domain.TicketPriority {
	all := []domain.TicketPriority{
		domain.TicketPriorityLow,
		domain.TicketPriorityMedium,
		domain.TicketPriorityHigh,
		domain.TicketPriorityUrgent,
	}
	var out []domain.TicketPriority
	for _, pr := range all {
		if pr.Rank() >= min.Rank() {
			out = append(out, pr)
		}
	}
	return out
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.ShopID,
			&ticket.Customer.Name,
			&ticket.Customer.Email,
			&ticket.Customer.Phone,
			&ticket.Subject,
			&ticket.Status,
			&ticket.Priority,
			&ticket.Category,
			&ticket.Attachments,
			&ticket.CreatedAt,
			&ticket.LastResponseAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
