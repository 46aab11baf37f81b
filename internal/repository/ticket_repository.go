package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devdesk/queue-api/internal/domain"
)

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	CreatedBy *int64
	Completed *bool
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, id int64, changes domain.TicketChanges) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

const ticketColumns = `id, title, category, tried, additional_info, created_by, created_on, assigned, assigned_to, completed`

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, category, tried, additional_info, created_by, assigned, assigned_to, completed)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_on`
	err := r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Category,
		ticket.Tried,
		ticket.AdditionalInfo,
		ticket.CreatedBy,
		ticket.Assigned,
		ticket.AssignedTo,
		ticket.Completed,
	).Scan(&ticket.ID, &ticket.CreatedOn)
	return translate(err)
}

// Update writes only the supplied columns in a single statement and returns
// the resulting row. Concurrent writers race at the row level.
func (r *ticketRepository) Update(ctx context.Context, id int64, changes domain.TicketChanges) (*domain.Ticket, error) {
	set, args := buildTicketUpdate(changes)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(set, ", "), len(args), ticketColumns)
	return scanTicket(r.pool.QueryRow(ctx, query, args...))
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		clauses = append(clauses, fmt.Sprintf("completed=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY id ASC`,
		ticketColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// buildTicketUpdate renders SET assignments for the supplied fields, with
// positional parameters starting at $1.
func buildTicketUpdate(changes domain.TicketChanges) ([]string, []any) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if changes.Title.Set {
		add("title", changes.Title.Value)
	}
	if changes.Category.Set {
		add("category", changes.Category.Value)
	}
	if changes.Tried.Set {
		add("tried", nullable(changes.Tried))
	}
	if changes.AdditionalInfo.Set {
		add("additional_info", nullable(changes.AdditionalInfo))
	}
	if changes.Assigned.Set {
		add("assigned", changes.Assigned.Value)
	}
	if changes.AssignedTo.Set {
		add("assigned_to", nullable(changes.AssignedTo))
	}
	if changes.Completed.Set {
		add("completed", changes.Completed.Value)
	}
	return set, args
}

func nullable[T any](field domain.Field[T]) any {
	if field.Null {
		return nil
	}
	return field.Value
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Category,
		&ticket.Tried,
		&ticket.AdditionalInfo,
		&ticket.CreatedBy,
		&ticket.CreatedOn,
		&ticket.Assigned,
		&ticket.AssignedTo,
		&ticket.Completed,
	); err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
