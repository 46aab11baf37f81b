package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
)

// TicketRepository keeps tickets in a map keyed by id. Updates hold the
// write lock for the whole merge, so concurrent writers serialize and the
// last one wins, as with a row-level lock.
type TicketRepository struct {
	mu      sync.RWMutex
	nextID  int64
	tickets map[int64]domain.Ticket
	users   *UserRepository
	now     func() time.Time
}

// NewTicketRepository returns an empty store. When users is non-nil,
// created_by and assigned_to are checked against it like foreign keys.
func NewTicketRepository(users *UserRepository) *TicketRepository {
	return &TicketRepository{
		tickets: make(map[int64]domain.Ticket),
		users:   users,
		now:     time.Now,
	}
}

var _ repository.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := r.checkUser(ctx, ticket.CreatedBy); err != nil {
		return err
	}
	if ticket.AssignedTo != nil {
		if err := r.checkUser(ctx, *ticket.AssignedTo); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ticket.ID = r.nextID
	ticket.CreatedOn = r.now().UTC()
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, id int64, changes domain.TicketChanges) (*domain.Ticket, error) {
	if changes.AssignedTo.Set && !changes.AssignedTo.Null {
		if err := r.checkUser(ctx, changes.AssignedTo.Value); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	changes.Apply(&ticket)
	r.tickets[id] = cloneTicket(ticket)
	out := cloneTicket(ticket)
	return &out, nil
}

func (r *TicketRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *TicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneTicket(ticket)
	return &out, nil
}

func (r *TicketRepository) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Ticket{}
	for _, ticket := range r.tickets {
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.Completed != nil && ticket.Completed != *filter.Completed {
			continue
		}
		result = append(result, cloneTicket(ticket))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *TicketRepository) checkUser(ctx context.Context, id int64) error {
	if r.users == nil {
		return nil
	}
	if _, err := r.users.GetByID(ctx, id); err != nil {
		return fmt.Errorf("foreign key users.id=%d: %v", id, err)
	}
	return nil
}

// cloneTicket copies pointer fields so callers never alias stored rows.
func cloneTicket(t domain.Ticket) domain.Ticket {
	if t.Tried != nil {
		v := *t.Tried
		t.Tried = &v
	}
	if t.AdditionalInfo != nil {
		v := *t.AdditionalInfo
		t.AdditionalInfo = &v
	}
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		t.AssignedTo = &v
	}
	return t
}
