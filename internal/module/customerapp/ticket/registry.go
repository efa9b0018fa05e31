package ticket

import (
	"fmt"
	"net/http"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

// Registry owns the ticket table and the per-owner holding counts. It offers
// primitive reads and writes only; precondition checks and serialization
// belong to the use case, which is the registry's single caller.
type Registry interface {
	Allocate(md Metadata, price int64) int64
	Get(id int64) (Ticket, error)
	SetOwner(id int64, newOwner string) error
	SetListing(id int64, askPrice int64) error
	CompleteResale(id int64) error
	CountByOwner(owner string) int64
	TicketCount() int64
	Snapshot() []Ticket
	Restore(tickets []Ticket)
}

type inMemoryRegistry struct {
	tickets     map[int64]*Ticket
	ownerCounts map[string]int64
	ticketCount int64
}

func NewInMemoryRegistry() Registry {
	return &inMemoryRegistry{
		tickets:     make(map[int64]*Ticket),
		ownerCounts: make(map[string]int64),
	}
}

// Allocate implements Registry. The new ticket id is the previous ticket
// count plus one; the owner is left unset for the caller to assign via
// SetOwner right away.
func (r *inMemoryRegistry) Allocate(md Metadata, price int64) int64 {
	r.ticketCount++
	id := r.ticketCount

	r.tickets[id] = &Ticket{
		ID:    id,
		Price: price,
		Seat:  md.Seat,
		Zone:  md.Zone,
		Time:  md.Time,
	}

	return id
}

// Get implements Registry.
func (r *inMemoryRegistry) Get(id int64) (Ticket, error) {
	t, ok := r.tickets[id]
	if id <= 0 || id > r.ticketCount || !ok {
		return Ticket{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%d' is not found", id))
	}

	return *t, nil
}

// SetOwner implements Registry. The holding counts of the previous and the
// new owner are adjusted in the same step.
func (r *inMemoryRegistry) SetOwner(id int64, newOwner string) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%d' is not found", id))
	}

	if t.Owner != "" {
		r.ownerCounts[t.Owner]--
		if r.ownerCounts[t.Owner] == 0 {
			delete(r.ownerCounts, t.Owner)
		}
	}

	t.Owner = newOwner
	r.ownerCounts[newOwner]++

	return nil
}

// SetListing implements Registry. Listing an already listed ticket overwrites
// the previous ask.
func (r *inMemoryRegistry) SetListing(id int64, askPrice int64) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%d' is not found", id))
	}

	t.IsForSale = true
	t.Price = askPrice

	return nil
}

// CompleteResale implements Registry. The resale counter only ever advances.
func (r *inMemoryRegistry) CompleteResale(id int64) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%d' is not found", id))
	}

	t.ResaleCount++
	t.IsForSale = false

	return nil
}

// CountByOwner implements Registry.
func (r *inMemoryRegistry) CountByOwner(owner string) int64 {
	return r.ownerCounts[owner]
}

// TicketCount implements Registry.
func (r *inMemoryRegistry) TicketCount() int64 {
	return r.ticketCount
}

// Snapshot implements Registry.
func (r *inMemoryRegistry) Snapshot() []Ticket {
	tickets := make([]Ticket, 0, len(r.tickets))
	for id := int64(1); id <= r.ticketCount; id++ {
		if t, ok := r.tickets[id]; ok {
			tickets = append(tickets, *t)
		}
	}

	return tickets
}

// Restore implements Registry. Holding counts and the ticket counter are
// rebuilt from the records themselves, so the count-mirrors-holdings
// invariant holds by construction.
func (r *inMemoryRegistry) Restore(tickets []Ticket) {
	r.tickets = make(map[int64]*Ticket, len(tickets))
	r.ownerCounts = make(map[string]int64)
	r.ticketCount = 0

	for _, t := range tickets {
		record := t
		r.tickets[t.ID] = &record
		if t.Owner != "" {
			r.ownerCounts[t.Owner]++
		}
		if t.ID > r.ticketCount {
			r.ticketCount = t.ID
		}
	}
}
