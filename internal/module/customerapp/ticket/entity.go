package ticket

import "fmt"

// Ticket is the authoritative record of one issued ticket. Price is the face
// value until the first resale listing, then the listed ask. Amounts are
// minor currency units.
type Ticket struct {
	ID          int64
	Owner       string
	Price       int64
	IsForSale   bool
	ResaleCount int64
	Seat        string
	Zone        string
	Time        string
}

// QRCode renders the scannable admission code of the ticket.
func (t Ticket) QRCode() string {
	return fmt.Sprintf("QRCODE:TicketID:%d", t.ID)
}

// Metadata is the descriptive seat assignment attached at mint time. The
// ledger stores and returns it verbatim.
type Metadata struct {
	Seat string
	Zone string
	Time string
}

// EventConfig holds the immutable sale parameters of the event.
type EventConfig struct {
	Name              string
	Venue             string
	StartsAt          string
	FacePrice         int64
	MaxResales        int64
	MaxTicketsPerUser int64
	RoyaltyPercentage int64
	OrganizerAccount  string
}

// ResalePriceCeiling is the highest allowed ask on a resale listing, 110% of
// the face price rounded down.
func (c EventConfig) ResalePriceCeiling() int64 {
	return c.FacePrice * 110 / 100
}
