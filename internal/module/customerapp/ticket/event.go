package ticket

const (
	TopicTicketPurchased       = "ticket-purchased"
	TopicTicketListedForResale = "ticket-listed-for-resale"
	TopicTicketResold          = "ticket-resold"
)

type TicketPurchasedEvent struct {
	TicketID int64  `json:"ticket_id"`
	Buyer    string `json:"buyer"`
	Price    int64  `json:"price"`
}

type TicketListedForResaleEvent struct {
	TicketID int64 `json:"ticket_id"`
	Price    int64 `json:"price"`
}

type TicketResoldEvent struct {
	TicketID int64  `json:"ticket_id"`
	Buyer    string `json:"buyer"`
	Price    int64  `json:"price"`
}
