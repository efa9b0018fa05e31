package ticket

type PurchaseTicketRequest struct {
	PaidAmount int64  `json:"paid_amount" validate:"gt=0"`
	Seat       string `json:"seat"`
	Zone       string `json:"zone"`
	Time       string `json:"time"`
}

type ListTicketForResaleRequest struct {
	TicketID int64 `json:"-" validate:"gt=0"`
	AskPrice int64 `json:"ask_price" validate:"gt=0"`
}

type BuyResaleTicketRequest struct {
	TicketID   int64 `json:"-" validate:"gt=0"`
	PaidAmount int64 `json:"paid_amount" validate:"gt=0"`
}
