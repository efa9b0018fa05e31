package ticket

type PurchaseTicketResponse struct {
	TicketID int64  `json:"ticket_id"`
	Owner    string `json:"owner"`
	Price    int64  `json:"price"`
	Refund   int64  `json:"refund"`
}

type GetTicketResponse struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Price       int64  `json:"price"`
	IsForSale   bool   `json:"is_for_sale"`
	ResaleCount int64  `json:"resale_count"`
	Seat        string `json:"seat"`
	Zone        string `json:"zone"`
	Time        string `json:"time"`
}

func (r *GetTicketResponse) PopulateFromEntity(t Ticket) {
	r.ID = t.ID
	r.Owner = t.Owner
	r.Price = t.Price
	r.IsForSale = t.IsForSale
	r.ResaleCount = t.ResaleCount
	r.Seat = t.Seat
	r.Zone = t.Zone
	r.Time = t.Time
}

type GetUserTicketCountResponse struct {
	Address string `json:"address"`
	Count   int64  `json:"count"`
}

type GetTicketQRCodeResponse struct {
	TicketID int64  `json:"ticket_id"`
	QRCode   string `json:"qr_code"`
}

type GetEventInfoResponse struct {
	Name              string `json:"name"`
	Venue             string `json:"venue"`
	StartsAt          string `json:"starts_at"`
	FacePrice         int64  `json:"face_price"`
	MaxResales        int64  `json:"max_resales"`
	MaxTicketsPerUser int64  `json:"max_tickets_per_user"`
	RoyaltyPercentage int64  `json:"royalty_percentage"`
	TicketCount       int64  `json:"ticket_count"`
}
