package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tsel-ticketmaster/tm-ticket/internal/module/customerapp/wallet"
	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/pubsub"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

type TicketUseCase interface {
	PurchaseTicket(ctx context.Context, req PurchaseTicketRequest) (PurchaseTicketResponse, error)
	ListTicketForResale(ctx context.Context, req ListTicketForResaleRequest) error
	BuyResaleTicket(ctx context.Context, req BuyResaleTicketRequest) error
	GetTicket(ctx context.Context, ticketID int64) (GetTicketResponse, error)
	GetUserTicketCount(ctx context.Context, address string) (GetUserTicketCountResponse, error)
	GetTicketQRCode(ctx context.Context, ticketID int64) (GetTicketQRCodeResponse, error)
	GetEventInfo(ctx context.Context) (GetEventInfoResponse, error)
	RestoreState(ctx context.Context) error
	PersistState(ctx context.Context) error
}

type ticketUseCase struct {
	logger             *logrus.Logger
	timeout            time.Duration
	eventConfig        EventConfig
	registry           Registry
	wallet             wallet.Ledger
	publisher          pubsub.Publisher
	snapshotRepository SnapshotRepository

	// mu serializes whole operations: every public method runs to completion
	// against the ledger before the next one begins.
	mu sync.Mutex
}

type TicketUseCaseProperty struct {
	Logger             *logrus.Logger
	Timeout            time.Duration
	EventConfig        EventConfig
	Registry           Registry
	Wallet             wallet.Ledger
	Publisher          pubsub.Publisher
	SnapshotRepository SnapshotRepository
}

func NewTicketUseCase(props TicketUseCaseProperty) TicketUseCase {
	return &ticketUseCase{
		logger:             props.Logger,
		timeout:            props.Timeout,
		eventConfig:        props.EventConfig,
		registry:           props.Registry,
		wallet:             props.Wallet,
		publisher:          props.Publisher,
		snapshotRepository: props.SnapshotRepository,
	}
}

// PurchaseTicket implements TicketUseCase. A new ticket is minted against the
// face price; the organizer is credited and any overpayment flows back to the
// buyer within the same operation.
func (u *ticketUseCase) PurchaseTicket(ctx context.Context, req PurchaseTicketRequest) (PurchaseTicketResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return PurchaseTicketResponse{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	facePrice := u.eventConfig.FacePrice

	if req.PaidAmount < facePrice {
		return PurchaseTicketResponse{}, errors.New(http.StatusPaymentRequired, status.INSUFFICIENT_PAYMENT, fmt.Sprintf("the attached payment is below the face price of %d", facePrice))
	}

	if u.registry.CountByOwner(acc.ID) >= u.eventConfig.MaxTicketsPerUser {
		return PurchaseTicketResponse{}, errors.New(http.StatusConflict, status.PURCHASE_LIMIT_EXCEEDED, fmt.Sprintf("the purchase limit of %d tickets has been reached", u.eventConfig.MaxTicketsPerUser))
	}

	refund := req.PaidAmount - facePrice

	entries := []wallet.Entry{
		{Account: u.eventConfig.OrganizerAccount, Amount: facePrice},
	}
	if refund > 0 {
		entries = append(entries, wallet.Entry{Account: acc.ID, Amount: refund})
	}

	if err := u.wallet.Apply(ctx, entries); err != nil {
		return PurchaseTicketResponse{}, err
	}

	id := u.registry.Allocate(Metadata{Seat: req.Seat, Zone: req.Zone, Time: req.Time}, facePrice)
	if err := u.registry.SetOwner(id, acc.ID); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
		return PurchaseTicketResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while assigning the ticket's owner")
	}

	u.publish(ctx, TopicTicketPurchased, TicketPurchasedEvent{
		TicketID: id,
		Buyer:    acc.ID,
		Price:    facePrice,
	})

	return PurchaseTicketResponse{
		TicketID: id,
		Owner:    acc.ID,
		Price:    facePrice,
		Refund:   refund,
	}, nil
}

// ListTicketForResale implements TicketUseCase. Relisting an already listed
// ticket overwrites the previous ask in place.
func (u *ticketUseCase) ListTicketForResale(ctx context.Context, req ListTicketForResaleRequest) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	t, err := u.registry.Get(req.TicketID)
	if err != nil {
		return err
	}

	if t.Owner != acc.ID {
		return errors.New(http.StatusForbidden, status.NOT_OWNER, fmt.Sprintf("caller is not the owner of ticket '%d'", req.TicketID))
	}

	if t.ResaleCount >= u.eventConfig.MaxResales {
		return errors.New(http.StatusConflict, status.RESALE_LIMIT_REACHED, fmt.Sprintf("ticket '%d' has reached the resale limit of %d", req.TicketID, u.eventConfig.MaxResales))
	}

	if ceiling := u.eventConfig.ResalePriceCeiling(); req.AskPrice > ceiling {
		return errors.New(http.StatusBadRequest, status.PRICE_ABOVE_CEILING, fmt.Sprintf("the ask price exceeds the ceiling of %d", ceiling))
	}

	if err := u.registry.SetListing(req.TicketID, req.AskPrice); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while listing the ticket for resale")
	}

	u.publish(ctx, TopicTicketListedForResale, TicketListedForResaleEvent{
		TicketID: req.TicketID,
		Price:    req.AskPrice,
	})

	return nil
}

// BuyResaleTicket implements TicketUseCase. The royalty split, the seller's
// proceeds and the refund are computed from one snapshot of the listed price
// taken before any mutation; the funds batch is applied all-or-nothing and
// ownership only changes after it succeeds.
func (u *ticketUseCase) BuyResaleTicket(ctx context.Context, req BuyResaleTicketRequest) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	t, err := u.registry.Get(req.TicketID)
	if err != nil {
		return err
	}

	if !t.IsForSale {
		return errors.New(http.StatusConflict, status.NOT_FOR_SALE, fmt.Sprintf("ticket '%d' is not listed for resale", req.TicketID))
	}

	if t.Owner == acc.ID {
		return errors.New(http.StatusConflict, status.CONFLICT, "caller already owns the listed ticket")
	}

	price := t.Price
	seller := t.Owner

	if req.PaidAmount < price {
		return errors.New(http.StatusPaymentRequired, status.INSUFFICIENT_PAYMENT, fmt.Sprintf("the attached payment is below the listed price of %d", price))
	}

	if u.registry.CountByOwner(acc.ID) >= u.eventConfig.MaxTicketsPerUser {
		return errors.New(http.StatusConflict, status.PURCHASE_LIMIT_EXCEEDED, fmt.Sprintf("the purchase limit of %d tickets has been reached", u.eventConfig.MaxTicketsPerUser))
	}

	royalty := price * u.eventConfig.RoyaltyPercentage / 100
	sellerProceeds := price - royalty
	refund := req.PaidAmount - price

	entries := []wallet.Entry{
		{Account: u.eventConfig.OrganizerAccount, Amount: royalty},
		{Account: seller, Amount: sellerProceeds},
	}
	if refund > 0 {
		entries = append(entries, wallet.Entry{Account: acc.ID, Amount: refund})
	}

	if err := u.wallet.Apply(ctx, entries); err != nil {
		return err
	}

	if err := u.registry.SetOwner(req.TicketID, acc.ID); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while transferring the ticket's ownership")
	}
	if err := u.registry.CompleteResale(req.TicketID); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while completing the resale")
	}

	u.publish(ctx, TopicTicketResold, TicketResoldEvent{
		TicketID: req.TicketID,
		Buyer:    acc.ID,
		Price:    price,
	})

	return nil
}

// GetTicket implements TicketUseCase.
func (u *ticketUseCase) GetTicket(ctx context.Context, ticketID int64) (GetTicketResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	t, err := u.registry.Get(ticketID)
	if err != nil {
		return GetTicketResponse{}, err
	}

	resp := GetTicketResponse{}
	resp.PopulateFromEntity(t)

	return resp, nil
}

// GetUserTicketCount implements TicketUseCase.
func (u *ticketUseCase) GetUserTicketCount(ctx context.Context, address string) (GetUserTicketCountResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	return GetUserTicketCountResponse{
		Address: address,
		Count:   u.registry.CountByOwner(address),
	}, nil
}

// GetTicketQRCode implements TicketUseCase.
func (u *ticketUseCase) GetTicketQRCode(ctx context.Context, ticketID int64) (GetTicketQRCodeResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	t, err := u.registry.Get(ticketID)
	if err != nil {
		return GetTicketQRCodeResponse{}, err
	}

	return GetTicketQRCodeResponse{
		TicketID: t.ID,
		QRCode:   t.QRCode(),
	}, nil
}

// GetEventInfo implements TicketUseCase.
func (u *ticketUseCase) GetEventInfo(ctx context.Context) (GetEventInfoResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	return GetEventInfoResponse{
		Name:              u.eventConfig.Name,
		Venue:             u.eventConfig.Venue,
		StartsAt:          u.eventConfig.StartsAt,
		FacePrice:         u.eventConfig.FacePrice,
		MaxResales:        u.eventConfig.MaxResales,
		MaxTicketsPerUser: u.eventConfig.MaxTicketsPerUser,
		RoyaltyPercentage: u.eventConfig.RoyaltyPercentage,
		TicketCount:       u.registry.TicketCount(),
	}, nil
}

// RestoreState implements TicketUseCase. The persisted snapshot, when one
// exists, seeds the in-memory ledger at boot; the in-memory state stays
// authoritative afterwards.
func (u *ticketUseCase) RestoreState(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	state, err := u.snapshotRepository.FindLedgerState(ctx)
	if err != nil {
		return err
	}

	u.registry.Restore(state.Tickets)
	if err := u.wallet.Restore(ctx, state.Balances); err != nil {
		return err
	}

	return nil
}

// PersistState implements TicketUseCase.
func (u *ticketUseCase) PersistState(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	balances, err := u.wallet.Snapshot(ctx)
	if err != nil {
		return err
	}

	state := LedgerState{
		Tickets:  u.registry.Snapshot(),
		Balances: balances,
	}

	return u.snapshotRepository.SaveLedgerState(ctx, state)
}

func (u *ticketUseCase) publish(ctx context.Context, topic string, event interface{}) {
	buff, _ := json.Marshal(event)

	if err := u.publisher.Publish(ctx, topic, uuid.NewString(), nil, buff); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
	}
}
