package ticket

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsel-ticketmaster/tm-ticket/internal/module/customerapp/wallet"
	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

type publishedMessage struct {
	topic   string
	message []byte
}

type fakePublisher struct {
	published []publishedMessage
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error {
	p.published = append(p.published, publishedMessage{topic: topic, message: message})
	return nil
}

func (p *fakePublisher) Close() {}

type fakeSnapshotRepository struct {
	state LedgerState
}

func (r *fakeSnapshotRepository) SaveLedgerState(ctx context.Context, state LedgerState) error {
	r.state = state
	return nil
}

func (r *fakeSnapshotRepository) FindLedgerState(ctx context.Context) (LedgerState, error) {
	return r.state, nil
}

type fixture struct {
	useCase   TicketUseCase
	registry  Registry
	wallet    wallet.Ledger
	publisher *fakePublisher
	snapshots *fakeSnapshotRepository
	config    EventConfig
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newFixture(cfg EventConfig) *fixture {
	logger := testLogger()

	f := &fixture{
		registry:  NewInMemoryRegistry(),
		wallet:    wallet.NewInMemoryLedger(logger),
		publisher: &fakePublisher{},
		snapshots: &fakeSnapshotRepository{},
		config:    cfg,
	}

	f.useCase = NewTicketUseCase(TicketUseCaseProperty{
		Logger:             logger,
		Timeout:            time.Second,
		EventConfig:        cfg,
		Registry:           f.registry,
		Wallet:             f.wallet,
		Publisher:          f.publisher,
		SnapshotRepository: f.snapshots,
	})

	return f
}

func defaultConfig() EventConfig {
	return EventConfig{
		Name:              "Telkomsel Arena Live",
		Venue:             "Jakarta",
		StartsAt:          "2026-11-20T19:00:00Z",
		FacePrice:         100,
		MaxResales:        3,
		MaxTicketsPerUser: 5,
		RoyaltyPercentage: 10,
		OrganizerAccount:  "organizer",
	}
}

func asAccount(id string) context.Context {
	return session.SetAccountToCtx(context.Background(), session.Account{ID: id, Name: id, Email: id + "@mail.test"})
}

func mustBalance(t *testing.T, l wallet.Ledger, account string) int64 {
	t.Helper()
	balance, err := l.Balance(context.Background(), account)
	require.NoError(t, err)
	return balance
}

func TestTicketUseCase_PurchaseTicket(t *testing.T) {
	t.Run("mints sequential ticket ids starting at one", func(t *testing.T) {
		f := newFixture(defaultConfig())

		for want := int64(1); want <= 3; want++ {
			resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
			require.NoError(t, err)
			assert.Equal(t, want, resp.TicketID)
		}

		count, err := f.useCase.GetUserTicketCount(context.Background(), "addr1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), count.Count)
	})

	t.Run("credits the organizer with the face price", func(t *testing.T) {
		f := newFixture(defaultConfig())

		_, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		assert.Equal(t, int64(100), mustBalance(t, f.wallet, "organizer"))
	})

	t.Run("refunds the overpayment to the buyer", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 130})
		require.NoError(t, err)

		assert.Equal(t, int64(30), resp.Refund)
		assert.Equal(t, int64(100), mustBalance(t, f.wallet, "organizer"))
		assert.Equal(t, int64(30), mustBalance(t, f.wallet, "addr1"))
	})

	t.Run("stores the seat metadata verbatim", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{
			PaidAmount: 100,
			Seat:       "A12",
			Zone:       "tribune-east",
			Time:       "19:00",
		})
		require.NoError(t, err)

		got, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.Equal(t, "A12", got.Seat)
		assert.Equal(t, "tribune-east", got.Zone)
		assert.Equal(t, "19:00", got.Time)
		assert.False(t, got.IsForSale)
		assert.Equal(t, int64(0), got.ResaleCount)
		assert.Equal(t, int64(100), got.Price)
	})

	t.Run("rejects a payment below the face price without minting", func(t *testing.T) {
		f := newFixture(defaultConfig())

		_, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 99})
		require.Error(t, err)
		assert.Equal(t, status.INSUFFICIENT_PAYMENT, errors.Destruct(err).Status)

		info, err := f.useCase.GetEventInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), info.TicketCount)
		assert.Equal(t, int64(0), mustBalance(t, f.wallet, "organizer"))
	})

	t.Run("rejects a purchase beyond the per-user limit", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.MaxTicketsPerUser = 2
		f := newFixture(cfg)

		for i := 0; i < 2; i++ {
			_, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
			require.NoError(t, err)
		}

		_, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.Error(t, err)
		assert.Equal(t, status.PURCHASE_LIMIT_EXCEEDED, errors.Destruct(err).Status)

		info, err := f.useCase.GetEventInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), info.TicketCount)
		assert.Equal(t, int64(200), mustBalance(t, f.wallet, "organizer"))
	})

	t.Run("publishes the purchased event", func(t *testing.T) {
		f := newFixture(defaultConfig())

		_, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, TopicTicketPurchased, f.publisher.published[0].topic)

		var e TicketPurchasedEvent
		require.NoError(t, json.Unmarshal(f.publisher.published[0].message, &e))
		assert.Equal(t, int64(1), e.TicketID)
		assert.Equal(t, "addr1", e.Buyer)
		assert.Equal(t, int64(100), e.Price)
	})

	t.Run("rejects an unauthenticated caller", func(t *testing.T) {
		f := newFixture(defaultConfig())

		_, err := f.useCase.PurchaseTicket(context.Background(), PurchaseTicketRequest{PaidAmount: 100})
		require.Error(t, err)
		assert.Equal(t, status.UNAUTHORIZED, errors.Destruct(err).Status)
	})
}

func TestTicketUseCase_ListTicketForResale(t *testing.T) {
	t.Run("lists an owned ticket at the ceiling", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		err = f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 110})
		require.NoError(t, err)

		got, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.True(t, got.IsForSale)
		assert.Equal(t, int64(110), got.Price)
		assert.Equal(t, "addr1", got.Owner)
	})

	t.Run("relisting overwrites the previous ask", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 110}))
		require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 105}))

		got, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.True(t, got.IsForSale)
		assert.Equal(t, int64(105), got.Price)
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		err = f.useCase.ListTicketForResale(asAccount("addr2"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 110})
		require.Error(t, err)
		assert.Equal(t, status.NOT_OWNER, errors.Destruct(err).Status)
	})

	t.Run("rejects an ask above the ceiling and keeps the listing state", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		err = f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 111})
		require.Error(t, err)
		assert.Equal(t, status.PRICE_ABOVE_CEILING, errors.Destruct(err).Status)

		got, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.False(t, got.IsForSale)
		assert.Equal(t, int64(100), got.Price)
	})

	t.Run("rounds the ceiling down on odd face prices", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.FacePrice = 95
		f := newFixture(cfg)

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 95})
		require.NoError(t, err)

		// 95 * 110 / 100 = 104.5, floored to 104.
		err = f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 105})
		require.Error(t, err)
		assert.Equal(t, status.PRICE_ABOVE_CEILING, errors.Destruct(err).Status)

		require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 104}))
	})

	t.Run("rejects an unknown ticket", func(t *testing.T) {
		f := newFixture(defaultConfig())

		err := f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: 42, AskPrice: 100})
		require.Error(t, err)
		assert.Equal(t, status.NOT_FOUND, errors.Destruct(err).Status)
	})

	t.Run("rejects listing once the resale limit is reached", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.MaxResales = 1
		f := newFixture(cfg)

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 110}))
		require.NoError(t, f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: resp.TicketID, PaidAmount: 110}))

		err = f.useCase.ListTicketForResale(asAccount("addr2"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 110})
		require.Error(t, err)
		assert.Equal(t, status.RESALE_LIMIT_REACHED, errors.Destruct(err).Status)
	})
}

func TestTicketUseCase_BuyResaleTicket(t *testing.T) {
	listed := func(t *testing.T, f *fixture, askPrice int64) int64 {
		t.Helper()
		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)
		require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: askPrice}))
		return resp.TicketID
	}

	t.Run("transfers ownership and splits the payment", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		organizerBefore := mustBalance(t, f.wallet, "organizer")

		err := f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 110})
		require.NoError(t, err)

		got, err := f.useCase.GetTicket(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "addr2", got.Owner)
		assert.False(t, got.IsForSale)
		assert.Equal(t, int64(1), got.ResaleCount)
		assert.Equal(t, int64(110), got.Price)

		sellerCount, err := f.useCase.GetUserTicketCount(context.Background(), "addr1")
		require.NoError(t, err)
		buyerCount, err := f.useCase.GetUserTicketCount(context.Background(), "addr2")
		require.NoError(t, err)
		assert.Equal(t, int64(0), sellerCount.Count)
		assert.Equal(t, int64(1), buyerCount.Count)

		// royalty 10% of 110 = 11, seller proceeds 99
		assert.Equal(t, organizerBefore+11, mustBalance(t, f.wallet, "organizer"))
		assert.Equal(t, int64(99), mustBalance(t, f.wallet, "addr1"))
	})

	t.Run("refunds the excess and splits from the listed price", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		err := f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 115})
		require.NoError(t, err)

		assert.Equal(t, int64(5), mustBalance(t, f.wallet, "addr2"))
		assert.Equal(t, int64(99), mustBalance(t, f.wallet, "addr1"))
		assert.Equal(t, int64(100+11), mustBalance(t, f.wallet, "organizer"))
	})

	t.Run("floors the royalty on amounts not evenly divisible", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.RoyaltyPercentage = 7
		f := newFixture(cfg)
		id := listed(t, f, 109)

		err := f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 109})
		require.NoError(t, err)

		// royalty 109*7/100 = 7.63, floored to 7; seller keeps 102.
		assert.Equal(t, int64(100+7), mustBalance(t, f.wallet, "organizer"))
		assert.Equal(t, int64(102), mustBalance(t, f.wallet, "addr1"))
	})

	t.Run("rejects a ticket that is not listed", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		err = f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: resp.TicketID, PaidAmount: 110})
		require.Error(t, err)
		assert.Equal(t, status.NOT_FOR_SALE, errors.Destruct(err).Status)
	})

	t.Run("rejects the owner buying their own listing", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		err := f.useCase.BuyResaleTicket(asAccount("addr1"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 110})
		require.Error(t, err)
		assert.Equal(t, status.CONFLICT, errors.Destruct(err).Status)

		got, err := f.useCase.GetTicket(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, got.IsForSale)
		assert.Equal(t, "addr1", got.Owner)
	})

	t.Run("rejects a payment below the listed price", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		err := f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 109})
		require.Error(t, err)
		assert.Equal(t, status.INSUFFICIENT_PAYMENT, errors.Destruct(err).Status)

		got, err := f.useCase.GetTicket(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "addr1", got.Owner)
		assert.True(t, got.IsForSale)
		assert.Equal(t, int64(0), got.ResaleCount)
	})

	t.Run("rejects a buyer at the holding limit", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.MaxTicketsPerUser = 1
		f := newFixture(cfg)
		id := listed(t, f, 110)

		_, err := f.useCase.PurchaseTicket(asAccount("addr2"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		err = f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 110})
		require.Error(t, err)
		assert.Equal(t, status.PURCHASE_LIMIT_EXCEEDED, errors.Destruct(err).Status)

		got, err := f.useCase.GetTicket(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "addr1", got.Owner)
	})

	t.Run("rolls the whole operation back when a recipient rejects the transfer", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		require.NoError(t, f.wallet.Freeze(context.Background(), "addr1"))

		err := f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 115})
		require.Error(t, err)
		assert.Equal(t, status.TRANSFER_REJECTED, errors.Destruct(err).Status)

		got, err := f.useCase.GetTicket(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "addr1", got.Owner)
		assert.True(t, got.IsForSale)
		assert.Equal(t, int64(0), got.ResaleCount)
		assert.Equal(t, int64(100), mustBalance(t, f.wallet, "organizer"))
		assert.Equal(t, int64(0), mustBalance(t, f.wallet, "addr2"))
	})

	t.Run("publishes the resold event", func(t *testing.T) {
		f := newFixture(defaultConfig())
		id := listed(t, f, 110)

		require.NoError(t, f.useCase.BuyResaleTicket(asAccount("addr2"), BuyResaleTicketRequest{TicketID: id, PaidAmount: 110}))

		last := f.publisher.published[len(f.publisher.published)-1]
		assert.Equal(t, TopicTicketResold, last.topic)

		var e TicketResoldEvent
		require.NoError(t, json.Unmarshal(last.message, &e))
		assert.Equal(t, id, e.TicketID)
		assert.Equal(t, "addr2", e.Buyer)
		assert.Equal(t, int64(110), e.Price)
	})
}

func TestTicketUseCase_Scenario(t *testing.T) {
	// face price 100, three resales allowed, five tickets per user, 10% royalty
	f := newFixture(defaultConfig())

	resp, err := f.useCase.PurchaseTicket(asAccount("A"), PurchaseTicketRequest{PaidAmount: 100})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TicketID)

	countA, err := f.useCase.GetUserTicketCount(context.Background(), "A")
	require.NoError(t, err)
	require.Equal(t, int64(1), countA.Count)

	require.NoError(t, f.useCase.ListTicketForResale(asAccount("A"), ListTicketForResaleRequest{TicketID: 1, AskPrice: 110}))

	require.NoError(t, f.useCase.BuyResaleTicket(asAccount("B"), BuyResaleTicketRequest{TicketID: 1, PaidAmount: 110}))

	countA, err = f.useCase.GetUserTicketCount(context.Background(), "A")
	require.NoError(t, err)
	countB, err := f.useCase.GetUserTicketCount(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, int64(0), countA.Count)
	assert.Equal(t, int64(1), countB.Count)

	got, err := f.useCase.GetTicket(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ResaleCount)

	assert.Equal(t, int64(100+11), mustBalance(t, f.wallet, "organizer"))
	assert.Equal(t, int64(99), mustBalance(t, f.wallet, "A"))

	err = f.useCase.ListTicketForResale(asAccount("B"), ListTicketForResaleRequest{TicketID: 1, AskPrice: 125})
	require.Error(t, err)
	assert.Equal(t, status.PRICE_ABOVE_CEILING, errors.Destruct(err).Status)
}

func TestTicketUseCase_Reads(t *testing.T) {
	t.Run("get ticket is idempotent", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100, Seat: "B7"})
		require.NoError(t, err)

		first, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		second, err := f.useCase.GetTicket(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("qr code follows the ticket id", func(t *testing.T) {
		f := newFixture(defaultConfig())

		resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 100})
		require.NoError(t, err)

		qr, err := f.useCase.GetTicketQRCode(context.Background(), resp.TicketID)
		require.NoError(t, err)
		assert.Equal(t, "QRCODE:TicketID:1", qr.QRCode)
	})

	t.Run("qr code of an unknown ticket is not found", func(t *testing.T) {
		f := newFixture(defaultConfig())

		_, err := f.useCase.GetTicketQRCode(context.Background(), 9)
		require.Error(t, err)
		assert.Equal(t, status.NOT_FOUND, errors.Destruct(err).Status)
	})

	t.Run("event info mirrors the construction parameters", func(t *testing.T) {
		f := newFixture(defaultConfig())

		info, err := f.useCase.GetEventInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Telkomsel Arena Live", info.Name)
		assert.Equal(t, int64(100), info.FacePrice)
		assert.Equal(t, int64(3), info.MaxResales)
		assert.Equal(t, int64(5), info.MaxTicketsPerUser)
		assert.Equal(t, int64(10), info.RoyaltyPercentage)
		assert.Equal(t, int64(0), info.TicketCount)
	})
}

func TestTicketUseCase_StateRoundTrip(t *testing.T) {
	f := newFixture(defaultConfig())

	resp, err := f.useCase.PurchaseTicket(asAccount("addr1"), PurchaseTicketRequest{PaidAmount: 120, Seat: "C3"})
	require.NoError(t, err)
	require.NoError(t, f.useCase.ListTicketForResale(asAccount("addr1"), ListTicketForResaleRequest{TicketID: resp.TicketID, AskPrice: 108}))

	require.NoError(t, f.useCase.PersistState(context.Background()))

	restored := newFixture(defaultConfig())
	restored.snapshots.state = f.snapshots.state
	require.NoError(t, restored.useCase.RestoreState(context.Background()))

	got, err := restored.useCase.GetTicket(context.Background(), resp.TicketID)
	require.NoError(t, err)
	assert.Equal(t, "addr1", got.Owner)
	assert.True(t, got.IsForSale)
	assert.Equal(t, int64(108), got.Price)
	assert.Equal(t, "C3", got.Seat)

	count, err := restored.useCase.GetUserTicketCount(context.Background(), "addr1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)

	info, err := restored.useCase.GetEventInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.TicketCount)

	assert.Equal(t, int64(20), mustBalance(t, restored.wallet, "addr1"))
	assert.Equal(t, int64(100), mustBalance(t, restored.wallet, "organizer"))
}
