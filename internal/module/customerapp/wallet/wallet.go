package wallet

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

// Entry is a single credit to an account, expressed in minor currency units.
type Entry struct {
	Account string
	Amount  int64
}

// Ledger moves funds between the parties of a sale. A batch of entries is
// applied all-or-nothing: when any recipient rejects the transfer, no entry
// of the batch is applied.
type Ledger interface {
	Apply(ctx context.Context, entries []Entry) error
	Balance(ctx context.Context, account string) (int64, error)
	Freeze(ctx context.Context, account string) error
	Unfreeze(ctx context.Context, account string) error
	Snapshot(ctx context.Context) (map[string]int64, error)
	Restore(ctx context.Context, balances map[string]int64) error
}

type inMemoryLedger struct {
	logger   *logrus.Logger
	balances map[string]int64
	frozen   map[string]bool
}

func NewInMemoryLedger(logger *logrus.Logger) Ledger {
	return &inMemoryLedger{
		logger:   logger,
		balances: make(map[string]int64),
		frozen:   make(map[string]bool),
	}
}

// Apply implements Ledger. Every entry is validated before the first balance
// is touched, so a rejected recipient leaves the ledger unchanged.
func (l *inMemoryLedger) Apply(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if e.Account == "" {
			return errors.New(http.StatusUnprocessableEntity, status.TRANSFER_REJECTED, "transfer to an empty account is rejected")
		}
		if e.Amount < 0 {
			return errors.New(http.StatusUnprocessableEntity, status.TRANSFER_REJECTED, "transfer of a negative amount is rejected")
		}
		if l.frozen[e.Account] {
			l.logger.WithContext(ctx).WithField("account", e.Account).Warn("transfer to frozen account rejected")
			return errors.New(http.StatusUnprocessableEntity, status.TRANSFER_REJECTED, fmt.Sprintf("account '%s' rejects the transfer", e.Account))
		}
	}

	for _, e := range entries {
		l.balances[e.Account] += e.Amount
	}

	return nil
}

// Balance implements Ledger.
func (l *inMemoryLedger) Balance(ctx context.Context, account string) (int64, error) {
	return l.balances[account], nil
}

// Freeze implements Ledger.
func (l *inMemoryLedger) Freeze(ctx context.Context, account string) error {
	l.frozen[account] = true
	return nil
}

// Unfreeze implements Ledger.
func (l *inMemoryLedger) Unfreeze(ctx context.Context, account string) error {
	delete(l.frozen, account)
	return nil
}

// Snapshot implements Ledger.
func (l *inMemoryLedger) Snapshot(ctx context.Context) (map[string]int64, error) {
	balances := make(map[string]int64, len(l.balances))
	for k, v := range l.balances {
		balances[k] = v
	}

	return balances, nil
}

// Restore implements Ledger.
func (l *inMemoryLedger) Restore(ctx context.Context, balances map[string]int64) error {
	l.balances = make(map[string]int64, len(balances))
	for k, v := range balances {
		l.balances[k] = v
	}

	return nil
}
