package ticket

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

// LedgerState is the full persisted layout of the ledger: every ticket record
// plus the wallet balances. Ownership counts and the ticket counter are
// derived from the records on restore.
type LedgerState struct {
	Tickets  []Ticket
	Balances map[string]int64
}

// SnapshotRepository persists the ledger state across restarts. The in-memory
// ledger stays authoritative while the process runs; the snapshot is written
// on shutdown and read back on boot.
type SnapshotRepository interface {
	SaveLedgerState(ctx context.Context, state LedgerState) error
	FindLedgerState(ctx context.Context) (LedgerState, error)
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type snapshotRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewSnapshotRepository(logger *logrus.Logger, db *sql.DB) SnapshotRepository {
	return &snapshotRepository{
		logger: logger,
		db:     db,
	}
}

// SaveLedgerState implements SnapshotRepository. The previous snapshot is
// replaced wholesale within one transaction.
func (r *snapshotRepository) SaveLedgerState(ctx context.Context, state LedgerState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to begin transaction")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_ticket`); err != nil {
		tx.Rollback()
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while clearing the ticket snapshot")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM wallet_balance`); err != nil {
		tx.Rollback()
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while clearing the balance snapshot")
	}

	insertTicket := `
		INSERT INTO ledger_ticket
		(id, owner, price, is_for_sale, resale_count, seat, zone, show_time)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, $8)
	`

	stmt, err := tx.PrepareContext(ctx, insertTicket)
	if err != nil {
		tx.Rollback()
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the ticket snapshot")
	}
	defer stmt.Close()

	for _, t := range state.Tickets {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Owner, t.Price, t.IsForSale, t.ResaleCount, t.Seat, t.Zone, t.Time); err != nil {
			tx.Rollback()
			r.logger.WithContext(ctx).WithError(err).Error()
			return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the ticket snapshot")
		}
	}

	insertBalance := `
		INSERT INTO wallet_balance (account, balance) VALUES ($1, $2)
	`

	balanceStmt, err := tx.PrepareContext(ctx, insertBalance)
	if err != nil {
		tx.Rollback()
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the balance snapshot")
	}
	defer balanceStmt.Close()

	for account, balance := range state.Balances {
		if _, err := balanceStmt.ExecContext(ctx, account, balance); err != nil {
			tx.Rollback()
			r.logger.WithContext(ctx).WithError(err).Error()
			return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the balance snapshot")
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to commit transaction")
	}

	return nil
}

// FindLedgerState implements SnapshotRepository.
func (r *snapshotRepository) FindLedgerState(ctx context.Context) (LedgerState, error) {
	var cmd sqlCommand = r.db

	query := `
		SELECT id, owner, price, is_for_sale, resale_count, seat, zone, show_time
		FROM ledger_ticket
		ORDER BY id ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the ticket snapshot")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the ticket snapshot")
	}
	defer rows.Close()

	state := LedgerState{
		Tickets:  make([]Ticket, 0),
		Balances: make(map[string]int64),
	}

	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.Owner, &t.Price, &t.IsForSale, &t.ResaleCount, &t.Seat, &t.Zone, &t.Time); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the ticket snapshot")
		}

		state.Tickets = append(state.Tickets, t)
	}

	balanceQuery := `
		SELECT account, balance FROM wallet_balance
	`

	balanceStmt, err := cmd.PrepareContext(ctx, balanceQuery)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the balance snapshot")
	}
	defer balanceStmt.Close()

	balanceRows, err := balanceStmt.QueryContext(ctx)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the balance snapshot")
	}
	defer balanceRows.Close()

	for balanceRows.Next() {
		var account string
		var balance int64
		if err := balanceRows.Scan(&account, &balance); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return LedgerState{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the balance snapshot")
		}

		state.Balances[account] = balance
	}

	return state, nil
}
