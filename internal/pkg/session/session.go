package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

// Account is the authenticated customer attached to a verified session. ID is
// the ledger address used for ticket ownership and funds movements.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type contextKey struct{}

var accountContextKey = contextKey{}

func SetAccountToCtx(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, accountContextKey, acc)
}

func GetAccountFromCtx(ctx context.Context) (Account, error) {
	acc, ok := ctx.Value(accountContextKey).(Account)
	if !ok {
		return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "account is not found on the session")
	}

	return acc, nil
}

type Store interface {
	Get(ctx context.Context, accountID string) (Account, error)
	Set(ctx context.Context, acc Account, ttl time.Duration) error
	Delete(ctx context.Context, accountID string) error
}

type redisSessionStore struct {
	logger *logrus.Logger
	client *goredis.Client
}

func NewRedisSessionStore(logger *logrus.Logger, client *goredis.Client) Store {
	return &redisSessionStore{
		logger: logger,
		client: client,
	}
}

func sessionKey(accountID string) string {
	return fmt.Sprintf("session:customer:%s", accountID)
}

// Get implements Store.
func (s *redisSessionStore) Get(ctx context.Context, accountID string) (Account, error) {
	buff, err := s.client.Get(ctx, sessionKey(accountID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "session is not found or has expired")
		}
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the session")
	}

	var acc Account
	if err := json.Unmarshal(buff, &acc); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the session")
	}

	return acc, nil
}

// Set implements Store.
func (s *redisSessionStore) Set(ctx context.Context, acc Account, ttl time.Duration) error {
	buff, _ := json.Marshal(acc)

	if err := s.client.Set(ctx, sessionKey(acc.ID), buff, ttl).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the session")
	}

	return nil
}

// Delete implements Store.
func (s *redisSessionStore) Delete(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, sessionKey(accountID)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting the session")
	}

	return nil
}
