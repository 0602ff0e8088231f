package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
)

type revokedToken struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RevokedTokenRepository хранит отозванные при выходе токены до истечения их срока
type RevokedTokenRepository struct {
	mu     sync.Mutex
	tokens collection[revokedToken]
	now    func() time.Time
}

func NewRevokedTokenRepository(store storage.Store, logger *logrus.Logger) service.RevokedTokenRepository {
	return &RevokedTokenRepository{
		tokens: collection[revokedToken]{store: store, key: storage.KeyRevokedTokens, logger: logger},
		now:    time.Now,
	}
}

// Revoke добавляет токен в список отозванных и удаляет из списка истекшие записи
func (r *RevokedTokenRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens, err := r.tokens.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	now := r.now()
	kept := make([]*revokedToken, 0, len(tokens)+1)
	for _, token := range tokens {
		if token.ExpiresAt.After(now) && token.ID != tokenID {
			kept = append(kept, token)
		}
	}
	kept = append(kept, &revokedToken{ID: tokenID, ExpiresAt: expiresAt})

	if err := r.tokens.save(ctx, kept); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен. Ошибка хранилища возвращается вызывающему.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	tokens, err := r.tokens.load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	now := r.now()
	for _, token := range tokens {
		if token.ID == tokenID && token.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}
