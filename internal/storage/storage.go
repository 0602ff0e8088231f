// Package storage содержит key-value хранилище, в котором приложение держит
// свои коллекции в виде JSON-документов.
package storage

import (
	"context"
	"errors"
)

// Ключи коллекций в хранилище
const (
	KeyIncidents      = "@fyren_incidents"
	KeyUsers          = "@fyren_users"
	KeyComments       = "@fyren_comments"
	KeyCurrentUser    = "@fyren_user"
	KeyOnboarding     = "@fyren_onboarding"
	KeyThemePreferred = "@fyren_theme_pref"
	KeyRevokedTokens  = "@fyren_revoked_tokens"
)

// ErrKeyNotFound возвращается Get, если ключ никогда не записывался
var ErrKeyNotFound = errors.New("storage: key not found")

// Store - контракт key-value хранилища
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
