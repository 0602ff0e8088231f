package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// SharedPassword проверяет пароль, общий для всех учетных записей приложения.
// В памяти хранится только bcrypt-хеш.
type SharedPassword struct {
	hash []byte
}

func NewSharedPassword(password string) (*SharedPassword, error) {
	return newSharedPassword(password, bcryptCost)
}

func newSharedPassword(password string, cost int) (*SharedPassword, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &SharedPassword{hash: hash}, nil
}

func (p *SharedPassword) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(password)) == nil
}
