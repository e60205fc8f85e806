package hash

import (
	"golang.org/x/crypto/bcrypt"

	"community-backend/internal/domains/account"
)

// bcrypt cost 12 balances hashing time against login throughput.
const bcryptCost = 12

type bcryptCodec struct{}

// NewBcryptCodec returns the production credential codec.
// bcrypt.CompareHashAndPassword is a constant-time comparison.
func NewBcryptCodec() account.CredentialCodec {
	return bcryptCodec{}
}

func (bcryptCodec) Encode(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (bcryptCodec) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
