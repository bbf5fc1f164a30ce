package randomstringgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"securecrop/internal/core/domain/user"
)

// Generator produces opaque credential tokens. Session and password reset
// tokens guard accounts, so they come from crypto/rand rather than a seeded
// PRNG.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateSessionToken() user.SessionToken {
	return user.SessionToken(randomString(32))
}

func (g *Generator) GeneratePasswordResetToken() user.PasswordResetToken {
	return user.PasswordResetToken(randomString(32))
}

func randomString(byteCount int) string {
	b := make([]byte, byteCount)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
