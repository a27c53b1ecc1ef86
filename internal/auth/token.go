package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// claims is the JSON payload sealed inside a token.
type claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
}

// Codec seals and opens Fernet identity tokens.
// The first key signs new tokens; every key is accepted when verifying, which allows key rotation.
type Codec struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewCodec decodes the configured keys. A non-positive TokenTTL disables expiry.
func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if len(cfg.FernetKeys) == 0 {
		return nil, errors.New("AUTH_FERNET_KEYS is required")
	}
	keys, err := fernet.DecodeKeys(cfg.FernetKeys...)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_FERNET_KEYS: %w", err)
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		// fernet skips the timestamp check for a negative TTL.
		ttl = -1
	}
	return &Codec{keys: keys, ttl: ttl}, nil
}

// GenerateKey returns a new random key in the encoding AUTH_FERNET_KEYS expects.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// Issue creates a token for s.
func (c *Codec) Issue(s Session) (string, error) {
	payload, err := json.Marshal(claims{Subject: s.UserID, Email: s.Email, Role: string(s.Role)})
	if err != nil {
		return "", err
	}
	tok, err := fernet.EncryptAndSign(payload, c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(tok), nil
}

// Verify opens a token and returns the session it carries.
// Expired, tampered and malformed tokens return apperrors.ErrUnauthenticated.
func (c *Codec) Verify(token string) (*Session, error) {
	msg := fernet.VerifyAndDecrypt([]byte(strings.TrimSpace(token)), c.ttl, c.keys)
	if msg == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	var cl claims
	if err := json.Unmarshal(msg, &cl); err != nil || cl.Subject == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	role := model.Role(cl.Role)
	if role != model.RoleAdmin {
		role = model.RoleMember
	}
	return &Session{UserID: cl.Subject, Email: cl.Email, Role: role}, nil
}
