package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"mindverse/internal/app/ports"
)

const CredentialStatusActive = "active"

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid operator credentials")
)

// Credential is a freshly issued operator key with the material to store.
// Key is shown to the caller once; only salt and hash persist.
type Credential struct {
	Key     string
	KeySalt []byte
	KeyHash []byte
}

// NewCredential mints a 32-byte operator key with a fresh salt.
func NewCredential() (Credential, error) {
	key, err := randomToken(32)
	if err != nil {
		return Credential{}, err
	}
	salt, err := randomBytes(16)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Key: key, KeySalt: salt, KeyHash: credentialHash(salt, key)}, nil
}

type VerifyRequest struct {
	SimulationID string
	OperatorKey  string
}

type VerifyUseCase struct {
	Credentials ports.OperatorCredentialRepository
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.SimulationID = strings.TrimSpace(req.SimulationID)
	req.OperatorKey = strings.TrimSpace(req.OperatorKey)
	if req.SimulationID == "" || req.OperatorKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetBySimulationID(ctx, req.SimulationID)
	if err != nil {
		if err == ports.ErrNotFound {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.OperatorKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
