package keys

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/logger"
)

const gcmNonceSize = 16

// Provider derives each user's deterministic signing key from its encrypted
// database record. A key is generated lazily on first use, encrypted with
// AES-256-GCM under SHA-256(master secret), and never rotated implicitly.
// The plaintext form lives only in the scope of the request that decrypted
// it.
type Provider struct {
	queries db.Querier
	aead    cipher.AEAD
	logger  *zap.Logger
}

// NewProvider creates a key material provider. The master secret is hashed
// to a 32-byte AES key, so any non-empty secret works.
func NewProvider(queries db.Querier, masterSecret string) (*Provider, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("key encryption secret is required")
	}

	key := sha256.Sum256([]byte(masterSecret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, gcmNonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Provider{
		queries: queries,
		aead:    aead,
		logger:  logger.Log,
	}, nil
}

// GetOrCreateSigningKey returns the user's signing key, generating and
// persisting an encrypted one when the user has none yet. Exactly one key
// exists per user.
func (p *Provider) GetOrCreateSigningKey(ctx context.Context, email string) (*ecdsa.PrivateKey, error) {
	user, err := p.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return p.createUserWithKey(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.EncryptedPrivateKey.Valid || user.EncryptedPrivateKey.String == "" {
		return p.attachKeyToUser(ctx, email)
	}

	keyBytes, err := p.decrypt(user.EncryptedPrivateKey.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
	}

	key, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("stored signing key is not a valid secp256k1 key: %w", err)
	}
	return key, nil
}

func (p *Provider) createUserWithKey(ctx context.Context, email string) (*ecdsa.PrivateKey, error) {
	key, encrypted, err := p.generateEncryptedKey()
	if err != nil {
		return nil, err
	}

	if _, err := p.queries.CreateUser(ctx, db.CreateUserParams{
		Email:               email,
		EncryptedPrivateKey: pgtype.Text{String: encrypted, Valid: true},
	}); err != nil {
		return nil, fmt.Errorf("failed to create user key record: %w", err)
	}

	p.logger.Info("Generated signing key for new user", zap.String("email", email))
	return key, nil
}

func (p *Provider) attachKeyToUser(ctx context.Context, email string) (*ecdsa.PrivateKey, error) {
	key, encrypted, err := p.generateEncryptedKey()
	if err != nil {
		return nil, err
	}

	if _, err := p.queries.UpdateUserEncryptedKey(ctx, db.UpdateUserEncryptedKeyParams{
		Email:               email,
		EncryptedPrivateKey: pgtype.Text{String: encrypted, Valid: true},
	}); err != nil {
		return nil, fmt.Errorf("failed to store user key record: %w", err)
	}

	p.logger.Info("Generated signing key for existing user", zap.String("email", email))
	return key, nil
}

func (p *Provider) generateEncryptedKey() (*ecdsa.PrivateKey, string, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate signing key: %w", err)
	}

	encrypted, err := p.encrypt(ethcrypto.FromECDSA(key))
	if err != nil {
		return nil, "", fmt.Errorf("failed to encrypt signing key: %w", err)
	}
	return key, encrypted, nil
}

// encrypt seals plaintext and packages it as base64(IV || TAG || CIPHERTEXT)
// with a random 16-byte IV.
func (p *Provider) encrypt(plaintext []byte) (string, error) {
	iv := make([]byte, gcmNonceSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	// Seal returns ciphertext||tag; the stored layout wants the tag first.
	sealed := p.aead.Seal(nil, iv, plaintext, nil)
	tagAt := len(sealed) - p.aead.Overhead()
	ciphertext, tag := sealed[:tagAt], sealed[tagAt:]

	packed := make([]byte, 0, len(iv)+len(tag)+len(ciphertext))
	packed = append(packed, iv...)
	packed = append(packed, tag...)
	packed = append(packed, ciphertext...)
	return base64.StdEncoding.EncodeToString(packed), nil
}

func (p *Provider) decrypt(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("stored key is not valid base64: %w", err)
	}
	if len(raw) < gcmNonceSize+p.aead.Overhead() {
		return nil, fmt.Errorf("stored key payload is truncated")
	}

	iv := raw[:gcmNonceSize]
	tag := raw[gcmNonceSize : gcmNonceSize+p.aead.Overhead()]
	ciphertext := raw[gcmNonceSize+p.aead.Overhead():]

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	return p.aead.Open(nil, iv, sealed, nil)
}
