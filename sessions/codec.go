// Package sessions stores the signed-in researcher's credential in a signed,
// client-readable cookie value. Nothing is kept server side.
package sessions

import (
	"crypto/sha256"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "session"

	keyInfo = "nmdc-orcid-creditor session v1"
)

// Codec signs credentials into HS256 JWTs and verifies them on the way back.
type Codec struct {
	key     []byte
	maxAge  time.Duration
	nowFunc func() time.Time
}

type Option func(*Codec)

func WithNowFunc(now func() time.Time) Option {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec derives the signing key from secret. maxAge bounds the session,
// independent of the credential's own expiry.
func NewCodec(secret string, maxAge time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Wrap(err, "derive session key")
	}

	c := &Codec{
		key:     key,
		maxAge:  maxAge,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

func (c *Codec) Encode(cred identity.Credential) (string, error) {
	now := c.nowFunc()
	claims := jwt.MapClaims{
		"sub":          cred.OrcidID,
		"name":         cred.Name,
		"access_token": cred.AccessToken,
		"iat":          now.Unix(),
		"exp":          now.Add(c.maxAge).Unix(),
	}
	if cred.ExpiresAt != nil {
		claims["token_exp"] = cred.ExpiresAt.UnixMilli()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session")
	}
	return signed, nil
}

// Decode returns the credential from a cookie value. Expiry of the credential
// itself is left to identity.Validate.
func (c *Codec) Decode(value string) (*identity.Credential, error) {
	token, err := jwt.Parse(value, c.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("error extracting session claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("session has no subject")
	}
	name, _ := claims["name"].(string)
	accessToken, _ := claims["access_token"].(string)

	cred := &identity.Credential{
		OrcidID:     sub,
		Name:        name,
		AccessToken: accessToken,
	}
	if exp, ok := claims["token_exp"].(float64); ok {
		expiresAt := time.UnixMilli(int64(exp))
		cred.ExpiresAt = &expiresAt
	}
	return cred, nil
}

func (c *Codec) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.key, nil
}
