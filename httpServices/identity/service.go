package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Verifier validates bearer tokens issued by the identity service.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Client verifies RS256 tokens against the PEM public key published by the
// identity service. The key is cached for ttl.
type Client struct {
	httpClient   *resty.Client
	publicKeyURL string
	issuer       string
	audience     string
	ttl          time.Duration

	mu        sync.Mutex
	key       *rsa.PublicKey
	fetchedAt time.Time
	now       func() time.Time
}

func NewClient(publicKeyURL, issuer, audience string, ttl time.Duration) *Client {
	return &Client{
		httpClient:   resty.New().SetTimeout(10 * time.Second),
		publicKeyURL: publicKeyURL,
		issuer:       issuer,
		audience:     audience,
		ttl:          ttl,
		now:          time.Now,
	}
}

// FetchPublicKey downloads and parses the identity service's public key.
func (c *Client) FetchPublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	if c.publicKeyURL == "" {
		return nil, fmt.Errorf("identity public key url is not set")
	}

	var keyResponse publicKeyResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&keyResponse).
		Get(c.publicKeyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(keyResponse.Key))
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return key, nil
}

func (c *Client) publicKey(ctx context.Context) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.key, nil
	}
	key, err := c.FetchPublicKey(ctx)
	if err != nil {
		return nil, err
	}
	c.key = key
	c.fetchedAt = c.now()
	return key, nil
}

// Verify checks the token signature, expiry, issuer and audience, and
// returns the caller identity. The email claim is required.
func (c *Client) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	key, err := c.publicKey(ctx)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if c.audience != "" {
		opts = append(opts, jwt.WithAudience(c.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: email claim missing", ErrInvalidToken)
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		uid, _ = claims.GetSubject()
	}
	name, _ := claims["name"].(string)

	return &Identity{UID: uid, Email: email, Name: name, Claims: claims}, nil
}
