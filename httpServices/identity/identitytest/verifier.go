// Package identitytest provides a token verifier for tests.
package identitytest

import (
	"context"

	"parcel-delivery/httpServices/identity"
)

// Verifier accepts tokens of the form "token-<email>" for registered emails.
type Verifier struct {
	tokens map[string]*identity.Identity
}

func NewVerifier(emails ...string) *Verifier {
	v := &Verifier{tokens: map[string]*identity.Identity{}}
	for _, email := range emails {
		v.Add(email)
	}
	return v
}

// Add registers email and returns the bearer token that identifies it.
func (v *Verifier) Add(email string) string {
	token := Token(email)
	v.tokens[token] = &identity.Identity{UID: "uid-" + email, Email: email}
	return token
}

func (v *Verifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	id, ok := v.tokens[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return id, nil
}

func Token(email string) string {
	return "token-" + email
}

// Bearer returns the Authorization header value for email.
func Bearer(email string) string {
	return "Bearer " + Token(email)
}
