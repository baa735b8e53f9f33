package identity

import "github.com/golang-jwt/jwt/v5"

// Identity is the decoded caller attached to a request after verification.
type Identity struct {
	UID    string        `json:"uid"`
	Email  string        `json:"email"`
	Name   string        `json:"name,omitempty"`
	Claims jwt.MapClaims `json:"-"`
}

type publicKeyResponse struct {
	Key string `json:"key"`
}
