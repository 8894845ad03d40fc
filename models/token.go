// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Owner is the document namespace extracted from the "sub" claim.
	Owner string `json:"-"`
}

// GetOwner returns the token's "sub" claim. An empty subject is an error.
func (t *Token) GetOwner() (string, error) {
	owner, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting owner from token: %w", err)
	}
	if owner == "" {
		return "", fmt.Errorf("error extracting owner from token: empty subject")
	}

	return owner, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
