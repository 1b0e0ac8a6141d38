// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used to authenticate hosts against the control API.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for claim access. Subject identifies the calling host (for example the
// mobile shell instance).
type Token struct {
	// Token is the underlying JWT token. Excluded from JSON serialization
	// because only the compact string form is meaningful outside the process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
