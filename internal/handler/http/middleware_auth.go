// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// The token is checked by [service.AuthService.ParseToken]; its subject becomes
// the document owner stored in the request context via [utils.WithOwner].
// Every rejection is answered with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, log, ErrEmptyAuthorizationHeader, "unauthenticated request")
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, log, err, "malformed authorization header")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, log, err, "error occurred during parsing token")
			return
		}

		owner, err := ownerFromToken(token)
		if err != nil {
			writeError(w, log, err, "token carries no owner")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithOwner(ctx, owner)))
	})
}

func ownerFromToken(token models.Token) (string, error) {
	if token.Owner != "" {
		return token.Owner, nil
	}
	owner, err := token.GetOwner()
	if err != nil {
		return "", ErrMissingOwner
	}
	return owner, nil
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>". The scheme
// is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, tokenString, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
