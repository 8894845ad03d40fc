// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
)

const hashHeader = "HashSHA256"

// limitBody caps the request body at the configured size. Reads past the
// limit fail with [http.MaxBytesError].
func (h *Handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > h.maxBodySize {
			writeError(w, logger.FromRequest(r), ErrBodyTooLarge, "request body rejected")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		next.ServeHTTP(w, r)
	})
}

// checkHash verifies the HashSHA256 header against the raw body when a hash
// key is configured. Requests without the header pass unchecked.
func (h *Handler) checkHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := r.Header.Get(hashHeader)
		if h.hasher == nil || expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, log, bodyReadError(err), "failed to read request body")
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, expected) {
			writeError(w, log, ErrIntegrityCheck, "hashes are not equal")
			return
		}

		log.Debug().Msg("body hash verified")
		next.ServeHTTP(w, r)
	})
}

func bodyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrBodyTooLarge
	}
	return errors.Join(ErrInvalidJSON, err)
}
