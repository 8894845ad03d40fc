// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/internal/validators"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is ordered: service errors wrap validator causes, so the more
// specific entries come first.
var errorStatuses = []errorStatus{
	{validators.ErrContentTooLarge, http.StatusRequestEntityTooLarge},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidDocumentPath, http.StatusBadRequest},
	{ErrAmbiguousCondition, http.StatusBadRequest},
	{ErrUnsupportedCondition, http.StatusBadRequest},
	{ErrIntegrityCheck, http.StatusBadRequest},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrMissingOwner, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrEmptyToken, http.StatusUnauthorized},

	{service.ErrDocumentNotFound, http.StatusNotFound},
	{service.ErrVersionConflict, http.StatusConflict},
	{service.ErrPreconditionNeeded, http.StatusPreconditionRequired},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status and writes it as {"error": ...}. Server side
// failures are answered with the generic status text only.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Debug().Err(err).Int("status", status).Msg(msg)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	utils.WriteError(w, message, status)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
