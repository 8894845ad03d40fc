// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/go-chi/chi/v5"
)

const (
	ifMatchHeader     = "If-Match"
	ifNoneMatchHeader = "If-None-Match"
	etagHeader        = "ETag"
)

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	owner, path, err := documentTarget(r)
	if err != nil {
		writeError(w, log, err, "bad document request")
		return
	}

	doc, err := h.services.DocumentService.Get(r.Context(), owner, path)
	if err != nil {
		writeError(w, log, err, "error getting document")
		return
	}

	w.Header().Set(etagHeader, quoteETag(doc.Version))
	if _, err = utils.WriteJSON(w, doc, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing document")
	}
}

// putDocument writes a document. A create carries If-None-Match: *, an update
// carries If-Match with the version being replaced. 201 answers a create.
func (h *Handler) putDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	owner, path, err := documentTarget(r)
	if err != nil {
		writeError(w, log, err, "bad document request")
		return
	}

	ifMatch, create, err := writeCondition(r.Header)
	if err != nil {
		writeError(w, log, err, "bad write condition")
		return
	}

	var req models.PutDocumentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, bodyReadError(err), "invalid document body")
		return
	}

	doc, err := h.services.DocumentService.Put(r.Context(), owner, path, req.Content, ifMatch, create)
	if err != nil {
		writeError(w, log, err, "error writing document")
		return
	}

	status := http.StatusOK
	if create {
		status = http.StatusCreated
	}

	log.Debug().Str("path", doc.Path).Str("version", doc.Version).Bool("created", create).Msg("document written")

	w.Header().Set(etagHeader, quoteETag(doc.Version))
	resp := models.PutDocumentResponse{Path: doc.Path, Version: doc.Version, Created: create}
	if _, err = utils.WriteJSON(w, resp, status); err != nil {
		log.Err(err).Msg("error writing put response")
	}
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	owner, ok := utils.GetOwnerFromContext(r.Context())
	if !ok {
		writeError(w, log, ErrMissingOwner, "bad list request")
		return
	}

	infos, err := h.services.DocumentService.List(r.Context(), owner, r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, log, err, "error listing documents")
		return
	}
	if infos == nil {
		infos = []models.DocumentInfo{}
	}

	resp := models.DocumentListResponse{Documents: infos, Length: len(infos)}
	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing document list")
	}
}

// documentTarget returns the owner set by auth and the unescaped wildcard
// path. chi routes on RawPath when present, so the param is escaped then.
func documentTarget(r *http.Request) (owner, path string, err error) {
	owner, ok := utils.GetOwnerFromContext(r.Context())
	if !ok {
		return "", "", ErrMissingOwner
	}

	path = chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		if path, err = url.PathUnescape(path); err != nil {
			return "", "", errors.Join(ErrInvalidDocumentPath, err)
		}
	}

	return owner, path, nil
}

func writeCondition(header http.Header) (ifMatch string, create bool, err error) {
	ifMatch = unquoteETag(header.Get(ifMatchHeader))
	ifNoneMatch := strings.TrimSpace(header.Get(ifNoneMatchHeader))

	switch {
	case ifMatch != "" && ifNoneMatch != "":
		return "", false, ErrAmbiguousCondition
	case ifNoneMatch == "":
		return ifMatch, false, nil
	case ifNoneMatch == "*":
		return "", true, nil
	default:
		return "", false, ErrUnsupportedCondition
	}
}

func quoteETag(version string) string {
	return `"` + version + `"`
}

// unquoteETag accepts both a bare version tag and a quoted entity tag.
func unquoteETag(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "W/")
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		raw = raw[1 : len(raw)-1]
	}
	return raw
}
