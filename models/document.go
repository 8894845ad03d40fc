// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Document is one named resource held by the document store: opaque content
// bytes plus the version tag required for conditional replacement.
type Document struct {
	// Owner is the token subject the document belongs to. It never leaves the
	// server; documents are addressed by Path inside the owner's namespace.
	Owner string `json:"-"`

	// Path is the logical location of the document (folder + file name).
	Path string `json:"path"`

	// Content is the stored document body. Encoded as base64 in JSON.
	Content []byte `json:"content"`

	// Version is the opaque version tag of the current revision.
	Version string `json:"version"`

	// Revision is a monotonically increasing counter, bumped by every write.
	Revision int64 `json:"revision"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// DocumentInfo is a content-less descriptor returned by listings.
type DocumentInfo struct {
	Path      string     `json:"path"`
	Version   string     `json:"version"`
	Size      int64      `json:"size"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PutDocumentRequest is the body of a document write. The expected version
// travels in the If-Match header and the body digest in HashSHA256.
type PutDocumentRequest struct {
	Content []byte `json:"content"`
}

// PutDocumentResponse is returned after a successful write.
type PutDocumentResponse struct {
	Path    string `json:"path"`
	Version string `json:"version"`
	Created bool   `json:"created"`
}

// DocumentListResponse is returned by the listing endpoint.
type DocumentListResponse struct {
	Documents []DocumentInfo `json:"documents"`
	Length    int            `json:"length"`
}
