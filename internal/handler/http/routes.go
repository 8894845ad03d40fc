// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version/", h.getServerVersion)

	// routes scoped to the token owner
	router.Route("/api/documents", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listDocuments)
		r.Get("/*", h.getDocument)
		r.With(h.limitBody, h.checkHash).Put("/*", h.putDocument)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
