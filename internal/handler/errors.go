// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	errNoListenAddress = errors.New("neither http nor grpc listen address is set")
	errNilServices     = errors.New("services are nil")
)
