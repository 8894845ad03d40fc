// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.4.0", "2026-05-01", "9f1c2e")

	assert.True(t, info.Known())
	assert.Equal(t, "1.4.0", info.BuildVersion())
	assert.Equal(t, "1.4.0 (9f1c2e, 2026-05-01)", info.String())

	empty := NewAppBuildInfo("", "", "")
	assert.False(t, empty.Known())
	assert.Equal(t, "N/A", empty.BuildDate())
	assert.Equal(t, "N/A (N/A, N/A)", empty.String())

	assert.False(t, AppBuildInfo{}.Known())
}
