// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ErrInvalidVersionTag is returned by ParseVersionTag for malformed tags.
var ErrInvalidVersionTag = errors.New("invalid version tag")

// VersionTag returns the opaque document version "<revision>-<digest>", where
// digest is the hex BLAKE2b-128 of content.
func VersionTag(revision int64, content []byte) string {
	h, _ := blake2b.New(16, nil) // only fails for bad sizes or keys
	h.Write(content)
	return strconv.FormatInt(revision, 10) + "-" + hex.EncodeToString(h.Sum(nil))
}

// ParseVersionTag returns the revision encoded in tag.
func ParseVersionTag(tag string) (int64, error) {
	rev, digest, ok := strings.Cut(tag, "-")
	if !ok || len(digest) != 32 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersionTag, tag)
	}

	revision, err := strconv.ParseInt(rev, 10, 64)
	if err != nil || revision < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersionTag, tag)
	}

	return revision, nil
}
