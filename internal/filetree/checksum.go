// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filetree

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unsupported names.
var ErrUnknownAlgorithm = errors.New("filetree: unknown checksum algorithm")

// Algorithm names a checksum used to tell file contents apart.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA1    Algorithm = "sha1"
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
)

// Algorithms lists the supported checksums, default first.
var Algorithms = []Algorithm{MD5, SHA1, SHA256, BLAKE2b}

// ParseAlgorithm maps a name such as "SHA-256" or "sha256" to an Algorithm.
// The empty string selects MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	if n == "" {
		return MD5, nil
	}
	for _, a := range Algorithms {
		if string(a) == n {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// New returns a fresh hash for the algorithm. The zero Algorithm is MD5.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case MD5, "":
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		// Only fails for an oversized key.
		return blake2b.New256(nil)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
