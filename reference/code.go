// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package reference

import (
	"bytes"
	"strings"

	base58 "github.com/jbenet/go-base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// CodeSize is the byte length of a code digest.
const CodeSize = 32

// SchemePrefix marks the text form of a code digest.
const SchemePrefix = "code:"

// Code is a content-addressed handle of a code artifact. A set of such
// handles identifies which artifacts must be present for a logic class
// identifier to be resolvable in a given trust domain.
type Code [CodeSize]byte

// CodeOf digests a code artifact.
func CodeOf(artifact []byte) (result Code) {
	return sha3.Sum256(artifact)
}

// BytesToCode copies a raw digest value. Panics on wrong length, since a
// truncated digest is a programming error, not an operational failure.
func BytesToCode(b []byte) (result Code) {
	if len(b) != CodeSize {
		panic("illegal value: invalid code digest length")
	}
	copy(result[:], b)
	return
}

// CodeFromString parses the text form produced by String.
func CodeFromString(input string) (Code, error) {
	if !strings.HasPrefix(input, SchemePrefix) {
		return Code{}, errors.Errorf("invalid code digest %q: missing %q prefix", input, SchemePrefix)
	}
	decoded := base58.Decode(input[len(SchemePrefix):])
	if len(decoded) != CodeSize {
		return Code{}, errors.Errorf("invalid code digest %q: wrong length %d", input, len(decoded))
	}
	return BytesToCode(decoded), nil
}

func (v Code) IsZero() bool {
	return v == Code{}
}

func (v Code) NotEmpty() bool {
	return !v.IsZero()
}

func (v Code) AsBytes() []byte {
	rv := make([]byte, CodeSize)
	copy(rv, v[:])
	return rv
}

func (v Code) String() string {
	return SchemePrefix + base58.Encode(v[:])
}

func (v Code) Equal(other Code) bool {
	return v == other
}

func (v Code) Compare(other Code) int {
	return bytes.Compare(v[:], other[:])
}

// MarshalBinary makes digests survive the CBOR wire form.
func (v Code) MarshalBinary() ([]byte, error) {
	return v.AsBytes(), nil
}

func (v *Code) UnmarshalBinary(data []byte) error {
	if len(data) != CodeSize {
		return errors.Errorf("invalid code digest length: %d", len(data))
	}
	copy(v[:], data)
	return nil
}

// MarshalText makes digests survive JSON-encoded references.
func (v Code) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Code) UnmarshalText(text []byte) error {
	decoded, err := CodeFromString(string(text))
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
