// Package did holds the pure rules for ledger identifiers: qualification
// prefixes and the self-certification check.
//
// Nothing here performs I/O. A self-certified DID can be trusted from its
// verification key alone, which is why resolution prefers it over any
// ledger-ordering rule.
package did

import (
	"regexp"
	"strings"

	"github.com/mr-tron/base58/base58"
)

const (
	// selfCertifiedIDBytes is the prefix length of the verkey that forms the
	// identifier of a self-certified DID.
	selfCertifiedIDBytes = 16

	fullVerkeyBytes = 32
)

var (
	fullVerkeyPattern        = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{43,44}$`)
	abbreviatedVerkeyPattern = regexp.MustCompile(`^~[1-9A-HJ-NP-Za-km-z]{21,22}$`)
)

// Unqualified strips a method prefix such as "did:sov:" or "did:indy:<ns>:"
// and returns the bare identifier. Bare identifiers are returned unchanged.
func Unqualified(d string) string {
	if !strings.HasPrefix(d, "did:") {
		return d
	}
	return d[strings.LastIndex(d, ":")+1:]
}

// IsFullVerkey reports whether verkey is a base58 encoded 32 byte key.
func IsFullVerkey(verkey string) bool {
	return fullVerkeyPattern.MatchString(verkey)
}

// IsAbbreviatedVerkey reports whether verkey uses the "~" short form, where
// the full key is the identifier followed by the abbreviated part.
func IsAbbreviatedVerkey(verkey string) bool {
	return abbreviatedVerkeyPattern.MatchString(verkey)
}

// FromVerkey derives the identifier a self-certified DID would carry for the
// given full verkey.
func FromVerkey(verkey string) (string, bool) {
	if !IsFullVerkey(verkey) {
		return "", false
	}
	raw, err := base58.Decode(verkey)
	if err != nil || len(raw) != fullVerkeyBytes {
		return "", false
	}
	return base58.Encode(raw[:selfCertifiedIDBytes]), true
}

// IsSelfCertified reports whether d is derivable from verkey. Abbreviated
// verkeys are self-certifying by construction.
func IsSelfCertified(d, verkey string) bool {
	if IsAbbreviatedVerkey(verkey) {
		return true
	}
	derived, ok := FromVerkey(verkey)
	if !ok {
		return false
	}
	return derived == Unqualified(d)
}
