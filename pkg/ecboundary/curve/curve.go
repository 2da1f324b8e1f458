package curve

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCurve is returned when a tag byte or a set of group
// invariants does not identify any supported group.
var ErrUnsupportedCurve = errors.New("unsupported curve")

// Tag identifies a supported curve group on the wire. The zero value is never
// a valid tag.
type Tag uint8

// Supported tags. The byte values are part of the wire contract and must not
// be renumbered.
const (
	Pallas     Tag = 1
	EdBLS12377 Tag = 2
	BLS12377G1 Tag = 3
	BLS12377G2 Tag = 4
	Secp256k1  Tag = 5
	Ed25519    Tag = 6
)

// ParseTag converts a wire byte into a Tag.
func ParseTag(b byte) (Tag, error) {
	t := Tag(b)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: tag %d", ErrUnsupportedCurve, b)
	}
	return t, nil
}

// Valid reports whether t is one of the supported tags.
func (t Tag) Valid() bool {
	return t >= Pallas && t <= Ed25519
}

// String returns a human-readable name for the tag.
func (t Tag) String() string {
	switch t {
	case Pallas:
		return "pallas"
	case EdBLS12377:
		return "ed-bls12-377"
	case BLS12377G1:
		return "bls12-377-g1"
	case BLS12377G2:
		return "bls12-377-g2"
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// TagByName is the inverse of Tag.String. Names are matched exactly.
func TagByName(name string) (Tag, error) {
	for _, t := range Tags() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
}

// Tags lists the supported tags in resolution priority order.
func Tags() []Tag {
	return []Tag{Pallas, EdBLS12377, BLS12377G1, BLS12377G2, Secp256k1, Ed25519}
}
