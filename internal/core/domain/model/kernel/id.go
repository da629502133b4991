package kernel

import (
	"fmt"
	"strings"

	"bondi/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromString")

// MaxIDLength bounds identifiers so they fit every storage key scheme.
const MaxIDLength = 200

// ID is the identifier value object of aggregates in this module. It wraps a
// non-empty string; freshly minted identifiers are random UUIDs.
//
// The zero value is invalid and fails Validate.
type ID struct {
	value string
}

// NewID mints a new random identifier.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// IDFromString accepts any non-blank string up to MaxIDLength characters,
// so identifiers such as "order-1" are valid alongside UUIDs.
func IDFromString(s string) (ID, error) {
	if strings.TrimSpace(s) == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	if len(s) > MaxIDLength {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("length %d exceeds %d", len(s), MaxIDLength))
	}
	return ID{value: s}, nil
}

// MustIDFromString is IDFromString for literals known to be valid.
func MustIDFromString(s string) ID {
	id, err := IDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate reports whether the identifier was built by a constructor.
func (id ID) Validate() error {
	if id.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
