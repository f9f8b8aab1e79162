package order

import (
	"crypto/rand"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

const (
	// NumberLength is the length of an order number.
	NumberLength = 10

	// numberAlphabet is Crockford's base32 alphabet: no I, L, O or U, so numbers
	// survive being read out over the phone.
	numberAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ErrNumberIsNotConstructed is returned for a zero-value Number.
var ErrNumberIsNotConstructed = errs.NewValueIsRequiredError("order number must be created via NewNumber or NumberFromString")

// Number is the short, human-shareable identifier of an order, e.g. "7KQ2M9XA1B".
type Number struct {
	value string
}

// NewNumber draws a random number. 32^10 values make collisions rare; the
// repository still enforces uniqueness and the create handler retries.
func NewNumber() (Number, error) {
	buf := make([]byte, NumberLength)
	if _, err := rand.Read(buf); err != nil {
		return Number{}, fmt.Errorf("generate order number: %w", err)
	}
	out := make([]byte, NumberLength)
	for i, b := range buf {
		out[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return Number{value: string(out)}, nil
}

// NumberFromString parses a number typed by a human: case and surrounding
// whitespace are ignored.
func NumberFromString(s string) (Number, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return Number{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(v) != NumberLength {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber", fmt.Errorf("%q must be %d characters", s, NumberLength))
	}
	for _, r := range v {
		if !strings.ContainsRune(numberAlphabet, r) {
			return Number{}, errs.NewValueIsInvalidErrorWithCause(
				"orderNumber", fmt.Errorf("%q contains %q", s, r))
		}
	}
	return Number{value: v}, nil
}

func (n Number) String() string {
	return n.value
}

func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}

func (n Number) Validate() error {
	if n.value == "" {
		return ErrNumberIsNotConstructed
	}
	return nil
}
