package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"valet/internal/pkg/errs"
)

// OrderNumberPrefix is the fixed prefix of every order identifier.
const OrderNumberPrefix = "ORD-"

// orderNumberSeqStart is the first value the number sequence may produce.
// Identifiers below it never existed and are rejected on parse.
const orderNumberSeqStart = 1000

// ErrOrderNumberIsNotConstructed indicates a zero-value OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber or ParseOrderNumber")

// OrderNumber is the human-readable sequential order identifier, e.g. "ORD-1024".
// Numbers are allocated from a database sequence at creation time and are
// strictly increasing in creation order. The zero value is invalid.
type OrderNumber struct {
	seq int64
}

// NewOrderNumber creates an OrderNumber from a raw sequence value.
func NewOrderNumber(seq int64) (OrderNumber, error) {
	if seq < orderNumberSeqStart {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("order number", seq, orderNumberSeqStart, int64(1)<<62)
	}
	return OrderNumber{seq: seq}, nil
}

// ParseOrderNumber parses the "ORD-####" string form.
func ParseOrderNumber(s string) (OrderNumber, error) {
	if !strings.HasPrefix(s, OrderNumberPrefix) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not start with %q", s, OrderNumberPrefix))
	}
	seq, err := strconv.ParseInt(strings.TrimPrefix(s, OrderNumberPrefix), 10, 64)
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number", err)
	}
	return NewOrderNumber(seq)
}

// String returns the "ORD-####" form.
func (n OrderNumber) String() string {
	return fmt.Sprintf("%s%d", OrderNumberPrefix, n.seq)
}

// Seq returns the raw sequence value, used by persistence adapters for ordering.
func (n OrderNumber) Seq() int64 {
	return n.seq
}

// IsEqual compares two order numbers.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.seq == other.seq
}

// Validate returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	if n.seq == 0 {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
