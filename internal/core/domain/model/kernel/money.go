package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney, MoneyFromString or ZeroMoney")

	// ErrCurrencyIsNotConstructed is returned when a zero-value Currency is used.
	ErrCurrencyIsNotConstructed = errs.NewValueIsRequiredError("currency must be created via NewCurrency")

	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	// maxMoney is the first amount a numeric(14,2) column cannot hold.
	maxMoney = decimal.New(1, maxMoneyDigits)
)

const (
	// MaxMoneyScale is the number of decimal places an amount may carry.
	MaxMoneyScale = 2

	maxMoneyDigits = 12
)

// Money is an exact decimal amount. Prices arrive from clients as strings
// ("10", "4.99") and are summed without floating point drift.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// ZeroMoney is the starting point of an order total.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoney wraps a decimal amount. Negative amounts, amounts with more than two
// decimal places and amounts of 10^12 or more are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromString parses a decimal string such as "10" or "19.90".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return NewMoney(amount)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns m + other. Both operands must be constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	sum := m.amount.Add(other.amount)
	if sum.GreaterThanOrEqual(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", sum, 0, maxMoney)
	}
	return Money{amount: sum, guard: guard.NewConstructorGuard()}, nil
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount without trailing zeros ("35", "4.5").
func (m Money) String() string {
	return m.amount.String()
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	if !amount.Equal(amount.Truncate(MaxMoneyScale)) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount, MaxMoneyScale))
	}
	if amount.GreaterThanOrEqual(maxMoney) {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, maxMoney)
	}
	m.amount = amount
	return nil
}

// Currency is a three-letter upper-case code ("USD", "EUR").
// Lower-case input is normalised.
type Currency struct {
	code  string
	guard guard.ConstructorGuard
}

func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	if !currencyPattern.MatchString(normalized) {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three letter code", code))
	}
	return Currency{code: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (c Currency) Validate() error {
	return c.guard.Validate(ErrCurrencyIsNotConstructed)
}

func (c Currency) String() string {
	return c.code
}

func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}
