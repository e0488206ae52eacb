package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
)

// Draft holds the raw, possibly empty, fields of a purchase form.
type Draft struct {
	CategoryID catalog.CategoryID
	ProviderID string
	Recipient  string
	Amount     string
}

// Reason identifies why a draft was rejected.
type Reason int8

const (
	ReasonNone Reason = iota
	MissingCategory
	MissingProvider
	MissingRecipient
	InvalidRecipientShape
	MissingAmount
	InvalidAmount
	AmountBelowMinimum
	AmountAboveMaximum
)

var reasonNames = map[Reason]string{
	ReasonNone:            "None",
	MissingCategory:       "MissingCategory",
	MissingProvider:       "MissingProvider",
	MissingRecipient:      "MissingRecipient",
	InvalidRecipientShape: "InvalidRecipientShape",
	MissingAmount:         "MissingAmount",
	InvalidAmount:         "InvalidAmount",
	AmountBelowMinimum:    "AmountBelowMinimum",
	AmountAboveMaximum:    "AmountAboveMaximum",
}

var reasonMessages = map[Reason]string{
	MissingCategory:       "Please select a service",
	MissingProvider:       "Please select a provider",
	MissingRecipient:      "Please enter the recipient",
	InvalidRecipientShape: "The recipient number is not valid",
	MissingAmount:         "Please enter an amount",
	InvalidAmount:         "Please enter a valid amount",
	AmountBelowMinimum:    "Amount is below the minimum for this service",
	AmountAboveMaximum:    "Amount is above the maximum for this service",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Message is the user-visible text shown next to the offending field.
func (r Reason) Message() string {
	return reasonMessages[r]
}

// ParseReason is the inverse of Reason.String.
func ParseReason(s string) (Reason, bool) {
	for r, name := range reasonNames {
		if name == s {
			return r, true
		}
	}
	return ReasonNone, false
}

// Outcome is the result of validating a draft.
type Outcome struct {
	Valid  bool
	Reason Reason
}

func valid() Outcome {
	return Outcome{Valid: true}
}

func invalid(reason Reason) Outcome {
	return Outcome{Reason: reason}
}

// Err returns nil for a valid outcome and a *ValidationError otherwise.
func (o Outcome) Err() error {
	if o.Valid {
		return nil
	}
	return &ValidationError{Reason: o.Reason}
}

// ValidationError reports a rejected draft.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason.String()
}

// ReasonOf extracts the validation reason from err, if it carries one.
func ReasonOf(err error) (Reason, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason, true
	}
	return ReasonNone, false
}

var (
	errAmountPrecision = errors.New("amount has more than two decimal places")
	errAmountFormat    = errors.New("amount is not a plain decimal number")
)

// Plain digits or digits grouped in thousands, with an optional fraction.
var rawAmountPattern = regexp.MustCompile(`^-?(\d+|\d{1,3}(,\d{3})+)(\.\d+)?$`)

// ParseAmount parses a user-entered amount. A leading naira sign, spaces and
// thousands separators are accepted; at most two decimal places are allowed.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₦")
	cleaned = strings.TrimSpace(cleaned)
	if !rawAmountPattern.MatchString(cleaned) {
		return decimal.Zero, errAmountFormat
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(cleaned, ",", ""))
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, errAmountPrecision
	}
	return amount, nil
}

// Validate checks a draft against the selected category. Checks run in a fixed
// order and the first failure wins. It has no side effects.
func Validate(draft Draft, category *catalog.ServiceCategory) Outcome {
	if category == nil {
		return invalid(MissingCategory)
	}

	if category.RequiresProvider() {
		if _, ok := category.Provider(strings.TrimSpace(draft.ProviderID)); !ok {
			return invalid(MissingProvider)
		}
	}

	recipient := strings.TrimSpace(draft.Recipient)
	if recipient == "" {
		return invalid(MissingRecipient)
	}
	if !category.RecipientKind.Matches(recipient) {
		return invalid(InvalidRecipientShape)
	}

	if strings.TrimSpace(draft.Amount) == "" {
		return invalid(MissingAmount)
	}
	amount, err := ParseAmount(draft.Amount)
	if err != nil {
		return invalid(InvalidAmount)
	}
	if amount.LessThan(category.MinAmount) {
		return invalid(AmountBelowMinimum)
	}
	if category.MaxAmount != nil && amount.GreaterThan(*category.MaxAmount) {
		return invalid(AmountAboveMaximum)
	}

	return valid()
}
