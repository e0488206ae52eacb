package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// CategoryID identifies a purchasable service category.
type CategoryID string

const (
	CategoryAirtime     CategoryID = "airtime"
	CategoryData        CategoryID = "data"
	CategoryElectricity CategoryID = "electricity"
	CategoryCableTV     CategoryID = "cabletv"
	CategoryEducation   CategoryID = "education"
	CategoryBetting     CategoryID = "betting"
)

// RecipientKind is the kind of identifier a category expects as recipient.
type RecipientKind int8

const (
	RecipientPhoneNumber RecipientKind = iota
	RecipientMeterNumber
	RecipientSmartcardNumber
	RecipientStudentID
	RecipientAccountNumber
)

const maxStudentIDLength = 32

type digitBounds struct {
	min int
	max int
}

var numericShapes = map[RecipientKind]digitBounds{
	RecipientPhoneNumber:     {min: 10, max: 11},
	RecipientMeterNumber:     {min: 11, max: 13},
	RecipientSmartcardNumber: {min: 10, max: 12},
	RecipientAccountNumber:   {min: 6, max: 20},
}

func (k RecipientKind) String() string {
	switch k {
	case RecipientPhoneNumber:
		return "phone number"
	case RecipientMeterNumber:
		return "meter number"
	case RecipientSmartcardNumber:
		return "smartcard number"
	case RecipientStudentID:
		return "student id"
	case RecipientAccountNumber:
		return "account number"
	default:
		return "unknown"
	}
}

// Matches reports whether the already-trimmed recipient has the shape this kind expects.
// Numeric kinds must be digits only within their length bounds; student ids are free-form.
func (k RecipientKind) Matches(recipient string) bool {
	if k == RecipientStudentID {
		n := utf8.RuneCountInString(recipient)
		return n > 0 && n <= maxStudentIDLength
	}

	bounds, ok := numericShapes[k]
	if !ok {
		return false
	}
	if len(recipient) < bounds.min || len(recipient) > bounds.max {
		return false
	}
	return strings.IndexFunc(recipient, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

// Provider is a vendor within a single category.
type Provider struct {
	ID         string
	Name       string
	CategoryID CategoryID
	BrandColor string
	Logo       string
}

// ServiceCategory is a class of billable service and the rules that apply to it.
type ServiceCategory struct {
	ID            CategoryID
	Name          string
	MinAmount     decimal.Decimal
	MaxAmount     *decimal.Decimal // nil means unbounded above
	RecipientKind RecipientKind
	Providers     []Provider
}

// RequiresProvider reports whether a provider must be selected for this category.
func (c ServiceCategory) RequiresProvider() bool {
	return len(c.Providers) > 0
}

// Provider looks up one of the category's providers by id.
func (c ServiceCategory) Provider(id string) (Provider, bool) {
	for _, p := range c.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

func (c ServiceCategory) clone() ServiceCategory {
	out := c
	out.Providers = append([]Provider(nil), c.Providers...)
	if c.MaxAmount != nil {
		maxAmount := *c.MaxAmount
		out.MaxAmount = &maxAmount
	}
	return out
}
