package catalog

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Catalog is a read-only registry of service categories.
// It is safe for concurrent use; nothing mutates it after construction.
type Catalog struct {
	ordered []ServiceCategory
	byID    map[CategoryID]int
}

// New builds a catalog from the given categories, keeping their order.
// Provider CategoryIDs are set to their owning category.
func New(categories ...ServiceCategory) *Catalog {
	c := &Catalog{
		ordered: make([]ServiceCategory, 0, len(categories)),
		byID:    make(map[CategoryID]int, len(categories)),
	}
	for _, category := range categories {
		category = category.clone()
		for i := range category.Providers {
			category.Providers[i].CategoryID = category.ID
		}
		c.byID[category.ID] = len(c.ordered)
		c.ordered = append(c.ordered, category)
	}
	return c
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []ServiceCategory {
	out := make([]ServiceCategory, len(c.ordered))
	for i, category := range c.ordered {
		out[i] = category.clone()
	}
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id CategoryID) (ServiceCategory, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return ServiceCategory{}, false
	}
	return c.ordered[idx].clone(), true
}

// ProvidersFor returns the providers of a category in display order.
// Categories without providers, and unknown ids, yield an empty slice.
func (c *Catalog) ProvidersFor(id CategoryID) []Provider {
	idx, ok := c.byID[id]
	if !ok {
		return []Provider{}
	}
	return append([]Provider{}, c.ordered[idx].Providers...)
}

// Provider looks up a provider within a category.
func (c *Catalog) Provider(categoryID CategoryID, providerID string) (Provider, bool) {
	idx, ok := c.byID[categoryID]
	if !ok {
		return Provider{}, false
	}
	return c.ordered[idx].Provider(providerID)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog of the app's bill-payment services.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(defaultCategories()...)
	})
	return defaultCatalog
}

func naira(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func nairaPtr(v int64) *decimal.Decimal {
	d := naira(v)
	return &d
}

func defaultCategories() []ServiceCategory {
	telcos := []Provider{
		{ID: "mtn", Name: "MTN", BrandColor: "#FFCC00", Logo: "mtn.png"},
		{ID: "airtel", Name: "Airtel", BrandColor: "#ED1C24", Logo: "airtel.png"},
		{ID: "glo", Name: "Glo", BrandColor: "#50B848", Logo: "glo.png"},
		{ID: "9mobile", Name: "9mobile", BrandColor: "#006E53", Logo: "9mobile.png"},
	}

	return []ServiceCategory{
		{
			ID:            CategoryAirtime,
			Name:          "Airtime",
			MinAmount:     naira(50),
			MaxAmount:     nairaPtr(50_000),
			RecipientKind: RecipientPhoneNumber,
			Providers:     telcos,
		},
		{
			ID:            CategoryData,
			Name:          "Data",
			MinAmount:     naira(100),
			MaxAmount:     nairaPtr(100_000),
			RecipientKind: RecipientPhoneNumber,
			Providers:     telcos,
		},
		{
			ID:            CategoryElectricity,
			Name:          "Electricity",
			MinAmount:     naira(1_000),
			MaxAmount:     nairaPtr(500_000),
			RecipientKind: RecipientMeterNumber,
			Providers: []Provider{
				{ID: "ikedc", Name: "Ikeja Electric", BrandColor: "#E30613", Logo: "ikedc.png"},
				{ID: "ekedc", Name: "Eko Electricity", BrandColor: "#0054A6", Logo: "ekedc.png"},
				{ID: "aedc", Name: "Abuja Electricity", BrandColor: "#00A651", Logo: "aedc.png"},
				{ID: "phed", Name: "Port Harcourt Electricity", BrandColor: "#F7941D", Logo: "phed.png"},
				{ID: "ibedc", Name: "Ibadan Electricity", BrandColor: "#2E3192", Logo: "ibedc.png"},
			},
		},
		{
			ID:            CategoryCableTV,
			Name:          "Cable TV",
			MinAmount:     naira(1_000),
			RecipientKind: RecipientSmartcardNumber,
			Providers: []Provider{
				{ID: "dstv", Name: "DStv", BrandColor: "#0A9FE3", Logo: "dstv.png"},
				{ID: "gotv", Name: "GOtv", BrandColor: "#8DC63F", Logo: "gotv.png"},
				{ID: "startimes", Name: "StarTimes", BrandColor: "#F58220", Logo: "startimes.png"},
			},
		},
		{
			ID:            CategoryEducation,
			Name:          "Education",
			MinAmount:     naira(1_000),
			RecipientKind: RecipientStudentID,
			Providers: []Provider{
				{ID: "waec", Name: "WAEC", BrandColor: "#1B5E20", Logo: "waec.png"},
				{ID: "neco", Name: "NECO", BrandColor: "#0D47A1", Logo: "neco.png"},
				{ID: "jamb", Name: "JAMB", BrandColor: "#2E7D32", Logo: "jamb.png"},
			},
		},
		{
			ID:            CategoryBetting,
			Name:          "Betting",
			MinAmount:     naira(100),
			MaxAmount:     nairaPtr(500_000),
			RecipientKind: RecipientAccountNumber,
			Providers: []Provider{
				{ID: "bet9ja", Name: "Bet9ja", BrandColor: "#01813F", Logo: "bet9ja.png"},
				{ID: "sportybet", Name: "SportyBet", BrandColor: "#E41827", Logo: "sportybet.png"},
				{ID: "betking", Name: "BetKing", BrandColor: "#1A1446", Logo: "betking.png"},
				{ID: "nairabet", Name: "NairaBet", BrandColor: "#ED1C24", Logo: "nairabet.png"},
			},
		},
	}
}
