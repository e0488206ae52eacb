package categories

import (
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
)

type catalogReader interface {
	Categories() []catalog.ServiceCategory
	Category(id catalog.CategoryID) (catalog.ServiceCategory, bool)
	ProvidersFor(id catalog.CategoryID) []catalog.Provider
}

// Category is the API response model for a service category.
type Category struct {
	ID               string     `json:"id" doc:"Category id"`
	Name             string     `json:"name" doc:"Display name"`
	MinAmount        string     `json:"minAmount" doc:"Smallest allowed amount in naira"`
	MaxAmount        *string    `json:"maxAmount,omitempty" doc:"Largest allowed amount in naira, absent when unbounded"`
	RecipientKind    string     `json:"recipientKind" doc:"What the recipient field holds"`
	RequiresProvider bool       `json:"requiresProvider" doc:"Whether a provider must be selected"`
	Providers        []Provider `json:"providers" doc:"Providers in display order"`
}

// Provider is the API response model for a provider.
type Provider struct {
	ID         string `json:"id" doc:"Provider id"`
	Name       string `json:"name" doc:"Display name"`
	CategoryID string `json:"categoryID" doc:"Owning category"`
	BrandColor string `json:"brandColor,omitempty" doc:"Hex brand color"`
	Logo       string `json:"logo,omitempty" doc:"Logo asset name"`
}

func toCategory(c catalog.ServiceCategory) Category {
	out := Category{
		ID:               string(c.ID),
		Name:             c.Name,
		MinAmount:        c.MinAmount.String(),
		RecipientKind:    c.RecipientKind.String(),
		RequiresProvider: c.RequiresProvider(),
		Providers:        toProviders(c.Providers),
	}
	if c.MaxAmount != nil {
		maxAmount := c.MaxAmount.String()
		out.MaxAmount = &maxAmount
	}
	return out
}

func toProviders(providers []catalog.Provider) []Provider {
	out := make([]Provider, len(providers))
	for i, p := range providers {
		out[i] = Provider{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: string(p.CategoryID),
			BrandColor: p.BrandColor,
			Logo:       p.Logo,
		}
	}
	return out
}
