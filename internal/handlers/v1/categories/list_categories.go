package categories

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Categories in display order"`
	}
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	Catalog catalogReader
}

func NewListCategoriesHandler(c catalogReader) *ListCategoriesHandler {
	return &ListCategoriesHandler{Catalog: c}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List service categories",
		Description: "Lists purchasable categories with their amount bounds and providers.",
		Tags:        []string{"Catalog"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories := h.Catalog.Categories()

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = toCategory(c)
	}
	return out, nil
}
