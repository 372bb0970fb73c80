package dto

type DraftFieldsRequest struct {
	Name         *string `json:"name"`
	Price        *string `json:"price"`
	SellingPrice *string `json:"selling_price"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Quantity     *string `json:"quantity"`
	ReturnPolicy *string `json:"return_policy"`
}

type SpecificationRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type HighlightRequest struct {
	Highlight string `json:"highlight"`
}

type CustomOptionRequest struct {
	Name   string `json:"name"`
	Values string `json:"values"`
}
