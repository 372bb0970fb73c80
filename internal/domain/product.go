package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

type ReturnPolicy string

const (
	ReturnNone      ReturnPolicy = "No Return"
	ReturnThreeDays ReturnPolicy = "3 Days"
	ReturnFiveDays  ReturnPolicy = "5 Days"
	ReturnSevenDays ReturnPolicy = "7 Days"
)

var ReturnPolicies = []ReturnPolicy{ReturnNone, ReturnThreeDays, ReturnFiveDays, ReturnSevenDays}

func (r ReturnPolicy) Valid() bool {
	for _, p := range ReturnPolicies {
		if r == p {
			return true
		}
	}
	return false
}

// ProductDraft holds the scalar product fields exactly as typed by the
// merchant. Numbers stay text until validation.
type ProductDraft struct {
	Name         string       `json:"name"`
	Price        string       `json:"price"`
	SellingPrice string       `json:"selling_price"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	Quantity     string       `json:"quantity"`
	ReturnPolicy ReturnPolicy `json:"return_policy"`
}

type SpecificationEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CustomOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ProductSnapshot is the product representation served by the merchant API
// for the edit flow. It is never mutated after load.
type ProductSnapshot struct {
	ID             string               `json:"_id"`
	Name           FlexString           `json:"Name"`
	Price          FlexString           `json:"Price"`
	SellingPrice   FlexString           `json:"SellingPrice"`
	Category       FlexString           `json:"Category"`
	Description    FlexString           `json:"Description"`
	Quantity       FlexString           `json:"Quantity"`
	Return         FlexString           `json:"Return"`
	Specifications []SpecificationEntry `json:"Specifications"`
	Highlights     []string             `json:"Highlights"`
	CustomOptions  []CustomOption       `json:"CustomOptions"`
	ThumbnailImage string               `json:"thumbnailImage"`
	Images         []string             `json:"images"`
}

func (p ProductSnapshot) Draft() ProductDraft {
	return ProductDraft{
		Name:         string(p.Name),
		Price:        string(p.Price),
		SellingPrice: string(p.SellingPrice),
		Category:     string(p.Category),
		Description:  string(p.Description),
		Quantity:     string(p.Quantity),
		ReturnPolicy: ReturnPolicy(p.Return),
	}
}

// ProductSummary is one row of the merchant's product listing.
type ProductSummary struct {
	ID             string     `json:"_id"`
	Name           FlexString `json:"Name"`
	Price          FlexString `json:"Price"`
	SellingPrice   FlexString `json:"SellingPrice"`
	Category       FlexString `json:"Category"`
	Quantity       FlexString `json:"Quantity"`
	ThumbnailImage string     `json:"thumbnailImage"`
}

// FlexString accepts both JSON strings and JSON numbers. The merchant API
// is not consistent about numeric fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(strings.TrimSpace(n.String()))
	return nil
}
