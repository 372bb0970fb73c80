package dto

import (
	"net/url"
	"strconv"
)

type Filter struct {
	Limit int    `query:"limit"`
	Page  int    `query:"page"`
	Q     string `query:"q"`
}

// Values renders the filter as query parameters, skipping zero values.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Q != "" {
		v.Set("q", f.Q)
	}
	return v
}
