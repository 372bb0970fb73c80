package dto

import "github.com/hainweb/merchant-console/internal/productform"

type DraftResponse struct {
	Draft productform.View `json:"draft"`
	// Added is false when a collection entry was left staged because a
	// required part was blank.
	Added *bool `json:"added,omitempty"`
	// Rejection is the reason an image selection was refused.
	Rejection string `json:"rejection,omitempty"`
	Accepted  *int   `json:"accepted,omitempty"`
}
