package dto

import "github.com/hainweb/merchant-console/internal/session"

type SessionResponse struct {
	Token   string       `json:"token,omitempty"`
	Session session.View `json:"session"`
}
