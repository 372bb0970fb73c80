package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type ProductEvent struct {
	DraftID    string `json:"draft_id"`
	SessionID  string `json:"session_id"`
	AdminID    string `json:"admin_id"`
	Mode       string `json:"mode"`
	ProductID  string `json:"product_id,omitempty"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	OccurredAt int64  `json:"occurred_at"`
}
