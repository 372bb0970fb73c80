package domain

type Order struct {
	ID            string      `json:"_id"`
	ProductName   string      `json:"productName"`
	Quantity      FlexString  `json:"quantity"`
	Total         FlexString  `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	Date          string      `json:"date"`
	Address       interface{} `json:"deliveryDetails,omitempty"`
}
