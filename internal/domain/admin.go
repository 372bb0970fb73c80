package domain

type Admin struct {
	ID           string `json:"_id"`
	Name         string `json:"Name"`
	Email        string `json:"Email"`
	Mobile       string `json:"Mobile"`
	BusinessName string `json:"BusinessName"`
	IsIntroSeen  bool   `json:"isIntroSeen"`
}

// MerchantApplication is the signup payload forwarded to the merchant API
// once the OTP is verified.
type MerchantApplication struct {
	Name            string `json:"Name"`
	BusinessName    string `json:"BusinessName"`
	GSTNumber       string `json:"GSTNumber"`
	BusinessType    string `json:"BusinessType"`
	BusinessAddress string `json:"BusinessAddress"`
	Mobile          string `json:"Mobile"`
	Email           string `json:"Email"`
	Password        string `json:"Password"`
	ConfirmPassword string `json:"ConfirmPassword"`
}
