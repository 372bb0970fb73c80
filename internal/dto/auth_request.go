package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupBusinessRequest struct {
	Name            string `json:"name"`
	BusinessName    string `json:"business_name"`
	GSTNumber       string `json:"gst_number"`
	BusinessType    string `json:"business_type"`
	BusinessAddress string `json:"business_address"`
}

type SignupContactRequest struct {
	Mobile          string `json:"mobile"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type SignupVerifyRequest struct {
	OTP string `json:"otp"`
}
