package dtos

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ApplicationCreateRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	JobTitle       string `json:"job_title" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

// ApplicationUpdateRequest uses pointers so absent fields are left untouched.
type ApplicationUpdateRequest struct {
	CompanyName    *string `json:"company_name"`
	JobTitle       *string `json:"job_title"`
	JobDescription *string `json:"job_description"`
	RecipientEmail *string `json:"recipient_email" binding:"omitempty,email"`
}

type SendSelectedRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}
