package dto

type CreateMappingRequest struct {
	Category       string `json:"category" binding:"required,max=50"`
	AuthorityEmail string `json:"authority_email" binding:"required,email"`
}

type ProvisionUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=citizen admin superadmin"`
}

type UpdateProfileRequest struct {
	Name  string  `json:"name" binding:"required,min=2,max=50"`
	Phone *string `json:"phone" binding:"omitempty,numeric,min=9,max=14"`
}
