package request

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRequest is the flat union of every membership category's profile.
// Which optional fields are required depends on member_type and is enforced
// in the usecase layer.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	MemberType string `json:"member_type" binding:"required"`

	// student_membership
	Institution *string `json:"institution,omitempty"`
	StudentNo   *string `json:"student_no,omitempty"`

	// individual_membership
	Occupation *string `json:"occupation,omitempty"`

	// corporate_membership
	CompanyName *string `json:"company_name,omitempty"`
	CompanySize *int32  `json:"company_size,omitempty"`

	// trainer_membership
	Expertise *string `json:"expertise,omitempty"`
	Bio       *string `json:"bio,omitempty"`

	// board_membership
	Organization *string `json:"organization,omitempty"`
	Position     *string `json:"position,omitempty"`
}
