package response

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	MemberID     string `json:"member_id"`
	MemberType   string `json:"member_type"`
	Role         string `json:"role"`
}

type RegisterResponse struct {
	MemberID   uuid.UUID `json:"member_id"`
	MemberType string    `json:"member_type"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeResponse struct {
	Member *queries.AuthorizedMemberView `json:"member"`
}
