package dto

import "github.com/SscSPs/finance_tracker_app/internal/core/domain"

// UserResponse is the public profile of a user. It never carries the password hash.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
	}
}
