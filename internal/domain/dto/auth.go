package dto

// LoginRequest is the admin login body.
//
// @Description Admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"change-me-please"`
} // @name LoginRequest

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string       `json:"token_type" example:"Bearer"`
	ExpiresIn int64        `json:"expires_in" example:"3600"`
	User      UserResponse `json:"user"`
} // @name LoginResponse

// Claims are the authenticated identity extracted from an access token.
type Claims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
}

// UserResponse is the public view of an admin user.
type UserResponse struct {
	ID    string   `json:"id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Email string   `json:"email" example:"admin@example.com"`
	Name  string   `json:"name,omitempty" example:"Catalog Admin"`
	Roles []string `json:"roles" example:"admin"`
} // @name UserResponse
