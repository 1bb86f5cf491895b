package auth

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse — пользователь и токен доступа для API
type SessionResponse struct {
	User  *AuthUser `json:"user"`
	Token string    `json:"token"`
}
