package model

type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Status   UserStatus `json:"status"`
	Role     Role       `json:"role"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
