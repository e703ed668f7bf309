package dto

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResultDTO 注册/登录成功后返回用户信息与 Token
type AuthResultDTO struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}
