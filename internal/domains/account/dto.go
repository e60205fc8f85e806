package account

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// CreateAccountRequest - POST /auth/signup
type CreateAccountRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Nickname string  `json:"nickname" binding:"required"`
	Email    *string `json:"email,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
			validation.Match(usernamePattern).Error("username may contain letters, digits, '_', '.' and '-' only"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Nickname,
			validation.Required.Error("nickname is required"),
			validation.Length(2, 50),
		),
		validation.Field(&r.Email,
			is.Email.Error("invalid email format"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangeNicknameRequest - PUT /users/:id/nickname
type ChangeNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

func (r ChangeNicknameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nickname,
			validation.Required.Error("nickname is required"),
			validation.Length(2, 50),
		),
	)
}

// ChangePasswordRequest - PUT /users/:id/password
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// ChangeEmailRequest - PUT /users/:id/email
// A null or absent email clears the field.
type ChangeEmailRequest struct {
	Email *string `json:"email"`
}

func (r ChangeEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.Email.Error("invalid email format")),
	)
}

// GrantRoleRequest - PUT /users/:id/role (admin only)
type GrantRoleRequest struct {
	Role string `json:"role"`
}

func (r GrantRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(RoleAdmin, RoleUser).Error("unknown role"),
		),
	)
}

// AccountResponse is the outward representation of an account. It carries no
// credential material.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse strips credential material from the domain entity.
func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Nickname:  a.Nickname,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// LoginResponse - JWT handed back by the transport layer after Login.
type LoginResponse struct {
	AccountID   int64     `json:"account_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
