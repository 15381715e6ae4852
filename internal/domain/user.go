package domain

import "time"

type User struct {
	UserID        string     `json:"id" dynamodbav:"user_id"`
	Email         string     `json:"email" dynamodbav:"email"`
	Username      string     `json:"username" dynamodbav:"username"`
	DisplayName   string     `json:"display_name" dynamodbav:"display_name"`
	Phone         *string    `json:"phone,omitempty" dynamodbav:"phone"`
	Avatar        *string    `json:"avatar,omitempty" dynamodbav:"avatar"`
	PasswordHash  string     `json:"-" dynamodbav:"password_hash"`
	Role          string     `json:"role" dynamodbav:"role"`
	IsVerified    bool       `json:"is_verified" dynamodbav:"is_verified"`
	AcademicEmail bool       `json:"academic_email" dynamodbav:"academic_email"`
	Interests     []string   `json:"interests,omitempty" dynamodbav:"interests"`
	Institution   *string    `json:"institution,omitempty" dynamodbav:"institution"`
	Degree        *string    `json:"degree,omitempty" dynamodbav:"degree"`
	Enable        bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt     time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// AuthUser is the normalized principal view returned by the account and
// session services. It carries no credential material.
type AuthUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar,omitempty"`
	IsVerified  bool    `json:"is_verified"`
	Role        string  `json:"role"`
}

// AuthSession pairs a principal with its session expiry.
type AuthSession struct {
	User    AuthUser  `json:"user"`
	Expires time.Time `json:"expires"`
}

// ToAuthUser projects the stored record onto the AuthUser view.
func (u *User) ToAuthUser() AuthUser {
	return AuthUser{
		ID:          u.UserID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		IsVerified:  u.IsVerified,
		Role:        u.Role,
	}
}

type SignupRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Phone       *string  `json:"phone"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	DisplayName string   `json:"display_name" validate:"required"`
	Interests   []string `json:"interests"`
	Institution *string  `json:"institution"`
	Degree      *string  `json:"degree"`
}

type UpdateUserRequest struct {
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone"`
	DisplayName *string  `json:"display_name"`
	Interests   []string `json:"interests"`
	Institution *string  `json:"institution"`
	Degree      *string  `json:"degree"`
	Role        *string  `json:"role"`
	Enable      *bool    `json:"enable"`
}
