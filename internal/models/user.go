package models

import "time"

// User represents a registered account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(255)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Image     string    `json:"image" gorm:"type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Following is the follow edge: the existence of a row means
// FollowerID follows FolloweeID.
type Following struct {
	FolloweeID string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"primaryKey;type:varchar(36)"`
}

// TableName overrides GORM's pluralization for the follow edge table.
func (Following) TableName() string {
	return "followings"
}

// Profile is the viewer-relative projection of a user.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
	Followers int64  `json:"followers"`
	Followee  int64  `json:"followee"`
}

// RegisterRequest is the payload for new account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email,min=5,max=50"`
	Password string `json:"password" validate:"required,min=6,max=200"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a partial user update. Nil fields are left
// unchanged; Image holds freshly uploaded avatar bytes, if any.
type UpdateUserRequest struct {
	Username *string `form:"username" validate:"omitempty,min=3,max=30"`
	Email    *string `form:"email" validate:"omitempty,email,min=5,max=50"`
	Bio      *string `form:"bio" validate:"omitempty,max=250"`
	Image    []byte  `form:"-" validate:"-"`
}

// ChangePasswordRequest is the payload for changing the password of a
// logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required,min=6,max=200"`
	NewPassword        string `json:"newPassword" validate:"required,min=6,max=200"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

// ForgotPasswordRequest asks for a reset token to be mailed out.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a mailed reset token.
type ResetPasswordRequest struct {
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=6,max=200"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}
