package api

import (
	"context"
	"io"

	"github.com/lazymystic/instafake-go/internal/models"
)

type SignupRequest struct {
	UserName        string `json:"userName" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,len=6,numeric"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

// Upload describes one file part of a multipart request.
type Upload struct {
	Field       string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UserAPI covers the /users endpoints.
type UserAPI interface {
	Signup(ctx context.Context, req SignupRequest) (*models.Envelope, error)
	VerifyOTP(ctx context.Context, otp string) (*models.Envelope, error)
	ResendOTP(ctx context.Context) (*models.Envelope, error)
	Login(ctx context.Context, req LoginRequest) (*models.Envelope, error)
	Logout(ctx context.Context) (*models.Envelope, error)
	ForgetPassword(ctx context.Context, email string) (*models.Envelope, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*models.Envelope, error)
	Me(ctx context.Context) (*models.Envelope, error)
	Profile(ctx context.Context, userID string) (*models.Envelope, error)
	FollowUnfollow(ctx context.Context, userID string) (*models.Envelope, error)
	SuggestedUsers(ctx context.Context) (*models.Envelope, error)
	EditProfile(ctx context.Context, bio string, picture *Upload) (*models.Envelope, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (*models.Envelope, error)
}

// PostAPI covers the /posts endpoints.
type PostAPI interface {
	GetPosts(ctx context.Context) (*models.Envelope, error)
	CreatePost(ctx context.Context, caption string, image *Upload) (*models.Envelope, error)
	DeletePost(ctx context.Context, postID string) (*models.Envelope, error)
	LikeDislike(ctx context.Context, postID string) (*models.Envelope, error)
	SaveUnsave(ctx context.Context, postID string) (*models.Envelope, error)
	Comment(ctx context.Context, postID, text string) (*models.Envelope, error)
}
