package test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/controller"
	"github.com/lazymystic/instafake-go/internal/models"
	"github.com/lazymystic/instafake-go/internal/notify"
	"github.com/lazymystic/instafake-go/internal/request"
	"github.com/lazymystic/instafake-go/internal/store"
)

type MockUserAPI struct {
	mock.Mock
}

func envelopeResult(args mock.Arguments) (*models.Envelope, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Envelope), args.Error(1)
}

func (m *MockUserAPI) Signup(ctx context.Context, req api.SignupRequest) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, req))
}

func (m *MockUserAPI) VerifyOTP(ctx context.Context, otp string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, otp))
}

func (m *MockUserAPI) ResendOTP(ctx context.Context) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx))
}

func (m *MockUserAPI) Login(ctx context.Context, req api.LoginRequest) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, req))
}

func (m *MockUserAPI) Logout(ctx context.Context) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx))
}

func (m *MockUserAPI) ForgetPassword(ctx context.Context, email string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, email))
}

func (m *MockUserAPI) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, req))
}

func (m *MockUserAPI) Me(ctx context.Context) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx))
}

func (m *MockUserAPI) Profile(ctx context.Context, userID string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, userID))
}

func (m *MockUserAPI) FollowUnfollow(ctx context.Context, userID string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, userID))
}

func (m *MockUserAPI) SuggestedUsers(ctx context.Context) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx))
}

func (m *MockUserAPI) EditProfile(ctx context.Context, bio string, picture *api.Upload) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, bio, picture))
}

func (m *MockUserAPI) ChangePassword(ctx context.Context, req api.ChangePasswordRequest) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, req))
}

type MockPostAPI struct {
	mock.Mock
}

func (m *MockPostAPI) GetPosts(ctx context.Context) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx))
}

func (m *MockPostAPI) CreatePost(ctx context.Context, caption string, image *api.Upload) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, caption, image))
}

func (m *MockPostAPI) DeletePost(ctx context.Context, postID string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, postID))
}

func (m *MockPostAPI) LikeDislike(ctx context.Context, postID string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, postID))
}

func (m *MockPostAPI) SaveUnsave(ctx context.Context, postID string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, postID))
}

func (m *MockPostAPI) Comment(ctx context.Context, postID, text string) (*models.Envelope, error) {
	return envelopeResult(m.Called(ctx, postID, text))
}

type fixture struct {
	ctrl     *controller.Controller
	users    *MockUserAPI
	posts    *MockPostAPI
	session  *store.Session
	feed     *store.Feed
	recorder *notify.Recorder
}

func newFixture() *fixture {
	users := new(MockUserAPI)
	posts := new(MockPostAPI)
	recorder := notify.NewRecorder()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := store.NewSession()
	feed := store.NewFeed()
	exec := request.NewExecutor(recorder, log)

	cfg := &config.Config{
		BaseAPIURL:    "http://localhost:8000/api/v1",
		MaxUploadSize: 5 * 1024 * 1024,
		OTP: config.OTP{
			Digits:        6,
			Window:        5 * time.Minute,
			ResendLockout: time.Minute,
		},
	}

	return &fixture{
		ctrl:     controller.New(users, posts, session, feed, exec, recorder, cfg, log),
		users:    users,
		posts:    posts,
		session:  session,
		feed:     feed,
		recorder: recorder,
	}
}

func verifiedUser() *models.User {
	return &models.User{
		ID:         "user-1",
		UserName:   "alice",
		Email:      "alice@example.com",
		Following:  []string{"user-2"},
		IsVerified: true,
	}
}

func successEnvelope(message string) *models.Envelope {
	return &models.Envelope{Status: models.StatusSuccess, Message: message}
}
