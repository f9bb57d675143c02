package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/models"
)

// Client talks to the Instafake backend. The session cookie set by login and
// signup lives in the cookie jar, so every later call carries credentials
// the same way the browser did.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
}

func NewClient(cfg *config.Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseAPIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base API URL %q: %w", cfg.BaseAPIURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		log: log,
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*models.Envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

func (c *Client) doMultipart(ctx context.Context, path string, fields map[string]string, file *Upload, header http.Header) (*models.Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if file != nil {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.FileName))
		if file.ContentType != "" {
			partHeader.Set("Content-Type", file.ContentType)
		}
		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy file content: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for name, values := range header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*models.Envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope models.Envelope
	if len(raw) > 0 {
		// a failed decode of an error body still yields the status error below
		_ = json.Unmarshal(raw, &envelope)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
		)
		return nil, &Error{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	return &envelope, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/signup", req)
}

func (c *Client) VerifyOTP(ctx context.Context, otp string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/verify", map[string]string{"otp": otp})
}

func (c *Client) ResendOTP(ctx context.Context) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/resend-otp", nil)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/login", req)
}

func (c *Client) Logout(ctx context.Context) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/logout", nil)
}

func (c *Client) ForgetPassword(ctx context.Context, email string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/forget-password", map[string]string{"email": email})
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/reset-password", req)
}

func (c *Client) Me(ctx context.Context) (*models.Envelope, error) {
	return c.do(ctx, http.MethodGet, "/users/me", nil)
}

func (c *Client) Profile(ctx context.Context, userID string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodGet, "/users/profile/"+url.PathEscape(userID), nil)
}

func (c *Client) FollowUnfollow(ctx context.Context, userID string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/follow-unfollow/"+url.PathEscape(userID), nil)
}

func (c *Client) SuggestedUsers(ctx context.Context) (*models.Envelope, error) {
	return c.do(ctx, http.MethodGet, "/users/suggested-users", nil)
}

func (c *Client) EditProfile(ctx context.Context, bio string, picture *Upload) (*models.Envelope, error) {
	return c.doMultipart(ctx, "/users/edit-profile", map[string]string{"Bio": bio}, picture, nil)
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/users/change-password", req)
}

func (c *Client) GetPosts(ctx context.Context) (*models.Envelope, error) {
	return c.do(ctx, http.MethodGet, "/posts/get", nil)
}

func (c *Client) CreatePost(ctx context.Context, caption string, image *Upload) (*models.Envelope, error) {
	// one key per attempt, so a retried submit cannot double-create
	header := http.Header{}
	header.Set("X-Idempotency-Key", uuid.New().String())
	return c.doMultipart(ctx, "/posts/create-post", map[string]string{"caption": caption}, image, header)
}

func (c *Client) DeletePost(ctx context.Context, postID string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodDelete, "/posts/delete-post/"+url.PathEscape(postID), nil)
}

func (c *Client) LikeDislike(ctx context.Context, postID string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/posts/like-dislike/"+url.PathEscape(postID), nil)
}

func (c *Client) SaveUnsave(ctx context.Context, postID string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/posts/save-unsaved-post/"+url.PathEscape(postID), nil)
}

func (c *Client) Comment(ctx context.Context, postID, text string) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, "/posts/comment/"+url.PathEscape(postID), map[string]string{"text": text})
}
