package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/models"
)

func writeEnvelope(w http.ResponseWriter, status int, envelope models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope)
}

// fakeBackend routes the endpoints the client talks to, with a session
// cookie issued on login and required by /users/me.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "password123" {
			writeEnvelope(w, http.StatusBadRequest, models.Envelope{
				Status:  "fail",
				Message: "Incorrect email or password",
			})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-token", Path: "/"})
		writeEnvelope(w, http.StatusOK, models.Envelope{
			Status:  models.StatusSuccess,
			Message: "Logged in",
			Data:    models.Payload{User: &models.User{ID: "u1", Email: body["email"]}},
		})
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "session-token" {
			writeEnvelope(w, http.StatusUnauthorized, models.Envelope{
				Status:  "fail",
				Message: "You are not logged in",
			})
			return
		}
		writeEnvelope(w, http.StatusOK, models.Envelope{
			Status: models.StatusSuccess,
			Data:   models.Payload{User: &models.User{ID: "u1", UserName: "alice"}},
		})
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/posts/like-dislike/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, models.Envelope{
			Status:  models.StatusSuccess,
			Message: "Post liked",
		})
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/posts/delete-post/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, models.Envelope{
			Status:  models.StatusSuccess,
			Message: "Post deleted: " + mux.Vars(r)["id"],
		})
	}).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/posts/create-post", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))
		assert.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "hello world", r.FormValue("caption"))

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "fake image bytes", string(content))
		assert.Equal(t, "photo.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		writeEnvelope(w, http.StatusCreated, models.Envelope{
			Status: models.StatusSuccess,
			Data:   models.Payload{Post: &models.Post{ID: "p1", Caption: "hello world"}},
		})
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/users/edit-profile", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "new bio", r.FormValue("Bio"))
		writeEnvelope(w, http.StatusOK, models.Envelope{
			Status: models.StatusSuccess,
			Data:   models.Payload{User: &models.User{ID: "u1", Bio: "new bio"}},
		})
	}).Methods(http.MethodPost)

	return httptest.NewServer(router)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{
		BaseAPIURL:     baseURL + "/api/v1",
		RequestTimeout: 0,
	}
	client, err := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, err)
	return client
}

func TestClient_LoginStoresSessionCookie(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	assert.False(t, client.HasSession())

	envelope, err := client.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.True(t, envelope.OK())
	assert.Equal(t, "u1", envelope.Data.User.ID)
	assert.True(t, client.HasSession())

	// the cookie from login rides along on the next call
	me, err := client.Me(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "alice", me.Data.User.UserName)
}

func TestClient_ServerMessageOnFailure(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	envelope, err := client.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Nil(t, envelope)

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
}

func TestClient_UnauthenticatedSentinel(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, "You are not logged in", UserMessage(err))
}

func TestClient_DeleteUsesDeleteMethod(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	envelope, err := client.DeletePost(context.Background(), "p42")
	assert.NoError(t, err)
	assert.Equal(t, "Post deleted: p42", envelope.Message)
}

func TestClient_CreatePostMultipart(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	envelope, err := client.CreatePost(context.Background(), "hello world", &Upload{
		Field:       "image",
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		Size:        16,
		Content:     strings.NewReader("fake image bytes"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "p1", envelope.Data.Post.ID)
}

func TestClient_EditProfileWithoutPicture(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	envelope, err := client.EditProfile(context.Background(), "new bio", nil)
	assert.NoError(t, err)
	assert.Equal(t, "new bio", envelope.Data.User.Bio)
}

func TestClient_LikePath(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	client := newTestClient(t, server.URL)

	envelope, err := client.LikeDislike(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, "Post liked", envelope.Message)
}

func TestUserMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "Something went wrong. Please try again", UserMessage(assert.AnError))
	assert.Equal(t, "Please log in to continue", UserMessage(&Error{StatusCode: http.StatusUnauthorized}))
	assert.Equal(t, "Server exploded", UserMessage(&Error{StatusCode: 500, Message: "Server exploded"}))
}
