package store

import (
	"sync"

	"github.com/lazymystic/instafake-go/internal/models"
)

// Session holds the cached authenticated user. It is an injected container,
// never an ambient global; mutations happen only after the matching server
// call succeeded.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

func NewSession() *Session {
	return &Session{}
}

// SetAuthUser replaces the session user wholesale. nil clears the session.
func (s *Session) SetAuthUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	cloned := cloneUser(*user)
	s.user = &cloned
}

// User returns a copy of the session user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cloned := cloneUser(*s.user)
	return &cloned
}

// ToggleSavePost flips the post id's membership in the user's saved posts.
func (s *Session) ToggleSavePost(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user.SavedPosts = toggleSavedPost(s.user.SavedPosts, postID)
}

// IsFollowing reports whether the session user follows userID.
func (s *Session) IsFollowing(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	return contains(s.user.Following, userID)
}

func toggleSavedPost(saved []models.SavedPostRef, postID string) []models.SavedPostRef {
	for i, ref := range saved {
		if ref.ID() == postID {
			return append(saved[:i:i], saved[i+1:]...)
		}
	}
	return append(saved, models.SavedPostID(postID))
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func cloneUser(user models.User) models.User {
	user.Followers = append([]string(nil), user.Followers...)
	user.Following = append([]string(nil), user.Following...)
	user.SavedPosts = append([]models.SavedPostRef(nil), user.SavedPosts...)
	user.Posts = clonePosts(user.Posts)
	return user
}
