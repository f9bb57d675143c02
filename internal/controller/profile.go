package controller

import (
	"context"
	"strings"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/models"
	"github.com/lazymystic/instafake-go/internal/request"
)

// ProfileView is what the profile screen renders: the requested user plus
// the relationship flags derived from the session.
type ProfileView struct {
	User         models.User
	IsOwnProfile bool
	IsFollowing  bool
}

// LoadProfile fetches a profile and derives the view flags from store state.
func (c *Controller) LoadProfile(ctx context.Context, userID string) (*ProfileView, Route) {
	current := c.Session.User()
	if current == nil {
		return nil, RouteLogin
	}

	envelope := c.Exec.Do(ctx, c.setter("profile"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.Profile(ctx, userID)
	})
	if envelope == nil || envelope.Data.User == nil {
		return nil, RouteStay
	}

	profile := *envelope.Data.User
	return &ProfileView{
		User:         profile,
		IsOwnProfile: current.ID == profile.ID,
		IsFollowing:  c.Session.IsFollowing(profile.ID),
	}, RouteStay
}

// FollowUnfollow toggles the follow edge server-side. The server returns the
// updated current user, and the session takes that copy wholesale instead of
// toggling the following list locally.
func (c *Controller) FollowUnfollow(ctx context.Context, userID string) bool {
	if c.Session.User() == nil {
		return false
	}

	key := request.ActionKey{EntityID: userID, Action: "follow"}
	envelope := c.Exec.DoGuarded(ctx, key, c.setter("follow"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.FollowUnfollow(ctx, userID)
	})
	if envelope == nil {
		return false
	}

	if envelope.Data.User != nil {
		c.Session.SetAuthUser(envelope.Data.User)
	}
	c.Notifier.Success(envelope.Message)
	return true
}

// SuggestedUsers returns accounts the session user might want to follow.
func (c *Controller) SuggestedUsers(ctx context.Context) []models.User {
	envelope := c.Exec.Do(ctx, c.setter("suggested"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.SuggestedUsers(ctx)
	})
	if envelope == nil {
		return nil
	}
	return envelope.Data.Users
}

// EditProfile updates bio and, optionally, the profile picture. The session
// user is replaced with the server's updated copy.
func (c *Controller) EditProfile(ctx context.Context, bio string, picture *api.Upload) bool {
	if picture != nil {
		if !strings.HasPrefix(picture.ContentType, "image/") {
			c.Notifier.Error("Please select a valid image file")
			return false
		}
		if picture.Size > c.Cfg.MaxUploadSize {
			c.Notifier.Error("Image size should be less than 5MB")
			return false
		}
	}

	envelope := c.Exec.Do(ctx, c.setter("editProfile"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.EditProfile(ctx, bio, picture)
	})
	if envelope == nil || envelope.Data.User == nil {
		return false
	}

	c.Session.SetAuthUser(envelope.Data.User)
	c.Notifier.Success("Profile updated successfully!")
	return true
}
