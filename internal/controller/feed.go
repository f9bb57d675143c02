package controller

import (
	"context"
	"strings"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/models"
	"github.com/lazymystic/instafake-go/internal/request"
)

// LoadFeed replaces the cached feed with the server's post list.
func (c *Controller) LoadFeed(ctx context.Context) bool {
	envelope := c.Exec.Do(ctx, c.setter("feed"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.GetPosts(ctx)
	})
	if envelope == nil {
		return false
	}

	c.Feed.SetPosts(envelope.Data.Posts)
	return true
}

// ToggleLike flips the session user's like on a post. The endpoint only
// returns a message, so the toggle is applied locally after the 2xx. A like
// already in flight for the same post makes this a no-op.
func (c *Controller) ToggleLike(ctx context.Context, postID string) bool {
	user := c.Session.User()
	if user == nil {
		return false
	}

	key := request.ActionKey{EntityID: postID, Action: "like"}
	envelope := c.Exec.DoGuarded(ctx, key, nil, func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.LikeDislike(ctx, postID)
	})
	if envelope == nil {
		return false
	}

	c.Feed.LikeOrDislikePost(postID, user.ID)
	return true
}

// ToggleSave flips the post's membership in the session user's saved list.
func (c *Controller) ToggleSave(ctx context.Context, postID string) bool {
	if c.Session.User() == nil {
		return false
	}

	key := request.ActionKey{EntityID: postID, Action: "save"}
	envelope := c.Exec.DoGuarded(ctx, key, nil, func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.SaveUnsave(ctx, postID)
	})
	if envelope == nil {
		return false
	}

	c.Session.ToggleSavePost(postID)
	c.Notifier.Success(envelope.Message)
	return true
}

// AddComment appends the server-created comment to the post. Empty input is
// ignored without a notification, mirroring a disabled submit control.
func (c *Controller) AddComment(ctx context.Context, postID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || c.Session.User() == nil {
		return false
	}

	key := request.ActionKey{EntityID: postID, Action: "comment"}
	envelope := c.Exec.DoGuarded(ctx, key, nil, func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.Comment(ctx, postID, text)
	})
	if envelope == nil || envelope.Data.Comment == nil {
		return false
	}

	c.Feed.AddComment(postID, *envelope.Data.Comment)
	c.Notifier.Success("Comment added successfully!")
	return true
}

// CreatePost uploads the image with its caption and prepends the created
// post to the feed.
func (c *Controller) CreatePost(ctx context.Context, caption string, image *api.Upload) bool {
	if image == nil {
		c.Notifier.Error("Please select an image")
		return false
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		c.Notifier.Error("Please select a valid image file")
		return false
	}
	if image.Size > c.Cfg.MaxUploadSize {
		c.Notifier.Error("Image size should be less than 5MB")
		return false
	}
	if c.Session.User() == nil {
		c.Notifier.Error("Please log in to create a post")
		return false
	}

	key := request.ActionKey{EntityID: "post", Action: "create"}
	envelope := c.Exec.DoGuarded(ctx, key, c.setter("createPost"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.CreatePost(ctx, caption, image)
	})
	if envelope == nil || envelope.Data.Post == nil {
		return false
	}

	c.Feed.AddPost(*envelope.Data.Post)
	c.Notifier.Success("Post created successfully!")
	return true
}

// DeletePost removes the post server-side, then locally.
func (c *Controller) DeletePost(ctx context.Context, postID string) bool {
	key := request.ActionKey{EntityID: postID, Action: "delete"}
	envelope := c.Exec.DoGuarded(ctx, key, c.setter("deletePost"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Posts.DeletePost(ctx, postID)
	})
	if envelope == nil {
		return false
	}

	c.Feed.DeletePost(postID)
	c.Notifier.Success(envelope.Message)
	return true
}
