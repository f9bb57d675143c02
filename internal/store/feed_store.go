package store

import (
	"sync"

	"github.com/lazymystic/instafake-go/internal/models"
)

// Feed holds the cached post list in server order, newest first. Like the
// session store, it only reflects mutations the server already acknowledged.
type Feed struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewFeed() *Feed {
	return &Feed{}
}

// SetPosts replaces the feed wholesale, keeping the server's order.
func (f *Feed) SetPosts(posts []models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = clonePosts(posts)
}

// AddPost prepends the new post.
func (f *Feed) AddPost(post models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]models.Post{clonePost(post)}, f.posts...)
}

// DeletePost removes the post with the given id, if present.
func (f *Feed) DeletePost(postID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, post := range f.posts {
		if post.ID == postID {
			f.posts = append(f.posts[:i:i], f.posts[i+1:]...)
			return
		}
	}
}

// LikeOrDislikePost toggles userID's membership in the post's likes set.
func (f *Feed) LikeOrDislikePost(postID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID != postID {
			continue
		}
		f.posts[i].Likes = toggleMembership(f.posts[i].Likes, userID)
		return
	}
}

// AddComment appends the comment to the post's comment list.
func (f *Feed) AddComment(postID string, comment models.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].Comments = append(f.posts[i].Comments, comment)
			return
		}
	}
}

// Posts returns a copy of the current feed.
func (f *Feed) Posts() []models.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return clonePosts(f.posts)
}

// Post returns a copy of one post by id.
func (f *Feed) Post(postID string) (models.Post, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, post := range f.posts {
		if post.ID == postID {
			return clonePost(post), true
		}
	}
	return models.Post{}, false
}

func toggleMembership(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func clonePost(post models.Post) models.Post {
	post.Likes = append([]string(nil), post.Likes...)
	post.Comments = append([]models.Comment(nil), post.Comments...)
	return post
}

func clonePosts(posts []models.Post) []models.Post {
	if posts == nil {
		return nil
	}
	cloned := make([]models.Post, len(posts))
	for i, post := range posts {
		cloned[i] = clonePost(post)
	}
	return cloned
}
