package models

import (
	"encoding/json"
	"fmt"
)

// SavedPostRef is a tagged variant for the two shapes the backend uses for
// savedPosts entries: a bare post id on some endpoints, a fully embedded
// post document on others.
type SavedPostRef struct {
	id   string
	post *Post
}

func SavedPostID(id string) SavedPostRef {
	return SavedPostRef{id: id}
}

func SavedPostEmbedded(post Post) SavedPostRef {
	return SavedPostRef{post: &post}
}

// ID returns the post id regardless of which shape the entry carries.
func (r SavedPostRef) ID() string {
	if r.post != nil {
		return r.post.ID
	}
	return r.id
}

// Post returns the embedded post when present.
func (r SavedPostRef) Post() (Post, bool) {
	if r.post != nil {
		return *r.post, true
	}
	return Post{}, false
}

func (r *SavedPostRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.id)
	}

	var post Post
	if err := json.Unmarshal(data, &post); err != nil {
		return fmt.Errorf("savedPosts entry is neither id nor post: %w", err)
	}
	r.post = &post
	return nil
}

func (r SavedPostRef) MarshalJSON() ([]byte, error) {
	if r.post != nil {
		return json.Marshal(r.post)
	}
	return json.Marshal(r.id)
}
