package models

import (
	"time"
)

type User struct {
	ID             string         `json:"_id"`
	UserName       string         `json:"userName"`
	Email          string         `json:"email"`
	ProfilePicture string         `json:"profilePicture"`
	Bio            string         `json:"Bio"`
	Followers      []string       `json:"followers"`
	Following      []string       `json:"following"`
	Posts          []Post         `json:"posts"`
	SavedPosts     []SavedPostRef `json:"savedPosts"`
	IsVerified     bool           `json:"isVerified"`
}

// UserSummary is the embedded author shape the backend attaches to posts
// and comments instead of the full user document.
type UserSummary struct {
	ID             string `json:"_id"`
	UserName       string `json:"userName"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"Bio,omitempty"`
}

type PostImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Post struct {
	ID        string      `json:"_id"`
	Caption   string      `json:"caption"`
	Image     PostImage   `json:"image"`
	User      UserSummary `json:"user"`
	Likes     []string    `json:"likes"`
	Comments  []Comment   `json:"comments"`
	CreatedAt time.Time   `json:"createdAt"`
}

type Comment struct {
	ID        string      `json:"_id"`
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	Post      string      `json:"post"`
	CreatedAt time.Time   `json:"createdAt"`
}
