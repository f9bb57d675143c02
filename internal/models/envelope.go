package models

const StatusSuccess = "success"

// Payload holds whichever entity an endpoint returns under "data".
type Payload struct {
	User    *User    `json:"user,omitempty"`
	Users   []User   `json:"users,omitempty"`
	Post    *Post    `json:"post,omitempty"`
	Posts   []Post   `json:"posts,omitempty"`
	Comment *Comment `json:"comment,omitempty"`
}

// Envelope is the response wrapper every backend endpoint emits.
type Envelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    Payload `json:"data"`
}

func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusSuccess
}
