package models

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	AuthorID  int64     `json:"authorId"`
	TaskID    int64     `json:"taskId"`
	ViewedBy  []int64   `json:"viewedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author        *UserRef `json:"author,omitempty"`
	ViewedByNames []string `json:"viewedByNames,omitempty"`
}

// SeenBy reports whether userID is already in ViewedBy.
func (c *Comment) SeenBy(userID int64) bool {
	for _, id := range c.ViewedBy {
		if id == userID {
			return true
		}
	}
	return false
}
