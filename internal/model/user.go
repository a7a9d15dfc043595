package model

import "time"

// User is a registered account. Name is the unique login handle used in profile URLs.
// DisplayName is optional.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Heading is the title shown for a user: the display name, or @name when none is set.
func (u User) Heading() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "@" + u.Name
}

// UserSummary is the author block attached to content cards.
type UserSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image"`
}

// UserStats holds the counters shown in a profile header.
type UserStats struct {
	ArticleAmount int `json:"article_amount"`
	WorkAmount    int `json:"work_amount"`
	CommentAmount int `json:"comment_amount"`
}
