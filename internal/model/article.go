package model

import "time"

// Article is a written post. Visibility false marks a draft.
type Article struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Visibility bool        `json:"visibility"`
	Author     UserSummary `json:"author"`
	Tags       []string    `json:"tags"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Work is a showcased artifact (app, site, tool). Visibility false marks a draft.
type Work struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Thumbnail  string      `json:"thumbnail"`
	Visibility bool        `json:"visibility"`
	Author     UserSummary `json:"author"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Tag labels articles; users also follow tags they are learning.
type Tag struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ArticleCount int    `json:"article_count"`
}
