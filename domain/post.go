package domain

import "time"

type Post struct {
	CreatedAt  time.Time `json:"created_at"`
	ScreenName string    `json:"screen_name"`
	FullText   string    `json:"full_text"`
}
