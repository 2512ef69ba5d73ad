package models

import "time"

// User represents a registered account.
type User struct {
	ID                string    `db:"id" json:"id"`
	Email             string    `db:"email" json:"email"`
	Name              string    `db:"name" json:"name"`
	PasswordHash      *string   `db:"password_hash" json:"-"`
	CalendarID        *string   `db:"calendar_id" json:"-"`
	CalendarAPIKey    *string   `db:"calendar_api_key" json:"-"`
	CalendarEmbedCode *string   `db:"calendar_embed_code" json:"-"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// UserInfo describes the public identity embedded in sessions and responses.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Info returns the public identity fields of the user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name}
}

// CalendarSettings is the per-user calendar configuration blob.
type CalendarSettings struct {
	CalendarID string `json:"calendarId"`
	APIKey     string `json:"apiKey"`
	EmbedCode  string `json:"embedCode"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
