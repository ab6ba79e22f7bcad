package models

import "time"

// Session is a server-side login session.
type Session struct {
	ID      string
	Expires time.Time
	Data    SessionData
}

// SessionData is the JSON payload stored in sessions.data.
type SessionData struct {
	UserName string `json:"username"`
}
