package ws

import "time"

// Event is a best-effort "you have a new notification" push addressed to one
// user. The persisted notification log is the durable record; events carry
// just enough for the client to render without refetching.
type Event struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}
