package chat

import "time"

// Message records one turn of a conversation thread so the response
// generator can rebuild context for follow-up messages.
type Message struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"threadId"`
	UserID    string    `json:"userId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
