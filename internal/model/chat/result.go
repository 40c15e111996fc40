package chat

// Result is the structured output of the response generator, delivered to
// the originating client inside a chat_response frame.
type Result struct {
	TextResponse string `json:"text_response"`
}
