package proto

// Error represents an error response.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the body most mutating endpoints answer with.
type MessageResponse struct {
	Message string `json:"message"`
}
