package models

// ChatRequest is the payload coming from the frontend into /api/ai/chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

// TranscriptResponse carries the full ordered transcript of the active
// conversation.
type TranscriptResponse struct {
	ConversationID string     `json:"conversationId"`
	Turns          []ChatTurn `json:"turns"`
}
