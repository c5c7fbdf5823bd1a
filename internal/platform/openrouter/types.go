package openrouter

import "encoding/json"

// ChatMessage is a single message in a chat-completions conversation.
type ChatMessage struct {
	// Role is one of "system", "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ResponseFormat is the structured-output hint attached to a request. It is
// a request hint only; the provider's adherence is not guaranteed and the
// response parser must still tolerate free-text completions.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema names and carries the JSON schema requested from the model.
type JSONSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

// ChatRequest is the request body for the chat-completions endpoint.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	TopP           *float64        `json:"top_p,omitempty"`
}

// ChatChoice is one completion choice in a provider response.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponse is the success body of the chat-completions endpoint. The
// assistant content lives in the first choice; the transport returns it
// unchanged and leaves interpretation to the response parser.
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

// errorBody is the provider's error envelope on non-success statuses.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}
