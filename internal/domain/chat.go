package domain

// HistoryEntry is one prior turn supplied by the client. The backend is
// stateless across requests; history arrives on every call.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []HistoryEntry `json:"conversationHistory"`
}

// ChatMessage is a client-side message in the session's ordered list.
// Content is mutable only while the owning assistant turn is streaming.
type ChatMessage struct {
	ID             string        `json:"id"`
	Role           string        `json:"role"` // user, assistant
	Content        string        `json:"content"`
	StructuredData Card          `json:"structuredData,omitempty"`
	Projects       []ProjectCard `json:"projects,omitempty"`
}

// Stream chunk types carried in the SSE envelope
const (
	ChunkTypeStructured = "structuredData"
	ChunkTypeMessage    = "message"
	ChunkTypeError      = "error"
)

// StreamChunk is one event in the chat stream. Serialized as the SSE
// envelope {"type": ..., "data": ...}.
type StreamChunk struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// CardResponse is the response of a card endpoint. For the projects
// category StructuredData is the first project and Projects carries the
// full ordered list.
type CardResponse struct {
	StructuredData Card          `json:"structuredData"`
	Message        string        `json:"message"`
	Projects       []ProjectCard `json:"projects,omitempty"`
}

// Card categories served by the card endpoints
const (
	CategoryMe       = "me"
	CategoryProjects = "projects"
	CategorySkills   = "skills"
	CategoryContact  = "contact"
	CategoryResume   = "resume"
	CategoryFun      = "fun"
)
