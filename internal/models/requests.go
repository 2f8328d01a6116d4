package models

// ChatMessage is one turn of a conversation sent to the assistant.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CaseContext is the slice of a case handed to the assistant as grounding.
type CaseContext struct {
	Problem  string `json:"problem,omitempty"`
	Category string `json:"category,omitempty"`
	Urgency  string `json:"urgency,omitempty"`
}

type CreateCaseRequest struct {
	Problem   string         `json:"problem"`
	Documents []CaseDocument `json:"documents,omitempty"`
}

type SelectLawyerRequest struct {
	LawyerID string `json:"lawyerId"`
}

type AddDocumentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SendMessageRequest struct {
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type AIAssistRequest struct {
	Question string `json:"question"`
}

type ProcessProblemRequest struct {
	Problem string `json:"problem"`
}

type AIChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	CaseContext *CaseContext  `json:"caseContext,omitempty"`
}

type UploadedFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
