package gemini

// GenerateContentRequest is the body POSTed to the generateContent endpoint.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content is an ordered list of parts.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// Part carries one piece of text. Text is a pointer so that an absent
// field can be told apart from an empty string.
type Part struct {
	Text *string `json:"text,omitempty"`
}

// GenerateContentResponse is the subset of the API answer the service reads.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// TextPart returns a Part holding s.
func TextPart(s string) Part {
	return Part{Text: &s}
}

// NewTextRequest wraps prompt in the single-content, single-part request shape.
func NewTextRequest(prompt string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{TextPart(prompt)}}},
	}
}
