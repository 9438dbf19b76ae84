package generation

import (
	"encoding/json"
	"strings"
)

// Request is the input for one reply generation.
type Request struct {
	// EmailContent is the email being replied to. It is forwarded unvalidated.
	EmailContent string `json:"emailContent"`

	// Tone is optional; empty means no tone instruction.
	Tone string `json:"tone"`
}

// UnmarshalJSON accepts "emailTone" as an alias for "tone", which is the
// key the browser extension sends.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		EmailContent string  `json:"emailContent"`
		Tone         *string `json:"tone"`
		EmailTone    *string `json:"emailTone"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.EmailContent = raw.EmailContent
	r.Tone = ""
	if raw.Tone != nil {
		r.Tone = *raw.Tone
	}
	if r.Tone == "" && raw.EmailTone != nil {
		r.Tone = *raw.EmailTone
	}
	return nil
}

const (
	promptInstruction = "Generate an email reply for the following email content. Do not generate a subject line. "
	promptOriginal    = "Original email:\n"
)

// BuildPrompt composes the instruction, the optional tone clause and the
// original email into the text sent to the model.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.Grow(len(promptInstruction) + len(req.Tone) + len(promptOriginal) + len(req.EmailContent) + 16)

	b.WriteString(promptInstruction)
	if req.Tone != "" {
		b.WriteString("Use a ")
		b.WriteString(req.Tone)
		b.WriteString(" tone. ")
	}
	b.WriteString(promptOriginal)
	b.WriteString(req.EmailContent)

	return b.String()
}
