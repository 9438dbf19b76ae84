// Package generation defines the boundary between the HTTP layer and the
// external LLM service that writes email replies. It holds the request type,
// prompt construction, the Generator interface implemented by the Gemini
// adapters, and the error taxonomy shared by all implementations.
package generation
