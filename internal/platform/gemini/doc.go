// Package gemini provides implementations of the generation.Generator interface
// that ask Google's Gemini generateContent API to write email replies.
//
// This package is an infrastructure adapter: it translates a generation.Request
// into the API's wire format and translates the API's answer, or its failure,
// back into a reply string or a generation error.
//
// Key components:
//
// 1. Client:
//   - POSTs {"contents":[{"parts":[{"text":prompt}]}]} to the configured URL
//   - Authenticates with the "key" query parameter
//   - Makes exactly one attempt per request; there are no retries
//
// 2. SDKClient:
//   - Performs the same call through the google.golang.org/genai client
//   - Selected with llm.backend=sdk
//
// 3. Response Processing:
//   - ExtractText parses the body into typed structs and walks
//     candidates[0].content.parts[0].text, returning a typed error for
//     every missing level instead of panicking
//
// API keys and upstream bodies are redacted before they are logged and never
// reach the caller.
package gemini
