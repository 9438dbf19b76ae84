// Package api handles incoming HTTP requests and response formatting. It
// adapts HTTP to the generation.Generator contract: decoding the request,
// delegating to the generator, and mapping results and errors to plain-text
// responses.
package api
