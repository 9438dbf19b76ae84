package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/email-writer/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateReplyFn allows test cases to mock the GenerateReply behavior
	GenerateReplyFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	GenerateReplyCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateReply was called
		Count int

		// Requests contains all requests passed to GenerateReply calls
		Requests []generation.Request

		// Contexts contains all contexts passed to GenerateReply calls
		Contexts []context.Context
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateReply implements the generation.Generator interface
func (m *MockGenerator) GenerateReply(ctx context.Context, req generation.Request) (string, error) {
	m.GenerateReplyCalls.mu.Lock()
	m.GenerateReplyCalls.Count++
	m.GenerateReplyCalls.Requests = append(m.GenerateReplyCalls.Requests, req)
	m.GenerateReplyCalls.Contexts = append(m.GenerateReplyCalls.Contexts, ctx)
	m.GenerateReplyCalls.mu.Unlock()

	if m.GenerateReplyFn != nil {
		return m.GenerateReplyFn(ctx, req)
	}

	return m.Reply, m.Err
}

// CallCount returns how many times GenerateReply was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateReplyCalls.mu.Lock()
	defer m.GenerateReplyCalls.mu.Unlock()
	return m.GenerateReplyCalls.Count
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockGenerator) LastRequest() (generation.Request, bool) {
	m.GenerateReplyCalls.mu.Lock()
	defer m.GenerateReplyCalls.mu.Unlock()
	if len(m.GenerateReplyCalls.Requests) == 0 {
		return generation.Request{}, false
	}
	return m.GenerateReplyCalls.Requests[len(m.GenerateReplyCalls.Requests)-1], true
}

// NewMockGeneratorWithReply creates a MockGenerator that returns the given reply
func NewMockGeneratorWithReply(reply string) *MockGenerator {
	return &MockGenerator{
		Reply: reply,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrGenerationFailed,
	}
}

// MockGeneratorWithUpstreamStatus creates a MockGenerator that simulates a
// non-2xx response from the model API.
func MockGeneratorWithUpstreamStatus(code int) *MockGenerator {
	return &MockGenerator{
		Err: generation.NewStatusError(code),
	}
}

// MockGeneratorThatPanics creates a MockGenerator whose GenerateReply panics
// with the given value.
func MockGeneratorThatPanics(v interface{}) *MockGenerator {
	return &MockGenerator{
		GenerateReplyFn: func(context.Context, generation.Request) (string, error) {
			panic(v)
		},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateReplyCalls.mu.Lock()
	defer m.GenerateReplyCalls.mu.Unlock()

	m.GenerateReplyCalls.Count = 0
	m.GenerateReplyCalls.Requests = nil
	m.GenerateReplyCalls.Contexts = nil
}
