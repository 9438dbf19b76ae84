// Package mocks provides shared mock implementations for testing.
//
// Import the package in a test and configure the mock you need:
//
//	gen := &mocks.MockGenerator{
//	    GenerateReplyFn: func(ctx context.Context, req generation.Request) (string, error) {
//	        return "Thanks, see you then.", nil
//	    },
//	}
//
// Mocks record every call so tests can assert on the arguments afterwards.
package mocks
