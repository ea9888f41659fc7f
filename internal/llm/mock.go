package llm

import (
	"context"
	"sync"
)

// MockReply is one scripted outcome for MockProvider.
type MockReply struct {
	Content   string
	Usage     Usage
	Truncated bool
	Err       error
}

// MockProvider replays scripted replies in order and records requests.
// Replies are validated against the request schema like real ones. Once
// the script runs out every call fails with ErrProviderUnavailable.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockReply
	requests []Request
}

func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{script: replies}
}

// Reply queues a successful reply with the given content.
func (m *MockProvider) Reply(content string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, MockReply{Content: content})
	return m
}

// Fail queues an error.
func (m *MockProvider) Fail(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, MockReply{Err: err})
	return m
}

// Requests returns a copy of every request seen so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockProvider) ModelID() string { return ProviderMock }

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	var next MockReply
	if len(m.script) == 0 {
		next.Err = &ErrProviderUnavailable{}
	} else {
		next, m.script = m.script[0], m.script[1:]
	}
	m.mu.Unlock()

	return finish(req, completion{
		text:      next.Content,
		usage:     next.Usage,
		truncated: next.Truncated,
	}, ProviderMock, next.Err)
}
