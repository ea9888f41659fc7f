package speech

import (
	"context"
	"strings"
	"sync"
)

// MockSynthesizer returns a short silent WAV clip and records the texts
// it was asked to speak.
type MockSynthesizer struct {
	mu    sync.Mutex
	texts []string
	Err   error
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return &Audio{Data: WAV(make([]byte, 480), geminiSampleRate, 1, 16), MIMEType: "audio/wav", Ext: ".wav"}, nil
}

// Texts returns the texts spoken so far.
func (m *MockSynthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}
