package mocks

import (
	"context"
	"sync"

	"github.com/sgaunet/release-sync/pkg/platform"
)

// Publisher is a mock implementation of platform.Publisher with call tracking.
type Publisher struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	PublishResponse   *platform.Outcome // nil: a successful outcome is synthesized
	PublishError      error
	PlatformNameValue string

	// Requests received by Publish, in order.
	Requests []platform.Request
}

// NewPublisher creates a new mock publisher reporting name as its platform.
func NewPublisher(name string) *Publisher {
	return &Publisher{
		calls:             make([]MethodCall, 0),
		PlatformNameValue: name,
	}
}

// Publish implements platform.Publisher.
func (m *Publisher) Publish(_ context.Context, req platform.Request) (*platform.Outcome, error) {
	m.trackCall("Publish", map[string]any{
		"tag":    req.Tag,
		"name":   req.Name,
		"assets": len(req.Assets),
	})

	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	outcome := m.PublishResponse
	if outcome == nil {
		outcome = &platform.Outcome{Platform: m.PlatformNameValue, ReleaseID: req.Tag}
	}
	if m.PublishError != nil {
		outcome.Err = m.PublishError
	}
	return outcome, m.PublishError
}

// PlatformName implements platform.Publisher.
func (m *Publisher) PlatformName() string {
	m.trackCall("PlatformName", map[string]any{})
	return m.PlatformNameValue
}

// GetCalls returns all tracked method calls.
func (m *Publisher) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *Publisher) GetCallCount(method string) int {
	return countCalls(m.GetCalls(), method)
}

// GetLastCall returns the last call to a specific method, or nil if never called.
func (m *Publisher) GetLastCall(method string) *MethodCall {
	return lastCall(m.GetCalls(), method)
}

// Reset clears all tracked calls.
func (m *Publisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MethodCall, 0)
	m.Requests = nil
}

func (m *Publisher) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}

// Ensure Publisher implements platform.Publisher interface.
var _ platform.Publisher = (*Publisher)(nil)
