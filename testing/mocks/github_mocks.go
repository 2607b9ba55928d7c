// Package mocks provides call-tracking test doubles for the platform API clients
// and the Publisher interface.
package mocks

import (
	"context"
	"sync"

	ghpkg "github.com/sgaunet/release-sync/pkg/github"
)

// GitHubAPIClient is a mock implementation of github.APIClient with call tracking.
type GitHubAPIClient struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	CreateReleaseResponse   *ghpkg.Release
	CreateReleaseError      error
	GetReleaseByTagResponse *ghpkg.Release
	GetReleaseByTagError    error
	UploadAssetError        error
	UploadAssetErrors       map[string]error // Per asset name, takes precedence over UploadAssetError

	// Block holds method names, or "UploadAsset:<name>" for a single asset, whose
	// calls wait until their context is done and return its error.
	Block map[string]bool
}

// MethodCall represents a tracked method call with its parameters.
type MethodCall struct {
	Method string
	Args   map[string]any
}

// NewGitHubAPIClient creates a new mock GitHub API client.
func NewGitHubAPIClient() *GitHubAPIClient {
	return &GitHubAPIClient{
		calls:             make([]MethodCall, 0),
		UploadAssetErrors: make(map[string]error),
		Block:             make(map[string]bool),
	}
}

// CreateRelease implements github.APIClient.
func (m *GitHubAPIClient) CreateRelease(ctx context.Context, release ghpkg.NewRelease) (*ghpkg.Release, error) {
	m.trackCall("CreateRelease", map[string]any{
		"tag":        release.TagName,
		"name":       release.Name,
		"body":       release.Body,
		"draft":      release.Draft,
		"prerelease": release.Prerelease,
	})
	if m.blocked("CreateRelease") {
		return nil, blockUntilDone(ctx)
	}
	return m.CreateReleaseResponse, m.CreateReleaseError
}

// GetReleaseByTag implements github.APIClient.
func (m *GitHubAPIClient) GetReleaseByTag(ctx context.Context, tag string) (*ghpkg.Release, error) {
	m.trackCall("GetReleaseByTag", map[string]any{
		"tag": tag,
	})
	if m.blocked("GetReleaseByTag") {
		return nil, blockUntilDone(ctx)
	}
	return m.GetReleaseByTagResponse, m.GetReleaseByTagError
}

// UploadAsset implements github.APIClient.
func (m *GitHubAPIClient) UploadAsset(
	ctx context.Context, releaseID int64, name string, content []byte,
) (*ghpkg.Asset, error) {
	m.trackCall("UploadAsset", map[string]any{
		"releaseID": releaseID,
		"name":      name,
		"size":      len(content),
	})
	if m.blocked("UploadAsset", "UploadAsset:"+name) {
		return nil, blockUntilDone(ctx)
	}

	m.mu.Lock()
	err, ok := m.UploadAssetErrors[name]
	m.mu.Unlock()
	if !ok {
		err = m.UploadAssetError
	}
	if err != nil {
		return nil, err
	}
	return &ghpkg.Asset{Name: name, Size: len(content)}, nil
}

// GetCalls returns all tracked method calls.
func (m *GitHubAPIClient) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *GitHubAPIClient) GetCallCount(method string) int {
	return countCalls(m.GetCalls(), method)
}

// GetLastCall returns the last call to a specific method, or nil if never called.
func (m *GitHubAPIClient) GetLastCall(method string) *MethodCall {
	return lastCall(m.GetCalls(), method)
}

// Reset clears all tracked calls.
func (m *GitHubAPIClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MethodCall, 0)
}

// trackCall records a method call with its arguments.
func (m *GitHubAPIClient) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}

func (m *GitHubAPIClient) blocked(keys ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return anyBlocked(m.Block, keys)
}

func anyBlocked(block map[string]bool, keys []string) bool {
	for _, k := range keys {
		if block[k] {
			return true
		}
	}
	return false
}

// blockUntilDone simulates a call that never answers.
func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func countCalls(calls []MethodCall, method string) int {
	count := 0
	for _, call := range calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

func lastCall(calls []MethodCall, method string) *MethodCall {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			call := calls[i]
			return &call
		}
	}
	return nil
}

// Ensure GitHubAPIClient implements github.APIClient interface.
var _ ghpkg.APIClient = (*GitHubAPIClient)(nil)
