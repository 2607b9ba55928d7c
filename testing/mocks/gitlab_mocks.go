package mocks

import (
	"context"
	"sync"

	glpkg "github.com/sgaunet/release-sync/pkg/gitlab"
)

// GitLabAPIClient is a mock implementation of gitlab.APIClient with call tracking.
type GitLabAPIClient struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	ProbeTagError           error
	ProbeTagErrors          []error // Consumed one per call before falling back to ProbeTagError
	CreateTagError          error
	CreateReleaseError      error
	GetReleaseByTagResponse *glpkg.Release
	GetReleaseByTagError    error
	UploadAssetError        error
	UploadAssetErrors       map[string]error // Per asset name, takes precedence over UploadAssetError

	// Existing tags; CreateTag adds to it and ProbeTag reports ErrTagNotFound for others
	// when ProbeTagError and ProbeTagErrors are unset.
	Tags map[string]bool

	// Block holds method names, or "UploadAsset:<name>" for a single asset, whose
	// calls wait until their context is done and return its error.
	Block map[string]bool
}

// NewGitLabAPIClient creates a new mock GitLab API client.
func NewGitLabAPIClient() *GitLabAPIClient {
	return &GitLabAPIClient{
		calls:             make([]MethodCall, 0),
		UploadAssetErrors: make(map[string]error),
		Tags:              make(map[string]bool),
		Block:             make(map[string]bool),
	}
}

// ProbeTag implements gitlab.APIClient.
func (m *GitLabAPIClient) ProbeTag(ctx context.Context, tag string) (*glpkg.Tag, error) {
	m.trackCall("ProbeTag", map[string]any{
		"tag": tag,
	})
	if m.blocked("ProbeTag") {
		return nil, blockUntilDone(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ProbeTagErrors) > 0 {
		err := m.ProbeTagErrors[0]
		m.ProbeTagErrors = m.ProbeTagErrors[1:]
		if err != nil {
			return nil, err
		}
		return &glpkg.Tag{Name: tag}, nil
	}
	if m.ProbeTagError != nil {
		return nil, m.ProbeTagError
	}
	if !m.Tags[tag] {
		return nil, glpkg.ErrTagNotFound
	}
	return &glpkg.Tag{Name: tag}, nil
}

// CreateTag implements gitlab.APIClient.
func (m *GitLabAPIClient) CreateTag(ctx context.Context, tag, ref string) (*glpkg.Tag, error) {
	m.trackCall("CreateTag", map[string]any{
		"tag": tag,
		"ref": ref,
	})
	if m.blocked("CreateTag") {
		return nil, blockUntilDone(ctx)
	}
	if m.CreateTagError != nil {
		return nil, m.CreateTagError
	}

	m.mu.Lock()
	m.Tags[tag] = true
	m.mu.Unlock()
	return &glpkg.Tag{Name: tag}, nil
}

// CreateRelease implements gitlab.APIClient.
func (m *GitLabAPIClient) CreateRelease(ctx context.Context, release glpkg.NewRelease) error {
	m.trackCall("CreateRelease", map[string]any{
		"tag":         release.TagName,
		"name":        release.Name,
		"description": release.Description,
		"ref":         release.Ref,
	})
	if m.blocked("CreateRelease") {
		return blockUntilDone(ctx)
	}
	return m.CreateReleaseError
}

// GetReleaseByTag implements gitlab.APIClient.
func (m *GitLabAPIClient) GetReleaseByTag(ctx context.Context, tag string) (*glpkg.Release, error) {
	m.trackCall("GetReleaseByTag", map[string]any{
		"tag": tag,
	})
	if m.blocked("GetReleaseByTag") {
		return nil, blockUntilDone(ctx)
	}
	return m.GetReleaseByTagResponse, m.GetReleaseByTagError
}

// UploadAsset implements gitlab.APIClient.
func (m *GitLabAPIClient) UploadAsset(ctx context.Context, tag, name string, content []byte) (*glpkg.Link, error) {
	m.trackCall("UploadAsset", map[string]any{
		"tag":  tag,
		"name": name,
		"size": len(content),
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
	return &glpkg.Link{Name: name}, nil
}

// GetCalls returns all tracked method calls.
func (m *GitLabAPIClient) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *GitLabAPIClient) GetCallCount(method string) int {
	return countCalls(m.GetCalls(), method)
}

// GetLastCall returns the last call to a specific method, or nil if never called.
func (m *GitLabAPIClient) GetLastCall(method string) *MethodCall {
	return lastCall(m.GetCalls(), method)
}

// Reset clears all tracked calls.
func (m *GitLabAPIClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MethodCall, 0)
}

func (m *GitLabAPIClient) blocked(keys ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return anyBlocked(m.Block, keys)
}

func (m *GitLabAPIClient) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}

// Ensure GitLabAPIClient implements gitlab.APIClient interface.
var _ glpkg.APIClient = (*GitLabAPIClient)(nil)
