package testing

import (
	"context"

	"github.com/google/go-github/v72/github"
	"github.com/stretchr/testify/mock"
)

// MockContents is a mock implementation of the repository contents API used
// by the publish package.
type MockContents struct {
	mock.Mock
}

// GetContents looks up a file in the repository.
func (m *MockContents) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var file *github.RepositoryContent
	if v := args.Get(0); v != nil {
		file = v.(*github.RepositoryContent)
	}
	var resp *github.Response
	if v := args.Get(1); v != nil {
		resp = v.(*github.Response)
	}
	return file, nil, resp, args.Error(2)
}

// CreateFile creates a new file.
func (m *MockContents) CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	return contentResponse(args.Get(0)), nil, args.Error(1)
}

// UpdateFile replaces an existing file.
func (m *MockContents) UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	return contentResponse(args.Get(0)), nil, args.Error(1)
}

func contentResponse(v any) *github.RepositoryContentResponse {
	if v == nil {
		return nil
	}
	return v.(*github.RepositoryContentResponse)
}

// ContentAt builds a contents response pointing at htmlURL.
func ContentAt(htmlURL string) *github.RepositoryContentResponse {
	return &github.RepositoryContentResponse{
		Content: &github.RepositoryContent{HTMLURL: github.Ptr(htmlURL)},
	}
}
