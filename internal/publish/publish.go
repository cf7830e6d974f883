// Package publish saves generated files to a GitHub repository through the
// contents API.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v72/github"

	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/templates"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultBranch = "main"
	DefaultFolder = "aks-configs"
)

// ContentsAPI is the subset of the GitHub repository contents service used
// by Publisher.
type ContentsAPI interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

// Options selects where files are written.
type Options struct {
	Owner  string
	Repo   string
	Branch string
	Folder string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Branch) == "" {
		o.Branch = DefaultBranch
	}
	if strings.TrimSpace(o.Folder) == "" {
		o.Folder = DefaultFolder
	}
	return o
}

// Path returns the repository path for a bundle file name.
func (o Options) Path(name string) string {
	folder := strings.TrimSuffix(o.withDefaults().Folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// Result reports the outcome of a Save. URLs holds the HTML URL of every
// file written before any failure.
type Result struct {
	Success bool
	URLs    []string
	Err     error
}

// Publisher writes files one at a time. There is no retry and no rollback.
type Publisher struct {
	contents ContentsAPI
}

// New creates a publisher authenticated with token.
func New(token string) (*Publisher, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	return NewWithClient(github.NewClient(nil).WithAuthToken(token)), nil
}

// NewWithClient creates a publisher backed by an existing client.
func NewWithClient(client *github.Client) *Publisher {
	return &Publisher{contents: client.Repositories}
}

// NewWithContents creates a publisher backed by any ContentsAPI.
func NewWithContents(api ContentsAPI) *Publisher {
	return &Publisher{contents: api}
}

// Save writes files in order. Existing files are updated in place; missing
// ones are created. It stops at the first failure, leaving earlier writes
// in place.
func (p *Publisher) Save(ctx context.Context, opts Options, files []templates.File) Result {
	res := Result{URLs: []string{}}
	if strings.TrimSpace(opts.Owner) == "" || strings.TrimSpace(opts.Repo) == "" {
		res.Err = ErrMissingRepository
		return res
	}
	opts = opts.withDefaults()
	log := logging.FromContext(ctx).WithName("publish")

	for _, f := range files {
		path := opts.Path(f.Name)
		url, err := p.saveFile(ctx, opts, path, f)
		if err != nil {
			res.Err = fmt.Errorf("failed to save %s: %w", path, err)
			return res
		}
		log.V(1).Info("saved file", "path", path, "url", url)
		if url != "" {
			res.URLs = append(res.URLs, url)
		}
	}
	res.Success = true
	return res
}

func (p *Publisher) saveFile(ctx context.Context, opts Options, path string, f templates.File) (string, error) {
	sha, err := p.existingSHA(ctx, opts, path)
	if err != nil {
		return "", err
	}

	fileOpts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(CommitMessage(f.Name)),
		Content: []byte(f.Content),
		Branch:  github.Ptr(opts.Branch),
	}

	var out *github.RepositoryContentResponse
	if sha == "" {
		out, _, err = p.contents.CreateFile(ctx, opts.Owner, opts.Repo, path, fileOpts)
	} else {
		fileOpts.SHA = github.Ptr(sha)
		out, _, err = p.contents.UpdateFile(ctx, opts.Owner, opts.Repo, path, fileOpts)
	}
	if err != nil {
		return "", err
	}
	if out == nil || out.Content == nil {
		return "", nil
	}
	return out.Content.GetHTMLURL(), nil
}

// existingSHA returns the blob SHA of path on the branch, or "" when the
// file does not exist.
func (p *Publisher) existingSHA(ctx context.Context, opts Options, path string) (string, error) {
	file, _, resp, err := p.contents.GetContents(ctx, opts.Owner, opts.Repo, path,
		&github.RepositoryContentGetOptions{Ref: opts.Branch})
	if err != nil {
		if isNotFound(resp, err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up existing file: %w", err)
	}
	if file == nil {
		return "", nil
	}
	return file.GetSHA(), nil
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// CommitMessage is the commit message used for a bundle file.
func CommitMessage(name string) string {
	return fmt.Sprintf("chore: add AKS config %s via AKS Wizard", name)
}
