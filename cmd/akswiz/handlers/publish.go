package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/publish"
	"github.com/imamik/akswiz/internal/templates"
)

// TokenEnv is the environment variable read when --token is not given.
const TokenEnv = "GITHUB_TOKEN"

// filePublisher saves files to a remote repository.
type filePublisher interface {
	Save(ctx context.Context, opts publish.Options, files []templates.File) publish.Result
}

// newPublisher creates the remote publisher - can be replaced in tests.
var newPublisher = func(token string) (filePublisher, error) {
	return publish.New(token)
}

// PublishOptions holds the publish command flags.
type PublishOptions struct {
	ConfigPath string
	Sets       []string
	Owner      string
	Repo       string
	Branch     string
	Folder     string
	Token      string
	Only       []string
}

// Publish generates the bundle and saves it to a GitHub repository, one
// commit per file.
func Publish(ctx context.Context, o PublishOptions) error {
	log := logging.FromContext(ctx).WithName("publish")

	token := strings.TrimSpace(o.Token)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(TokenEnv))
	}
	p, err := newPublisher(token)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(o.ConfigPath, o.Sets)
	if err != nil {
		return err
	}
	files, err := templates.Select(templates.Bundle(cfg), o.Only...)
	if err != nil {
		return err
	}

	opts := publish.Options{Owner: o.Owner, Repo: o.Repo, Branch: o.Branch, Folder: o.Folder}
	log.V(1).Info("publishing", "owner", o.Owner, "repo", o.Repo, "files", len(files))

	res := p.Save(ctx, opts, files)
	for _, u := range res.URLs {
		fmt.Printf("  %s %s\n", greenStyle.Render("✓"), u)
	}
	if !res.Success {
		return res.Err
	}
	fmt.Printf("\nSaved %d files to %s/%s\n", len(files), o.Owner, o.Repo)
	return nil
}
