package provisioner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/byte4ever/repo_provisioner/credentials"
	"github.com/byte4ever/repo_provisioner/git"
)

// CreatorFactory builds a RepoCreator authorized with
// the resolved credentials.
type CreatorFactory func(
	c credentials.Credentials,
) (git.RepoCreator, error)

// Config holds all settings for a provisioning run.
type Config struct {
	// Request describes the repository to create.
	Request git.RepositoryRequest

	// Sources acquire credentials, tried in order.
	Sources []credentials.Source

	// NewCreator builds the API client from the
	// credentials.
	NewCreator CreatorFactory

	// Linker links the working copy. Nil selects a
	// Linker with default settings.
	Linker *git.Linker

	// CloneURLTemplate and WebHost build the remote
	// URL; see git.CloneURL.
	CloneURLTemplate string
	WebHost          string

	// Timeout bounds the API call. Zero waits
	// forever.
	Timeout time.Duration

	// Printer reports checkpoints. Nil prints text
	// to stdout.
	Printer Printer
}

// Confirmation is the result of a successful
// repository creation.
type Confirmation struct {
	HTMLURL string
}

// Report summarizes a run.
type Report struct {
	HTMLURL     string        `json:"html_url,omitempty"`
	CloneURL    string        `json:"clone_url,omitempty"`
	State       git.LinkState `json:"state"`
	RemoteError string        `json:"remote_error,omitempty"`
	StatusCode  int           `json:"status_code,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Provision creates the repository described by req.
// It performs no local git operation.
func Provision(
	ctx context.Context,
	creator git.RepoCreator,
	req git.RepositoryRequest,
) (*Confirmation, error) {
	const errCtx = "creating repository"

	if req.Name == "" {
		return nil, fmt.Errorf(
			"%s: name must be set", errCtx,
		)
	}

	repo, err := creator.CreateRepo(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Confirmation{HTMLURL: repo.HTMLURL}, nil
}

// Run executes the provisioning flow. Every failure is
// reported through the Printer and returned. When the
// API call fails no git command is run.
func Run(ctx context.Context, cfg Config) (Report, error) {
	const errCtx = "provisioning repository"

	pr := cfg.Printer
	if pr == nil {
		pr = NewTextPrinter(os.Stdout)
	}

	rep := Report{State: git.LinkPending}

	pr.Start()

	err := run(ctx, cfg, pr, &rep)
	if err != nil {
		var apiErr *git.APIError
		if errors.As(err, &apiErr) {
			rep.StatusCode = apiErr.StatusCode
		}

		rep.Error = err.Error()

		pr.Failed(err)
	} else {
		pr.Done()
	}

	if fErr := pr.Finish(rep); fErr != nil && err == nil {
		err = fErr
	}

	if err != nil {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	return rep, nil
}

func run(
	ctx context.Context,
	cfg Config,
	pr Printer,
	rep *Report,
) error {
	if cfg.NewCreator == nil {
		return errors.New("no creator factory configured")
	}

	creds, err := credentials.Resolve(ctx, cfg.Sources...)
	if err != nil {
		return err
	}

	creator, err := cfg.NewCreator(creds)
	if err != nil {
		return err
	}

	conf, err := provision(ctx, cfg, creator)
	if err != nil {
		return err
	}

	rep.HTMLURL = conf.HTMLURL
	pr.Created(conf.HTMLURL)

	cloneURL, err := git.CloneURL(
		cfg.CloneURLTemplate,
		cfg.WebHost,
		creds.Username,
		cfg.Request.Name,
	)
	if err != nil {
		return err
	}

	rep.CloneURL = cloneURL
	pr.Linking(cloneURL)

	ln := cfg.Linker
	if ln == nil {
		ln = &git.Linker{}
	}

	res, err := ln.Link(ctx, cloneURL)

	rep.State = res.State
	if res.RemoteErr != nil {
		rep.RemoteError = res.RemoteErr.Error()
	}

	return err
}

// provision applies the API timeout around Provision.
func provision(
	ctx context.Context,
	cfg Config,
	creator git.RepoCreator,
) (*Confirmation, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	return Provision(ctx, creator, cfg.Request)
}
