package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/repo_provisioner/git"
)

// Config holds the settings needed to create a GitHub
// repository creator.
type Config struct {
	// AccessToken is a personal access token sent as
	// "Authorization: token <AccessToken>".
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// BaseURL overrides the REST API root. It takes
	// precedence over EnterpriseHost.
	BaseURL string
	// HTTPClient is the base client. Nil means a
	// client without timeout.
	HTTPClient *http.Client
}

// Creator creates repositories on GitHub.
//
// Pattern: Strategy -- implements git.RepoCreator.
type Creator struct {
	client *gh.Client
}

// mediaTypeV3 replaces the preview media types
// Repositories.Create sets on its request.
const mediaTypeV3 = "application/vnd.github.v3+json"

// tokenTransport sets the token authorization scheme
// and the v3 media type on every request.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "token "+t.token)
	r.Header.Set("Accept", mediaTypeV3)

	return t.base.RoundTrip(r)
}

// NewCreator validates cfg and returns a Creator
// ready to create repositories.
func NewCreator(cfg Config) (*Creator, error) {
	const errCtx = "creating github creator"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	base := http.DefaultTransport

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		*hc = *cfg.HTTPClient
		if hc.Transport != nil {
			base = hc.Transport
		}
	}

	hc.Transport = &tokenTransport{
		token: cfg.AccessToken,
		base:  base,
	}

	client := gh.NewClient(hc)

	switch {
	case cfg.BaseURL != "":
		u, err := url.Parse(
			strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: base url: %w", errCtx, err,
			)
		}

		client.BaseURL = u

	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Creator{client: client}, nil
}

// CreateRepo creates a repository owned by the
// authenticated user. A non-2xx response is returned as
// a *git.APIError carrying the status and raw body.
func (c *Creator) CreateRepo(
	ctx context.Context,
	req git.RepositoryRequest,
) (*git.Repository, error) {
	const errCtx = "creating github repository"

	repo := &gh.Repository{
		Name:        gh.Ptr(req.Name),
		Description: gh.Ptr(req.Description),
		Private:     gh.Ptr(req.Private),
		HasIssues:   gh.Ptr(req.HasIssues),
		HasProjects: gh.Ptr(req.HasProjects),
		HasWiki:     gh.Ptr(req.HasWiki),
	}

	created, resp, err := c.client.Repositories.Create(
		ctx, "", repo,
	)
	if err != nil {
		if resp != nil && resp.StatusCode/100 != 2 {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, apiError(resp),
			)
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	htmlURL := created.GetHTMLURL()
	if htmlURL == "" {
		return nil, fmt.Errorf(
			"%s: response has no html_url", errCtx,
		)
	}

	slog.Info(
		"created repository",
		"url", htmlURL,
	)

	return &git.Repository{HTMLURL: htmlURL}, nil
}

// apiError reads the raw body go-github re-populates
// after decoding the error response.
func apiError(resp *gh.Response) *git.APIError {
	ae := &git.APIError{StatusCode: resp.StatusCode}

	if resp.Body == nil {
		return ae
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn(
			"cannot read response body",
			"error", err,
		)

		return ae
	}

	ae.Body = string(rb)

	return ae
}
