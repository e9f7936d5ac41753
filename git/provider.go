package git

import (
	"context"
	"fmt"
)

// Pattern: Strategy -- swap the hosting API without
// changing the provisioning flow.

// RepoCreator creates a repository for the
// authenticated user on a git hosting platform.
type RepoCreator interface {
	CreateRepo(
		ctx context.Context,
		req RepositoryRequest,
	) (*Repository, error)
}

// RepoCreatorFunc adapts a plain function to the
// RepoCreator interface.
type RepoCreatorFunc func(
	ctx context.Context,
	req RepositoryRequest,
) (*Repository, error)

// CreateRepo delegates to the wrapped function.
func (f RepoCreatorFunc) CreateRepo(
	ctx context.Context,
	req RepositoryRequest,
) (*Repository, error) {
	return f(ctx, req)
}

// RepositoryRequest describes the repository to
// create. It is built once from configuration and
// never from user credentials.
type RepositoryRequest struct {
	Name        string
	Description string
	Private     bool
	HasIssues   bool
	HasProjects bool
	HasWiki     bool
}

// Repository is the subset of the creation response
// the provisioner consumes.
type Repository struct {
	// HTMLURL is the canonical web URL of the
	// repository.
	HTMLURL string
}

// APIError reports a non-2xx response from the
// hosting API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error formats the status and raw body as
// "<code> - <body>".
func (e *APIError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}
