package git_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/repo_provisioner/git"
)

func TestRepoCreatorFunc_CreateRepo_passes_request(
	t *testing.T,
) {
	t.Parallel()

	var got git.RepositoryRequest

	fn := git.RepoCreatorFunc(
		func(
			_ context.Context,
			req git.RepositoryRequest,
		) (*git.Repository, error) {
			got = req

			return &git.Repository{
				HTMLURL: "https://github.com/u/" + req.Name,
			}, nil
		},
	)

	req := git.RepositoryRequest{
		Name:      "SafeHer",
		HasIssues: true,
	}

	repo, err := fn.CreateRepo(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.Equal(t, "https://github.com/u/SafeHer", repo.HTMLURL)
}

func TestRepoCreatorFunc_CreateRepo_returns_error(
	t *testing.T,
) {
	t.Parallel()

	errTest := errors.New("test error")

	fn := git.RepoCreatorFunc(
		func(
			_ context.Context,
			_ git.RepositoryRequest,
		) (*git.Repository, error) {
			return nil, errTest
		},
	)

	_, err := fn.CreateRepo(
		context.Background(), git.RepositoryRequest{},
	)

	assert.ErrorIs(t, err, errTest)
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &git.APIError{
		StatusCode: 422,
		Body:       `{"message":"name already exists"}`,
	}

	assert.Equal(
		t,
		`422 - {"message":"name already exists"}`,
		err.Error(),
	)
}

func TestAPIError_errors_as_through_wrap(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf(
		"creating repository: %w",
		&git.APIError{StatusCode: 401, Body: "bad creds"},
	)

	var apiErr *git.APIError

	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}
