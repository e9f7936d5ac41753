// Package github implements a git.RepoCreator that creates repositories for the
// authenticated user on GitHub (cloud or enterprise). Configure with a Config
// containing the personal access token. Set EnterpriseHost for GitHub
// Enterprise installations.
package github
