package credentials

import (
	"context"
	"os"
)

// Environment variables read by Env.
const (
	UsernameEnv = "REPO_PROVISIONER_USERNAME"
	TokenEnv    = "REPO_PROVISIONER_TOKEN"
	// GitHubTokenEnv is consulted after TokenEnv.
	GitHubTokenEnv = "GITHUB_TOKEN"
)

// Env fills credentials from environment variables.
type Env struct {
	// Lookup reads a variable. Nil means
	// os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// Fill sets empty fields from UsernameEnv and from
// TokenEnv or GitHubTokenEnv.
func (e Env) Fill(_ context.Context, c *Credentials) error {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	first := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				return v
			}
		}

		return ""
	}

	if c.Username == "" {
		c.Username = first(UsernameEnv)
	}

	if c.Token == "" {
		c.Token = first(TokenEnv, GitHubTokenEnv)
	}

	return nil
}
