package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Credentials.Validate.
var (
	ErrMissingUsername = errors.New("username is required")
	ErrMissingToken    = errors.New("token is required")
)

// Credentials identify the account and authorize the
// API call. Username only builds the clone URL; Token
// alone is sent to the API.
type Credentials struct {
	Username string
	Token    string
}

// Complete reports whether both fields are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Token != ""
}

// Validate checks both fields are non-empty.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return ErrMissingUsername
	}

	if c.Token == "" {
		return ErrMissingToken
	}

	return nil
}

// String never reveals the token.
func (c Credentials) String() string {
	tok := ""
	if c.Token != "" {
		tok = "***"
	}

	return fmt.Sprintf("{%s %s}", c.Username, tok)
}

// Source fills the empty fields of c.
type Source interface {
	Fill(ctx context.Context, c *Credentials) error
}

// SourceFunc adapts a plain function to the Source
// interface.
type SourceFunc func(
	ctx context.Context,
	c *Credentials,
) error

// Fill delegates to the wrapped function.
func (f SourceFunc) Fill(
	ctx context.Context,
	c *Credentials,
) error {
	return f(ctx, c)
}

// Resolve runs sources in order until c is complete and
// returns the validated result.
func Resolve(
	ctx context.Context,
	sources ...Source,
) (Credentials, error) {
	const errCtx = "resolving credentials"

	var c Credentials

	for _, src := range sources {
		if c.Complete() {
			break
		}

		if err := ctx.Err(); err != nil {
			return Credentials{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		if err := src.Fill(ctx, &c); err != nil {
			return Credentials{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		c.Username = strings.TrimSpace(c.Username)
		c.Token = strings.TrimSpace(c.Token)
	}

	if err := c.Validate(); err != nil {
		return Credentials{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return c, nil
}
