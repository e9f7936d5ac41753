package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Form asks for missing fields with an interactive huh
// form. The token field does not echo its input.
type Form struct {
	// Out receives the rendered form. Nil means
	// stdout.
	Out io.Writer
}

// Fill runs the form for the empty fields of c. It does
// nothing when c is already complete.
func (f Form) Fill(ctx context.Context, c *Credentials) error {
	const errCtx = "running credentials form"

	form := f.build(c)
	if form == nil {
		return nil
	}

	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	c.Username = strings.TrimSpace(c.Username)
	c.Token = strings.TrimSpace(c.Token)

	return nil
}

// build returns nil when there is nothing to ask.
func (f Form) build(c *Credentials) *huh.Form {
	var fields []huh.Field

	if c.Username == "" {
		fields = append(fields,
			huh.NewInput().
				Title("GitHub username").
				Value(&c.Username).
				Validate(required("username")),
		)
	}

	if c.Token == "" {
		fields = append(fields,
			huh.NewInput().
				Title("GitHub Personal Access Token (PAT)").
				EchoMode(huh.EchoModePassword).
				Value(&c.Token).
				Validate(required("token")),
		)
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(fields...).
			Title("GitHub Repository Creator"),
	).
		WithTheme(huh.ThemeCatppuccin())

	if f.Out != nil {
		form = form.WithOutput(f.Out)
	}

	return form
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " cannot be empty")
		}

		return nil
	}
}
