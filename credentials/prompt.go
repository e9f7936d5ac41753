package credentials

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt texts shown by Prompt.
const (
	UsernamePrompt = "Enter your GitHub username: "
	TokenPrompt    = "Enter your GitHub Personal Access Token (PAT): "
)

// Prompt asks for each missing field on Out and reads
// one line per field from In. Input is echoed; use Form
// for masked entry on a terminal. A canceled context
// interrupts a pending read.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	rd *bufio.Reader
	// pending is a read abandoned by a canceled
	// context; the next ask consumes it first.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// Fill prompts for the empty fields of c.
func (p *Prompt) Fill(
	ctx context.Context,
	c *Credentials,
) error {
	const errCtx = "prompting for credentials"

	if p.rd == nil {
		p.rd = bufio.NewReader(p.In)
	}

	if c.Username == "" {
		v, err := p.ask(ctx, UsernamePrompt)
		if err != nil {
			return fmt.Errorf(
				"%s: username: %w", errCtx, err,
			)
		}

		c.Username = v
	}

	if c.Token == "" {
		v, err := p.ask(ctx, TokenPrompt)
		if err != nil {
			return fmt.Errorf(
				"%s: token: %w", errCtx, err,
			)
		}

		c.Token = v
	}

	return nil
}

func (p *Prompt) ask(
	ctx context.Context,
	label string,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.WriteString(p.Out, label); err != nil {
		return "", err
	}

	ch := p.pending
	if ch == nil {
		ch = make(chan readResult, 1)

		go func() {
			line, err := p.rd.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		p.pending = ch

		return "", ctx.Err()
	case res := <-ch:
		p.pending = nil

		if res.err != nil &&
			(res.err != io.EOF || res.line == "") {
			return "", res.err
		}

		return strings.TrimSpace(res.line), nil
	}
}
