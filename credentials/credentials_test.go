package credentials_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/repo_provisioner/credentials"
)

func fixed(c credentials.Credentials) credentials.Source {
	return credentials.SourceFunc(
		func(_ context.Context, dst *credentials.Credentials) error {
			if dst.Username == "" {
				dst.Username = c.Username
			}

			if dst.Token == "" {
				dst.Token = c.Token
			}

			return nil
		},
	)
}

func TestCredentials_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		creds   credentials.Credentials
		wantErr error
	}{
		{
			name:  "complete",
			creds: credentials.Credentials{Username: "u", Token: "t"},
		},
		{
			name:    "missing username",
			creds:   credentials.Credentials{Token: "t"},
			wantErr: credentials.ErrMissingUsername,
		},
		{
			name:    "missing token",
			creds:   credentials.Credentials{Username: "u"},
			wantErr: credentials.ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.creds.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCredentials_String_hides_token(t *testing.T) {
	t.Parallel()

	c := credentials.Credentials{Username: "alice", Token: "ghp_secret"}

	assert.NotContains(t, c.String(), "ghp_secret")
	assert.Contains(t, c.String(), "alice")
}

func TestResolve_first_complete_source_wins(t *testing.T) {
	t.Parallel()

	called := false
	second := credentials.SourceFunc(
		func(_ context.Context, _ *credentials.Credentials) error {
			called = true

			return nil
		},
	)

	got, err := credentials.Resolve(
		context.Background(),
		fixed(credentials.Credentials{Username: "alice", Token: "tok"}),
		second,
	)

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, called)
}

func TestResolve_merges_partial_sources(t *testing.T) {
	t.Parallel()

	got, err := credentials.Resolve(
		context.Background(),
		fixed(credentials.Credentials{Token: " tok "}),
		fixed(credentials.Credentials{Username: "bob", Token: "other"}),
	)

	require.NoError(t, err)
	assert.Equal(t, credentials.Credentials{
		Username: "bob",
		Token:    "tok",
	}, got)
}

func TestResolve_incomplete(t *testing.T) {
	t.Parallel()

	_, err := credentials.Resolve(
		context.Background(),
		fixed(credentials.Credentials{Username: "bob"}),
	)

	assert.ErrorIs(t, err, credentials.ErrMissingToken)
}

func TestResolve_source_error(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	_, err := credentials.Resolve(
		context.Background(),
		credentials.SourceFunc(
			func(_ context.Context, _ *credentials.Credentials) error {
				return errBoom
			},
		),
	)

	assert.ErrorIs(t, err, errBoom)
}

func TestResolve_canceled_context(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := credentials.Resolve(
		ctx,
		fixed(credentials.Credentials{Username: "u", Token: "t"}),
	)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnv_Fill(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		credentials.UsernameEnv:    "alice",
		credentials.GitHubTokenEnv: "gh-tok",
	}

	src := credentials.Env{
		Lookup: func(k string) (string, bool) {
			v, ok := env[k]

			return v, ok
		},
	}

	var c credentials.Credentials

	require.NoError(t, src.Fill(context.Background(), &c))
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, "gh-tok", c.Token)
}

func TestEnv_Fill_prefers_own_token_and_keeps_set_fields(
	t *testing.T,
) {
	t.Parallel()

	env := map[string]string{
		credentials.UsernameEnv:    "alice",
		credentials.TokenEnv:       "own",
		credentials.GitHubTokenEnv: "gh-tok",
	}

	src := credentials.Env{
		Lookup: func(k string) (string, bool) {
			v, ok := env[k]

			return v, ok
		},
	}

	c := credentials.Credentials{Username: "preset"}

	require.NoError(t, src.Fill(context.Background(), &c))
	assert.Equal(t, "preset", c.Username)
	assert.Equal(t, "own", c.Token)
}

func TestPrompt_Fill(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	p := &credentials.Prompt{
		In:  strings.NewReader("  alice \nghp_123\n"),
		Out: &out,
	}

	var c credentials.Credentials

	require.NoError(t, p.Fill(context.Background(), &c))
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, "ghp_123", c.Token)
	assert.Equal(
		t,
		credentials.UsernamePrompt+credentials.TokenPrompt,
		out.String(),
	)
}

func TestPrompt_Fill_only_missing_fields(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	p := &credentials.Prompt{
		In:  strings.NewReader("ghp_123"),
		Out: &out,
	}

	c := credentials.Credentials{Username: "alice"}

	require.NoError(t, p.Fill(context.Background(), &c))
	assert.Equal(t, "ghp_123", c.Token)
	assert.Equal(t, credentials.TokenPrompt, out.String())
}

func TestPrompt_Fill_eof(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	p := &credentials.Prompt{
		In:  strings.NewReader("alice\n"),
		Out: &out,
	}

	var c credentials.Credentials

	err := p.Fill(context.Background(), &c)

	assert.ErrorContains(t, err, "token")
}

func TestForm_Fill_complete_is_noop(t *testing.T) {
	t.Parallel()

	c := credentials.Credentials{Username: "u", Token: "t"}

	require.NoError(
		t, credentials.Form{}.Fill(context.Background(), &c),
	)
	assert.Nil(t, credentials.BuildFormForTest(credentials.Form{}, &c))
}

func TestForm_build_missing_fields(t *testing.T) {
	t.Parallel()

	c := credentials.Credentials{Username: "u"}

	assert.NotNil(t, credentials.BuildFormForTest(credentials.Form{}, &c))
}

func TestRequired(t *testing.T) {
	t.Parallel()

	check := credentials.RequiredForTest("token")

	assert.NoError(t, check("x"))
	assert.ErrorContains(t, check("   "), "token cannot be empty")
}

func TestPrompt_Fill_canceled_while_reading(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close() //nolint:errcheck

	p := &credentials.Prompt{In: pr, Out: io.Discard}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		var c credentials.Credentials

		done <- p.Fill(ctx, &c)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "username")
	case <-time.After(2 * time.Second):
		t.Fatal("Fill still blocked after cancel")
	}
}

func TestPrompt_Fill_canceled_before_token(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &credentials.Prompt{
		In:  strings.NewReader("ghp_123\n"),
		Out: &out,
	}

	c := credentials.Credentials{Username: "alice"}

	err := p.Fill(ctx, &c)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.Token)
	assert.Empty(t, out.String())
}

func TestPrompt_Fill_abandoned_read_is_reused(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close() //nolint:errcheck

	p := &credentials.Prompt{In: pr, Out: io.Discard}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var c credentials.Credentials

	require.ErrorIs(t, p.Fill(ctx, &c), context.Canceled)

	go func() {
		_, _ = io.WriteString(pw, "alice\nghp_123\n")
	}()

	require.NoError(t, p.Fill(context.Background(), &c))
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, "ghp_123", c.Token)
}
