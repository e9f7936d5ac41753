package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/byte4ever/repo_provisioner/exec"
)

// Errors returned by Linker.Link for its fatal stages.
var (
	ErrRenameBranch = errors.New("renaming branch")
	ErrPush         = errors.New("pushing branch")
)

// LinkState is how far Linker.Link progressed.
type LinkState int

// Link states in the order they are reached.
const (
	LinkPending LinkState = iota
	// RemoteConfigured means the remote was added or
	// was already present.
	RemoteConfigured
	BranchRenamed
	Pushed
)

// String returns the state name.
func (s LinkState) String() string {
	switch s {
	case LinkPending:
		return "pending"
	case RemoteConfigured:
		return "remote-configured"
	case BranchRenamed:
		return "renamed"
	case Pushed:
		return "pushed"
	default:
		return fmt.Sprintf("LinkState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s LinkState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LinkResult records the outcome of Linker.Link.
type LinkResult struct {
	// State is the last state reached.
	State LinkState
	// RemoteURL is the URL configured for the
	// remote.
	RemoteURL string
	// RemoteErr holds the tolerated remote add
	// failure, if any.
	RemoteErr error
}

// Linker links a local working copy to a remote
// repository.
type Linker struct {
	// Runner executes git. Nil selects exec.Default.
	Runner exec.Runner
	// Dir is the working copy; empty means the
	// current directory.
	Dir string
	// GitCmd is the git binary; empty means "git".
	GitCmd string
	// RemoteName defaults to "origin".
	RemoteName string
	// Branch is the local branch name to push;
	// defaults to "main".
	Branch string
}

// Link adds remoteURL as the remote, renames the
// current branch and pushes it with upstream tracking.
// A failing remote add is logged and ignored. A failing
// rename stops before the push.
func (l *Linker) Link(
	ctx context.Context,
	remoteURL string,
) (LinkResult, error) {
	const errCtx = "linking working copy"

	res := LinkResult{
		State:     LinkPending,
		RemoteURL: remoteURL,
	}

	remote := l.remoteName()
	branch := l.branch()

	if _, err := l.git(
		ctx, "remote", "add", remote, remoteURL,
	); err != nil {
		slog.Warn(
			"ignoring remote add failure",
			"remote", remote,
			"error", err,
		)

		res.RemoteErr = err
	}

	res.State = RemoteConfigured

	if _, err := l.git(
		ctx, "branch", "-M", branch,
	); err != nil {
		return res, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrRenameBranch, err,
		)
	}

	res.State = BranchRenamed

	if _, err := l.git(
		ctx, "push", "-u", remote, branch,
	); err != nil {
		return res, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrPush, err,
		)
	}

	res.State = Pushed

	return res, nil
}

func (l *Linker) git(
	ctx context.Context,
	arg ...string,
) (string, error) {
	runner := l.Runner
	if runner == nil {
		runner = exec.Default
	}

	cmd := l.GitCmd
	if cmd == "" {
		cmd = "git"
	}

	return runner.Run(ctx, l.Dir, cmd, arg...)
}

func (l *Linker) remoteName() string {
	if l.RemoteName == "" {
		return "origin"
	}

	return l.RemoteName
}

func (l *Linker) branch() string {
	if l.Branch == "" {
		return "main"
	}

	return l.Branch
}
