// Command repo_provisioner creates a GitHub repository for the authenticated
// user and pushes the current working copy to it. A plain invocation asks for
// the username and personal access token, then runs the whole flow.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/byte4ever/repo_provisioner/config"
	"github.com/byte4ever/repo_provisioner/credentials"
	"github.com/byte4ever/repo_provisioner/exec"
	"github.com/byte4ever/repo_provisioner/git"
	"github.com/byte4ever/repo_provisioner/git/github"
	"github.com/byte4ever/repo_provisioner/provisioner"
)

// options bundles the root command flags.
type options struct {
	configPath string
	dir        string
	output     string
	plain      bool
	noEnv      bool
	timeout    time.Duration
	// timeoutSet is true when --timeout was given.
	timeoutSet bool
}

// streams are the process stdio, replaceable for
// tests.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	isTTY  bool
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	st := streams{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		isTTY:  term.IsTerminal(int(os.Stdin.Fd())),
	}

	if err := newRootCmd(st).ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "error", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

func newRootCmd(st streams) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "repo_provisioner",
		Short: "Create a GitHub repository and push the working copy to it",
		Args:  cobra.NoArgs,
		// Failures are already reported by the
		// printer.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.timeoutSet = cmd.Flags().Changed("timeout")

			return runProvision(cmd.Context(), st, opts)
		},
	}

	fl := root.PersistentFlags()
	fl.StringVar(
		&opts.configPath, "config", "",
		"YAML configuration file",
	)

	rf := root.Flags()
	rf.StringVar(
		&opts.dir, "dir", "",
		"Working copy to link (default: current directory)",
	)
	rf.StringVar(
		&opts.output, "output", "text",
		"Output format: text or json",
	)
	rf.BoolVar(
		&opts.plain, "plain", false,
		"Use line prompts instead of the interactive form",
	)
	rf.BoolVar(
		&opts.noEnv, "no-env", false,
		"Do not read credentials from the environment",
	)
	rf.DurationVar(
		&opts.timeout, "timeout", 0,
		"API call timeout (e.g. 30s); overrides the config file",
	)

	root.AddCommand(newConfigCmd(st, &opts))

	return root
}

func newConfigCmd(st streams, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			const errCtx = "showing config"

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			by, err := cfg.Marshal()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if _, err := st.out.Write(by); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return nil
		},
	}
}

func runProvision(
	ctx context.Context,
	st streams,
	opts options,
) error {
	const errCtx = "running repo_provisioner"

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if opts.timeoutSet {
		cfg.GitHub.Timeout = opts.timeout

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	printer, err := newPrinter(opts.output, st.out)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	pcfg := provisioner.Config{
		Request:    cfg.Request(),
		Sources:    credentialSources(st, opts),
		NewCreator: creatorFactory(cfg.GitHub),
		Linker: &git.Linker{
			Runner:     exec.Default,
			Dir:        opts.dir,
			GitCmd:     cfg.Git.Command,
			RemoteName: cfg.Git.Remote,
			Branch:     cfg.Git.Branch,
		},
		CloneURLTemplate: cfg.Git.CloneURLTemplate,
		WebHost:          cfg.WebHost(),
		Timeout:          cfg.GitHub.Timeout,
		Printer:          printer,
	}

	if _, err := provisioner.Run(ctx, pcfg); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// newPrinter selects the output format. Pattern:
// Factory -- selects printer implementation at runtime.
func newPrinter(
	format string,
	w io.Writer,
) (provisioner.Printer, error) {
	switch format {
	case "text":
		return provisioner.NewTextPrinter(w), nil
	case "json":
		return provisioner.NewJSONPrinter(w), nil
	default:
		return nil, fmt.Errorf(
			"unknown output format %q", format,
		)
	}
}

// credentialSources orders the environment before the
// interactive prompt. The huh form is only used on a
// terminal.
func credentialSources(
	st streams,
	opts options,
) []credentials.Source {
	var sources []credentials.Source

	if !opts.noEnv {
		sources = append(sources, credentials.Env{})
	}

	// Keep stdout a single document in json mode.
	out := st.out
	if opts.output == "json" {
		out = st.errOut
	}

	if st.isTTY && !opts.plain {
		return append(sources, credentials.Form{Out: out})
	}

	return append(sources, &credentials.Prompt{
		In:  st.in,
		Out: out,
	})
}

func creatorFactory(
	gh config.GitHub,
) provisioner.CreatorFactory {
	return func(
		c credentials.Credentials,
	) (git.RepoCreator, error) {
		cr, err := github.NewCreator(github.Config{
			AccessToken:    c.Token,
			EnterpriseHost: gh.EnterpriseHost,
			BaseURL:        gh.APIURL,
		})
		if err != nil {
			return nil, err
		}

		return cr, nil
	}
}
