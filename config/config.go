package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/repo_provisioner/git"
)

// Default repository fields.
const (
	DefaultName        = "SafeHer"
	DefaultDescription = "Safety education app for iOS built with SwiftUI."
	DefaultRemote      = "origin"
	DefaultBranch      = "main"
	DefaultGitCmd      = "git"
)

// Config is the file layout.
type Config struct {
	Repository Repository `yaml:"repository"`
	GitHub     GitHub     `yaml:"github"`
	Git        Git        `yaml:"git"`
}

// Repository holds the fields sent to the API.
type Repository struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Private     bool   `yaml:"private"`
	HasIssues   bool   `yaml:"has_issues"`
	HasProjects bool   `yaml:"has_projects"`
	HasWiki     bool   `yaml:"has_wiki"`
}

// GitHub selects the API endpoint.
type GitHub struct {
	// EnterpriseHost is a GitHub Enterprise hostname;
	// empty means github.com.
	EnterpriseHost string `yaml:"enterprise_host"`
	// APIURL overrides the REST API root.
	APIURL string `yaml:"api_url"`
	// Timeout bounds the API call; zero waits
	// forever.
	Timeout time.Duration `yaml:"timeout"`
}

// Git configures the local linking phase.
type Git struct {
	Command          string `yaml:"command"`
	Remote           string `yaml:"remote"`
	Branch           string `yaml:"branch"`
	CloneURLTemplate string `yaml:"clone_url_template"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Repository: Repository{
			Name:        DefaultName,
			Description: DefaultDescription,
			Private:     false,
			HasIssues:   true,
			HasProjects: true,
			HasWiki:     true,
		},
		Git: Git{
			Command:          DefaultGitCmd,
			Remote:           DefaultRemote,
			Branch:           DefaultBranch,
			CloneURLTemplate: git.DefaultCloneURLTemplate,
		},
	}
}

// Load reads path over the defaults. An empty path
// returns Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if err := Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return cfg, nil
}

// Decode unmarshals raw into cfg, keeping fields absent
// from raw, and validates the result.
func Decode(raw []byte, cfg *Config) error {
	const errCtx = "decoding config"

	if len(bytes.TrimSpace(raw)) > 0 {
		dec := yaml.NewDecoder(
			bytes.NewReader(raw),
			yaml.DisallowUnknownField(),
		)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Validate reports fields that cannot be empty.
func (c Config) Validate() error {
	var errs []error

	if c.Repository.Name == "" {
		errs = append(errs, errors.New(
			"repository.name must be set",
		))
	}

	if c.Git.Command == "" {
		errs = append(errs, errors.New(
			"git.command must be set",
		))
	}

	if c.Git.Remote == "" {
		errs = append(errs, errors.New(
			"git.remote must be set",
		))
	}

	if c.Git.Branch == "" {
		errs = append(errs, errors.New(
			"git.branch must be set",
		))
	}

	if c.GitHub.Timeout < 0 {
		errs = append(errs, errors.New(
			"github.timeout must not be negative",
		))
	}

	return errors.Join(errs...)
}

// Request builds the repository creation request.
func (c Config) Request() git.RepositoryRequest {
	return git.RepositoryRequest{
		Name:        c.Repository.Name,
		Description: c.Repository.Description,
		Private:     c.Repository.Private,
		HasIssues:   c.Repository.HasIssues,
		HasProjects: c.Repository.HasProjects,
		HasWiki:     c.Repository.HasWiki,
	}
}

// WebHost is the host used in clone URLs.
func (c Config) WebHost() string {
	if c.GitHub.EnterpriseHost != "" {
		return c.GitHub.EnterpriseHost
	}

	return git.DefaultHost
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	const errCtx = "marshaling config"

	by, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return by, nil
}
