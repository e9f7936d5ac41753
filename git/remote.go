package git

import (
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultHost is the web host used in clone URLs.
	DefaultHost = "github.com"
	// DefaultCloneURLTemplate builds an HTTPS remote
	// URL from {host}, {owner} and {repo}.
	DefaultCloneURLTemplate = "https://{host}/{owner}/{repo}.git"
)

// CloneURL substitutes {host}, {owner} and {repo} in
// tpl. An empty tpl selects DefaultCloneURLTemplate and
// an empty host selects DefaultHost. Unknown
// placeholders are preserved as-is.
func CloneURL(
	tpl string,
	host string,
	owner string,
	repo string,
) (string, error) {
	const errCtx = "building clone url"

	if owner == "" {
		return "", fmt.Errorf(
			"%s: owner must be set", errCtx,
		)
	}

	if repo == "" {
		return "", fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	if tpl == "" {
		tpl = DefaultCloneURLTemplate
	}

	if host == "" {
		host = DefaultHost
	}

	if !strings.Contains(tpl, "{owner}") ||
		!strings.Contains(tpl, "{repo}") {
		return "", fmt.Errorf(
			"%s: template %q must reference {owner} and {repo}",
			errCtx, tpl,
		)
	}

	return fasttemplate.ExecuteStringStd(
		tpl, "{", "}",
		map[string]interface{}{
			"host":  host,
			"owner": owner,
			"repo":  repo,
		},
	), nil
}
