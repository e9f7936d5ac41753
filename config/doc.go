// Package config loads provisioner settings from an optional YAML file. Every
// field defaults to the values the tool was originally built around, so a
// missing file yields a working configuration. Credentials are never read from
// the file.
package config
