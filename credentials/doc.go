// Package credentials acquires the GitHub username and personal access token
// used by a provisioning run. Values live in memory only.
//
// A Source fills whichever fields are still empty. Env reads environment
// variables, Prompt asks line by line on a reader/writer pair, and Form shows
// an interactive huh form with a non-echoing token field. Resolve runs sources
// in order until both fields are set.
package credentials
