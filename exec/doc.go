// Package exec runs external commands for the provisioner. Ex executes a
// command and returns its combined output; Runner abstracts execution so the
// git linking phase can be exercised without spawning real processes.
package exec
