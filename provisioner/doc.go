// Package provisioner creates a repository on GitHub and links the local
// working copy to it. Provision performs the network phase alone; Run drives
// the whole flow: credential acquisition, repository creation, clone URL
// construction and the git linking state machine, reporting checkpoints
// through a Printer.
package provisioner
