// Package git models repository creation on a git hosting platform and links a
// local working copy to the created repository.
//
// The RepoCreator interface abstracts the creation call. The GitHub
// implementation lives in the github sub-package. RepoCreatorFunc is a
// convenience adapter that lets plain functions satisfy the interface.
//
// Linker wraps the local working copy and drives the three git invocations
// (remote add, branch rename, push) as an explicit state machine: a failing
// remote add is tolerated, a failing rename or push is fatal.
package git
