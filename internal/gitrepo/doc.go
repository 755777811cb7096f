// Package gitrepo provides repository-level git operations built on the shell
// executor, along with an in-process reference reader backed by go-git.
package gitrepo
