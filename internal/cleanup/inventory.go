package cleanup

import (
	"fmt"
	"strings"

	"github.com/temirov/git-lost/internal/gitrepo"
)

const (
	localReferencePrefixConstant               = "refs/heads/"
	tagReferencePrefixConstant                 = "refs/tags/"
	remoteReferencePrefixConstant              = "refs/remotes/"
	stashReferenceNameConstant                 = "refs/stash"
	remoteHeadPointerNameConstant              = "HEAD"
	remoteReferenceSeparatorConstant           = "/"
	unexpectedReferenceMessageTemplateConstant = "unexpected reference %q"
	malformedRemoteReferenceTemplateConstant   = "malformed remote reference %q"
)

// UnexpectedReferenceError reports a reference that could not be classified.
type UnexpectedReferenceError struct {
	ReferenceName string
}

// Error describes the unclassifiable reference.
func (classificationError UnexpectedReferenceError) Error() string {
	return fmt.Sprintf(unexpectedReferenceMessageTemplateConstant, classificationError.ReferenceName)
}

// RefInventory is an immutable snapshot of repository references classified
// into local branches, remote branches grouped by remote, and tags. It is
// built once per run and never updated as deletions happen.
type RefInventory struct {
	localBranches      []string
	localBranchCommits map[string]string
	remoteBranches     map[string][]string
	tags               []string
}

// BuildInventory classifies listed references into an inventory snapshot.
// The stash reference and each remote's HEAD pointer are skipped; any other
// reference outside the local, remote, and tag namespaces is an error.
func BuildInventory(listedReferences []gitrepo.ListedReference) (*RefInventory, error) {
	inventory := &RefInventory{
		localBranchCommits: map[string]string{},
		remoteBranches:     map[string][]string{},
	}

	for _, listedReference := range listedReferences {
		referenceName := listedReference.Name
		switch {
		case referenceName == stashReferenceNameConstant:
			continue
		case strings.HasPrefix(referenceName, localReferencePrefixConstant):
			branchName := strings.TrimPrefix(referenceName, localReferencePrefixConstant)
			inventory.localBranches = append(inventory.localBranches, branchName)
			inventory.localBranchCommits[branchName] = listedReference.Commit
		case strings.HasPrefix(referenceName, tagReferencePrefixConstant):
			inventory.tags = append(inventory.tags, strings.TrimPrefix(referenceName, tagReferencePrefixConstant))
		case strings.HasPrefix(referenceName, remoteReferencePrefixConstant):
			qualifiedName := strings.TrimPrefix(referenceName, remoteReferencePrefixConstant)
			remoteName, branchName, splitFound := strings.Cut(qualifiedName, remoteReferenceSeparatorConstant)
			if !splitFound {
				return nil, fmt.Errorf(malformedRemoteReferenceTemplateConstant, referenceName)
			}
			if branchName == remoteHeadPointerNameConstant {
				continue
			}
			inventory.remoteBranches[remoteName] = append(inventory.remoteBranches[remoteName], branchName)
		default:
			return nil, UnexpectedReferenceError{ReferenceName: referenceName}
		}
	}

	return inventory, nil
}

// LocalBranches reports local branch names in snapshot order.
func (inventory *RefInventory) LocalBranches() []string {
	return inventory.localBranches
}

// LocalBranchCommit reports the snapshot commit of a local branch.
func (inventory *RefInventory) LocalBranchCommit(branchName string) (string, bool) {
	commitIdentifier, branchFound := inventory.localBranchCommits[branchName]
	return commitIdentifier, branchFound
}

// HasLocalBranch reports whether the local branch was present in the snapshot.
func (inventory *RefInventory) HasLocalBranch(branchName string) bool {
	_, branchFound := inventory.localBranchCommits[branchName]
	return branchFound
}

// RemoteBranches reports the branch names recorded for the remote in snapshot order.
func (inventory *RefInventory) RemoteBranches(remoteName string) []string {
	return inventory.remoteBranches[remoteName]
}

// RemoteHasBranch reports whether the remote recorded the branch in the snapshot.
func (inventory *RefInventory) RemoteHasBranch(remoteName string, branchName string) bool {
	for _, recordedBranchName := range inventory.remoteBranches[remoteName] {
		if recordedBranchName == branchName {
			return true
		}
	}
	return false
}

// Tags reports tag names in snapshot order.
func (inventory *RefInventory) Tags() []string {
	return inventory.tags
}
