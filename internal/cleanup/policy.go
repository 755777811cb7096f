package cleanup

import (
	"errors"
	"strings"
)

const (
	noPermanentBranchesMessageConstant = "no permanent branches nominated"
	noRemotesMessageConstant           = "no remotes nominated"
)

// ErrNoPermanentBranches indicates the policy was built without permanent branch names.
var ErrNoPermanentBranches = errors.New(noPermanentBranchesMessageConstant)

// ErrNoRemotes indicates the policy was built without remote names.
var ErrNoRemotes = errors.New(noRemotesMessageConstant)

// Policy captures the branch protection rules for a cleanup run. Permanent
// branches are listed in priority order and the first entry doubles as the
// fallback checkout target when the active branch is deleted.
type Policy struct {
	permanentBranches []string
	remotes           []string
}

// NewPolicy validates and constructs a Policy from the provided names.
func NewPolicy(permanentBranches []string, remotes []string) (Policy, error) {
	sanitizedPermanentBranches := sanitizeNames(permanentBranches)
	if len(sanitizedPermanentBranches) == 0 {
		return Policy{}, ErrNoPermanentBranches
	}

	sanitizedRemotes := sanitizeNames(remotes)
	if len(sanitizedRemotes) == 0 {
		return Policy{}, ErrNoRemotes
	}

	return Policy{permanentBranches: sanitizedPermanentBranches, remotes: sanitizedRemotes}, nil
}

// PermanentBranches reports the protected branch names in priority order.
func (policy Policy) PermanentBranches() []string {
	return policy.permanentBranches
}

// Remotes reports the remote names in priority order.
func (policy Policy) Remotes() []string {
	return policy.remotes
}

// IsPermanent reports whether the branch name is protected from cleanup.
func (policy Policy) IsPermanent(branchName string) bool {
	for _, permanentBranchName := range policy.permanentBranches {
		if permanentBranchName == branchName {
			return true
		}
	}
	return false
}

// FallbackCheckout reports the branch switched to before deleting the active checkout.
func (policy Policy) FallbackCheckout() string {
	return policy.permanentBranches[0]
}

func sanitizeNames(rawNames []string) []string {
	sanitized := make([]string, 0, len(rawNames))
	for _, rawName := range rawNames {
		trimmedName := strings.TrimSpace(rawName)
		if len(trimmedName) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedName)
	}
	return sanitized
}
