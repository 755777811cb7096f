package cleanup

import "strings"

const (
	remoteCandidatePrefixConstant = "remotes/"
)

// MergeCandidate pairs a branch with one reference it is merged into.
type MergeCandidate struct {
	SourceBranch string
	TargetRef    string
}

// TargetSelection captures the analyzer's outcome for one branch. A permanent
// target is authoritative and produces at most one prompt; fallback candidates
// are offered in order until one is accepted.
type TargetSelection struct {
	Permanent *MergeCandidate
	Fallback  []MergeCandidate
}

// Analyzer picks merge targets for a branch from its descendant references.
type Analyzer struct{}

// SelectTargets applies the permanent-branch priority pass and the fallback
// pass to the descendants of branchName. Descendants are ref names reported by
// the ancestry query, with remote branches carrying their remotes/ prefix; the
// branch itself is ignored. When branchName is the active checkout, its own
// upstream copies are never offered as targets, since deleting a branch whose
// only descendant is its own pushed copy would lose the local checkout.
func (analyzer Analyzer) SelectTargets(branchName string, descendants []string, policy Policy, activeBranch string) TargetSelection {
	descendantSet := map[string]struct{}{}
	orderedDescendants := make([]string, 0, len(descendants))
	for _, descendantName := range descendants {
		if descendantName == branchName {
			continue
		}
		if branchName == activeBranch && analyzer.isUpstreamCopy(descendantName, branchName) {
			continue
		}
		if _, alreadySeen := descendantSet[descendantName]; alreadySeen {
			continue
		}
		descendantSet[descendantName] = struct{}{}
		orderedDescendants = append(orderedDescendants, descendantName)
	}

	for _, permanentBranchName := range policy.PermanentBranches() {
		if _, containsLocal := descendantSet[permanentBranchName]; containsLocal {
			return TargetSelection{Permanent: &MergeCandidate{SourceBranch: branchName, TargetRef: permanentBranchName}}
		}
		for _, remoteName := range policy.Remotes() {
			qualifiedName := remoteCandidatePrefixConstant + remoteName + "/" + permanentBranchName
			if _, containsRemote := descendantSet[qualifiedName]; containsRemote {
				return TargetSelection{Permanent: &MergeCandidate{SourceBranch: branchName, TargetRef: qualifiedName}}
			}
		}
	}

	fallbackCandidates := []MergeCandidate{}
	for _, descendantName := range orderedDescendants {
		if strings.HasPrefix(descendantName, remoteCandidatePrefixConstant) {
			fallbackCandidates = append(fallbackCandidates, MergeCandidate{SourceBranch: branchName, TargetRef: descendantName})
		}
	}
	for _, descendantName := range orderedDescendants {
		if !strings.HasPrefix(descendantName, remoteCandidatePrefixConstant) {
			fallbackCandidates = append(fallbackCandidates, MergeCandidate{SourceBranch: branchName, TargetRef: descendantName})
		}
	}

	return TargetSelection{Fallback: fallbackCandidates}
}

func (analyzer Analyzer) isUpstreamCopy(descendantName string, branchName string) bool {
	if !strings.HasPrefix(descendantName, remoteCandidatePrefixConstant) {
		return false
	}
	qualifiedName := strings.TrimPrefix(descendantName, remoteCandidatePrefixConstant)
	_, remoteBranchName, splitFound := strings.Cut(qualifiedName, "/")
	return splitFound && remoteBranchName == branchName
}
