package cleanup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-lost/internal/cleanup"
)

func buildPolicy(testInstance *testing.T, permanentBranches []string, remotes []string) cleanup.Policy {
	testInstance.Helper()
	policy, policyError := cleanup.NewPolicy(permanentBranches, remotes)
	require.NoError(testInstance, policyError)
	return policy
}

func TestAnalyzerPermanentBranchPriority(testInstance *testing.T) {
	analyzer := cleanup.Analyzer{}

	testCases := []struct {
		name              string
		permanentBranches []string
		remotes           []string
		descendants       []string
		expectedTarget    string
	}{
		{
			name:              "first_permanent_wins_over_second",
			permanentBranches: []string{"main", "develop"},
			remotes:           []string{"origin"},
			descendants:       []string{"feature", "develop", "main"},
			expectedTarget:    "main",
		},
		{
			name:              "local_permanent_wins_over_remote_copy",
			permanentBranches: []string{"main"},
			remotes:           []string{"origin"},
			descendants:       []string{"feature", "remotes/origin/main", "main"},
			expectedTarget:    "main",
		},
		{
			name:              "remote_order_breaks_ties",
			permanentBranches: []string{"main"},
			remotes:           []string{"origin", "upstream"},
			descendants:       []string{"feature", "remotes/upstream/main", "remotes/origin/main"},
			expectedTarget:    "remotes/origin/main",
		},
		{
			name:              "higher_priority_permanent_on_remote_beats_lower_priority_local",
			permanentBranches: []string{"main", "develop"},
			remotes:           []string{"origin"},
			descendants:       []string{"feature", "develop", "remotes/origin/main"},
			expectedTarget:    "remotes/origin/main",
		},
		{
			name:              "permanent_wins_over_arbitrary_descendants",
			permanentBranches: []string{"main"},
			remotes:           []string{"origin"},
			descendants:       []string{"feature", "other-topic", "remotes/origin/other", "main"},
			expectedTarget:    "main",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			policy := buildPolicy(testInstance, testCase.permanentBranches, testCase.remotes)
			selection := analyzer.SelectTargets("feature", testCase.descendants, policy, "")
			require.NotNil(testInstance, selection.Permanent)
			require.Equal(testInstance, testCase.expectedTarget, selection.Permanent.TargetRef)
			require.Equal(testInstance, "feature", selection.Permanent.SourceBranch)
			require.Empty(testInstance, selection.Fallback)
		})
	}
}

func TestAnalyzerFallbackOrdering(testInstance *testing.T) {
	analyzer := cleanup.Analyzer{}
	policy := buildPolicy(testInstance, []string{"main"}, []string{"origin"})

	descendants := []string{"feature", "topic-a", "remotes/origin/topic-b", "topic-c", "remotes/upstream/topic-d"}
	selection := analyzer.SelectTargets("feature", descendants, policy, "")

	require.Nil(testInstance, selection.Permanent)
	targetRefs := make([]string, 0, len(selection.Fallback))
	for _, candidate := range selection.Fallback {
		targetRefs = append(targetRefs, candidate.TargetRef)
	}
	require.Equal(testInstance, []string{"remotes/origin/topic-b", "remotes/upstream/topic-d", "topic-a", "topic-c"}, targetRefs)
}

func TestAnalyzerIgnoresBranchItselfAndDuplicates(testInstance *testing.T) {
	analyzer := cleanup.Analyzer{}
	policy := buildPolicy(testInstance, []string{"main"}, []string{"origin"})

	selection := analyzer.SelectTargets("feature", []string{"feature", "topic", "topic"}, policy, "")
	require.Nil(testInstance, selection.Permanent)
	require.Len(testInstance, selection.Fallback, 1)
	require.Equal(testInstance, "topic", selection.Fallback[0].TargetRef)
}

func TestAnalyzerEmptyDescendantsYieldsNoCandidates(testInstance *testing.T) {
	analyzer := cleanup.Analyzer{}
	policy := buildPolicy(testInstance, []string{"main"}, []string{"origin"})

	selection := analyzer.SelectTargets("feature", []string{"feature"}, policy, "")
	require.Nil(testInstance, selection.Permanent)
	require.Empty(testInstance, selection.Fallback)
}

func TestAnalyzerExcludesUpstreamCopiesOfActiveBranch(testInstance *testing.T) {
	analyzer := cleanup.Analyzer{}
	policy := buildPolicy(testInstance, []string{"main"}, []string{"origin"})

	descendants := []string{"feature", "remotes/origin/feature", "remotes/upstream/feature", "topic"}

	activeSelection := analyzer.SelectTargets("feature", descendants, policy, "feature")
	activeTargets := make([]string, 0, len(activeSelection.Fallback))
	for _, candidate := range activeSelection.Fallback {
		activeTargets = append(activeTargets, candidate.TargetRef)
	}
	require.Equal(testInstance, []string{"topic"}, activeTargets)

	inactiveSelection := analyzer.SelectTargets("feature", descendants, policy, "main")
	require.Len(testInstance, inactiveSelection.Fallback, 3)
}
