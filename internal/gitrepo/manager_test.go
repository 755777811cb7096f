package gitrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-lost/internal/execshell"
	"github.com/temirov/git-lost/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/tmp/repository"
	testBranchNameConstant     = "feature/login"
)

type scriptedGitExecutor struct {
	results          []execshell.ExecutionResult
	executionErrors  []error
	recordedCommands []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	callIndex := len(executor.recordedCommands)
	executor.recordedCommands = append(executor.recordedCommands, details)

	var executionError error
	if callIndex < len(executor.executionErrors) {
		executionError = executor.executionErrors[callIndex]
	}
	var executionResult execshell.ExecutionResult
	if callIndex < len(executor.results) {
		executionResult = executor.results[callIndex]
	}
	return executionResult, executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestRepositoryManagerListReferences(testInstance *testing.T) {
	testCases := []struct {
		name               string
		standardOutput     string
		expectedReferences []gitrepo.ListedReference
		expectError        bool
	}{
		{
			name: "classified_output",
			standardOutput: "1111111111111111111111111111111111111111 refs/heads/main\n" +
				"2222222222222222222222222222222222222222 refs/remotes/origin/main\n" +
				"3333333333333333333333333333333333333333 refs/tags/v1.0.0\n",
			expectedReferences: []gitrepo.ListedReference{
				{Commit: "1111111111111111111111111111111111111111", Name: "refs/heads/main"},
				{Commit: "2222222222222222222222222222222222222222", Name: "refs/remotes/origin/main"},
				{Commit: "3333333333333333333333333333333333333333", Name: "refs/tags/v1.0.0"},
			},
		},
		{
			name:               "blank_lines_ignored",
			standardOutput:     "\n1111111111111111111111111111111111111111 refs/heads/main\n\n",
			expectedReferences: []gitrepo.ListedReference{{Commit: "1111111111111111111111111111111111111111", Name: "refs/heads/main"}},
		},
		{
			name:           "malformed_line",
			standardOutput: "not-a-reference-line\n",
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: testCase.standardOutput}}}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			listedReferences, listError := manager.ListReferences(context.Background(), testRepositoryPathConstant)
			if testCase.expectError {
				require.Error(testInstance, listError)
				return
			}
			require.NoError(testInstance, listError)
			require.Equal(testInstance, testCase.expectedReferences, listedReferences)

			require.Len(testInstance, executor.recordedCommands, 1)
			recordedCommand := executor.recordedCommands[0]
			require.Equal(testInstance, []string{"show-ref"}, recordedCommand.Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, recordedCommand.WorkingDirectory)
			require.Equal(testInstance, "0", recordedCommand.EnvironmentVariables["GIT_TERMINAL_PROMPT"])
		})
	}
}

func TestRepositoryManagerGetCurrentBranch(testInstance *testing.T) {
	testCases := []struct {
		name           string
		standardOutput string
		expectedBranch string
	}{
		{name: "attached_head", standardOutput: "main\n", expectedBranch: "main"},
		{name: "detached_head", standardOutput: "HEAD\n", expectedBranch: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: testCase.standardOutput}}}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			branchName, branchError := manager.GetCurrentBranch(context.Background(), testRepositoryPathConstant)
			require.NoError(testInstance, branchError)
			require.Equal(testInstance, testCase.expectedBranch, branchName)

			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, []string{"rev-parse", "--abbrev-ref", "HEAD"}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestRepositoryManagerListBranchesContaining(testInstance *testing.T) {
	branchListingOutput := "* feature/login\n" +
		"  main\n" +
		"  remotes/origin/HEAD -> origin/main\n" +
		"  remotes/origin/main\n" +
		"  main\n"

	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: branchListingOutput}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	branchNames, listError := manager.ListBranchesContaining(context.Background(), testRepositoryPathConstant, testBranchNameConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"feature/login", "main", "remotes/origin/main"}, branchNames)

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"branch", "--all", "--contains=feature/login"}, executor.recordedCommands[0].Arguments)
}

func TestRepositoryManagerMergeBase(testInstance *testing.T) {
	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "abc1234def5678\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	mergeBaseCommit, mergeBaseError := manager.MergeBase(context.Background(), testRepositoryPathConstant, testBranchNameConstant, "main")
	require.NoError(testInstance, mergeBaseError)
	require.Equal(testInstance, "abc1234def5678", mergeBaseCommit)

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"merge-base", testBranchNameConstant, "main"}, executor.recordedCommands[0].Arguments)
}

func TestRepositoryManagerResolveCommit(testInstance *testing.T) {
	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "abc1234def5678\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	resolvedCommit, resolveError := manager.ResolveCommit(context.Background(), testRepositoryPathConstant, testBranchNameConstant)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "abc1234def5678", resolvedCommit)

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"rev-parse", "--verify", testBranchNameConstant}, executor.recordedCommands[0].Arguments)
}

func TestRepositoryManagerResolveShortCommit(testInstance *testing.T) {
	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "abc1234\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	shortCommit, resolveError := manager.ResolveShortCommit(context.Background(), testRepositoryPathConstant, testBranchNameConstant)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "abc1234", shortCommit)

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"rev-parse", "--short", "--verify", testBranchNameConstant}, executor.recordedCommands[0].Arguments)
}

func TestRepositoryManagerMutationCommands(testInstance *testing.T) {
	testCases := []struct {
		name              string
		invoke            func(manager *gitrepo.RepositoryManager) error
		expectedArguments []string
	}{
		{
			name: "checkout_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CheckoutBranch(context.Background(), testRepositoryPathConstant, "main")
			},
			expectedArguments: []string{"checkout", "main"},
		},
		{
			name: "delete_local_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.DeleteLocalBranch(context.Background(), testRepositoryPathConstant, testBranchNameConstant)
			},
			expectedArguments: []string{"branch", "--delete", "--force", testBranchNameConstant},
		},
		{
			name: "create_tracking_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CreateTrackingBranch(context.Background(), testRepositoryPathConstant, "main", "origin/main")
			},
			expectedArguments: []string{"branch", "--track", "main", "origin/main"},
		},
		{
			name: "fetch_remotes_with_prune_and_tags",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.FetchRemotes(context.Background(), testRepositoryPathConstant, []string{"origin", "upstream"}, true, true)
			},
			expectedArguments: []string{"fetch", "--multiple", "--prune", "--tags", "origin", "upstream"},
		},
		{
			name: "fetch_remotes_without_options",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.FetchRemotes(context.Background(), testRepositoryPathConstant, []string{"origin"}, false, false)
			},
			expectedArguments: []string{"fetch", "--multiple", "origin"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			require.NoError(testInstance, testCase.invoke(manager))
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestRepositoryManagerValidatesArguments(testInstance *testing.T) {
	executor := &scriptedGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	_, listError := manager.ListReferences(context.Background(), " ")
	require.ErrorIs(testInstance, listError, gitrepo.ErrRepositoryPathRequired)

	_, containsError := manager.ListBranchesContaining(context.Background(), testRepositoryPathConstant, "")
	require.ErrorIs(testInstance, containsError, gitrepo.ErrReferenceRequired)

	deleteError := manager.DeleteLocalBranch(context.Background(), testRepositoryPathConstant, "")
	require.ErrorIs(testInstance, deleteError, gitrepo.ErrBranchNameRequired)

	fetchError := manager.FetchRemotes(context.Background(), testRepositoryPathConstant, nil, false, false)
	require.ErrorIs(testInstance, fetchError, gitrepo.ErrRemoteNamesRequired)

	require.Empty(testInstance, executor.recordedCommands)
}
