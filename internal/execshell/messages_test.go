package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-lost/internal/execshell"
)

const (
	testMessagesWorkingDirectoryConstant = "/tmp/workspace"
	testMessagesBranchNameConstant       = "feature/login"
	testMessagesRemoteBranchConstant     = "origin/main"
)

func buildGitCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: testMessagesWorkingDirectoryConstant,
		},
	}
}

func TestCommandMessageFormatterStartedMessages(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		expectedMessage string
	}{
		{
			name:            "show_ref",
			command:         buildGitCommand("show-ref"),
			expectedMessage: "Listing references in /tmp/workspace",
		},
		{
			name:            "branch_contains",
			command:         buildGitCommand("branch", "--all", "--contains=feature/login"),
			expectedMessage: "Finding branches containing feature/login in /tmp/workspace",
		},
		{
			name:            "branch_force_delete",
			command:         buildGitCommand("branch", "--delete", "--force", testMessagesBranchNameConstant),
			expectedMessage: "Force removing local branch feature/login in /tmp/workspace",
		},
		{
			name:            "branch_track",
			command:         buildGitCommand("branch", "--track", "main", testMessagesRemoteBranchConstant),
			expectedMessage: "Creating tracking branch main from origin/main in /tmp/workspace",
		},
		{
			name:            "merge_base",
			command:         buildGitCommand("merge-base", testMessagesBranchNameConstant, "main"),
			expectedMessage: "Computing merge base of feature/login and main in /tmp/workspace",
		},
		{
			name:            "current_branch",
			command:         buildGitCommand("rev-parse", "--abbrev-ref", "HEAD"),
			expectedMessage: "Identifying current branch in /tmp/workspace",
		},
		{
			name:            "resolve_revision",
			command:         buildGitCommand("rev-parse", "--short", "--verify", testMessagesBranchNameConstant),
			expectedMessage: "Resolving feature/login in /tmp/workspace",
		},
		{
			name:            "checkout",
			command:         buildGitCommand("checkout", "main"),
			expectedMessage: "Switching /tmp/workspace to main",
		},
		{
			name:            "fetch_multiple",
			command:         buildGitCommand("fetch", "--multiple", "--prune", "origin", "upstream"),
			expectedMessage: "Fetching from origin, upstream in /tmp/workspace",
		},
		{
			name:            "generic_subcommand",
			command:         buildGitCommand("status"),
			expectedMessage: "Running git status (in /tmp/workspace)",
		},
	}

	formatter := execshell.CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterSuccessMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	currentBranchMessage := formatter.BuildSuccessMessage(buildGitCommand("rev-parse", "--abbrev-ref", "HEAD"))
	require.Equal(testInstance, "Identified current branch in /tmp/workspace", currentBranchMessage)

	revisionMessage := formatter.BuildSuccessMessage(buildGitCommand("rev-parse", "--short", "--verify", testMessagesBranchNameConstant))
	require.Equal(testInstance, "Resolved feature/login in /tmp/workspace", revisionMessage)

	deletionMessage := formatter.BuildSuccessMessage(buildGitCommand("branch", "--delete", "--force", testMessagesBranchNameConstant))
	require.Equal(testInstance, "Removed local branch feature/login in /tmp/workspace", deletionMessage)
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	failureResult := execshell.ExecutionResult{ExitCode: 1, StandardError: "branch not found"}
	failureMessage := formatter.BuildFailureMessage(buildGitCommand("branch", "--delete", "--force", testMessagesBranchNameConstant), failureResult)
	require.Equal(testInstance, "Failed to remove local branch feature/login in /tmp/workspace (exit code 1: branch not found)", failureMessage)

	executionMessage := formatter.BuildExecutionFailureMessage(buildGitCommand("fetch", "--multiple", "origin"), errors.New("executable not found"))
	require.Equal(testInstance, "Unable to fetch from origin in /tmp/workspace: executable not found", executionMessage)
}
