package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/git-lost/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	branchNameRequiredMessageConstant           = "branch name must be provided"
	referenceRequiredMessageConstant            = "reference must be provided"
	remoteNamesRequiredMessageConstant          = "at least one remote name must be provided"
	listReferencesFailureTemplateConstant       = "failed to list references: %w"
	currentBranchFailureTemplateConstant        = "failed to identify current branch: %w"
	branchesContainingFailureTemplateConstant   = "failed to list branches containing %s: %w"
	mergeBaseFailureTemplateConstant            = "failed to compute merge base of %s and %s: %w"
	resolveCommitFailureTemplateConstant        = "failed to resolve %s: %w"
	checkoutFailureTemplateConstant             = "failed to checkout branch %q: %w"
	deleteBranchFailureTemplateConstant         = "failed to delete branch %q: %w"
	createTrackingBranchFailureTemplateConstant = "failed to create tracking branch %q from %q: %w"
	fetchRemotesFailureTemplateConstant         = "failed to fetch remotes: %w"
	malformedReferenceLineTemplateConstant      = "malformed reference line %q"
	gitShowRefSubcommandConstant                = "show-ref"
	gitBranchSubcommandConstant                 = "branch"
	gitMergeBaseSubcommandConstant              = "merge-base"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitCheckoutSubcommandConstant               = "checkout"
	gitFetchSubcommandConstant                  = "fetch"
	gitAllFlagConstant                          = "--all"
	gitContainsFlagTemplateConstant             = "--contains=%s"
	gitDeleteFlagConstant                       = "--delete"
	gitForceFlagConstant                        = "--force"
	gitTrackFlagConstant                        = "--track"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitShortFlagConstant                        = "--short"
	gitVerifyFlagConstant                       = "--verify"
	gitMultipleFlagConstant                     = "--multiple"
	gitPruneFlagConstant                        = "--prune"
	gitTagsFlagConstant                         = "--tags"
	gitHeadReferenceNameConstant                = "HEAD"
	branchListingArrowMarkerConstant            = " -> "
	branchListingPrefixLengthConstant           = 2
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates a repository path argument was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrBranchNameRequired indicates a branch name argument was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrReferenceRequired indicates a reference argument was empty.
var ErrReferenceRequired = errors.New(referenceRequiredMessageConstant)

// ErrRemoteNamesRequired indicates a fetch was requested without remotes.
var ErrRemoteNamesRequired = errors.New(remoteNamesRequiredMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository operations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ListedReference pairs a commit identifier with a fully qualified reference name.
type ListedReference struct {
	Commit string
	Name   string
}

// ReferenceLister enumerates repository references and reports the active branch.
type ReferenceLister interface {
	ListReferences(executionContext context.Context, repositoryPath string) ([]ListedReference, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
}

// RepositoryManager performs repository-level git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager with the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ListReferences reports every reference recorded in the repository.
func (manager *RepositoryManager) ListReferences(executionContext context.Context, repositoryPath string) ([]ListedReference, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return nil, validationError
	}

	executionResult, executionError := manager.runGit(executionContext, repositoryPath, gitShowRefSubcommandConstant)
	if executionError != nil {
		return nil, fmt.Errorf(listReferencesFailureTemplateConstant, executionError)
	}

	listedReferences := []ListedReference{}
	for _, rawLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}
		commitIdentifier, referenceName, splitFound := strings.Cut(trimmedLine, " ")
		if !splitFound || len(commitIdentifier) == 0 || len(referenceName) == 0 {
			return nil, fmt.Errorf(malformedReferenceLineTemplateConstant, trimmedLine)
		}
		listedReferences = append(listedReferences, ListedReference{Commit: commitIdentifier, Name: referenceName})
	}
	return listedReferences, nil
}

// GetCurrentBranch reports the checked out branch name, or an empty string for a detached HEAD.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return "", validationError
	}

	executionResult, executionError := manager.runGit(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceNameConstant)
	if executionError != nil {
		return "", fmt.Errorf(currentBranchFailureTemplateConstant, executionError)
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if branchName == gitHeadReferenceNameConstant {
		return "", nil
	}
	return branchName, nil
}

// ListBranchesContaining reports local and remote branch names whose history includes the commit.
// Remote branches keep their remotes/ prefix. Symbolic entries such as remote HEAD pointers are skipped.
func (manager *RepositoryManager) ListBranchesContaining(executionContext context.Context, repositoryPath string, commitReference string) ([]string, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return nil, validationError
	}
	if len(strings.TrimSpace(commitReference)) == 0 {
		return nil, ErrReferenceRequired
	}

	executionResult, executionError := manager.runGit(
		executionContext,
		repositoryPath,
		gitBranchSubcommandConstant,
		gitAllFlagConstant,
		fmt.Sprintf(gitContainsFlagTemplateConstant, commitReference),
	)
	if executionError != nil {
		return nil, fmt.Errorf(branchesContainingFailureTemplateConstant, commitReference, executionError)
	}

	seenBranchNames := map[string]struct{}{}
	branchNames := []string{}
	for _, rawLine := range strings.Split(executionResult.StandardOutput, "\n") {
		if len(strings.TrimSpace(rawLine)) == 0 {
			continue
		}
		if strings.Contains(rawLine, branchListingArrowMarkerConstant) {
			continue
		}
		if len(rawLine) <= branchListingPrefixLengthConstant {
			continue
		}
		branchName := rawLine[branchListingPrefixLengthConstant:]
		if strings.Contains(branchName, " ") {
			continue
		}
		if _, alreadySeen := seenBranchNames[branchName]; alreadySeen {
			continue
		}
		seenBranchNames[branchName] = struct{}{}
		branchNames = append(branchNames, branchName)
	}
	return branchNames, nil
}

// MergeBase reports the best common ancestor commit of the two references.
func (manager *RepositoryManager) MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return "", validationError
	}
	if len(strings.TrimSpace(firstReference)) == 0 || len(strings.TrimSpace(secondReference)) == 0 {
		return "", ErrReferenceRequired
	}

	executionResult, executionError := manager.runGit(executionContext, repositoryPath, gitMergeBaseSubcommandConstant, firstReference, secondReference)
	if executionError != nil {
		return "", fmt.Errorf(mergeBaseFailureTemplateConstant, firstReference, secondReference, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ResolveCommit reports the full commit identifier for the reference.
func (manager *RepositoryManager) ResolveCommit(executionContext context.Context, repositoryPath string, reference string) (string, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return "", validationError
	}
	if len(strings.TrimSpace(reference)) == 0 {
		return "", ErrReferenceRequired
	}

	executionResult, executionError := manager.runGit(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitVerifyFlagConstant, reference)
	if executionError != nil {
		return "", fmt.Errorf(resolveCommitFailureTemplateConstant, reference, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ResolveShortCommit reports the abbreviated commit identifier for the reference.
func (manager *RepositoryManager) ResolveShortCommit(executionContext context.Context, repositoryPath string, reference string) (string, error) {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return "", validationError
	}
	if len(strings.TrimSpace(reference)) == 0 {
		return "", ErrReferenceRequired
	}

	executionResult, executionError := manager.runGit(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitShortFlagConstant, gitVerifyFlagConstant, reference)
	if executionError != nil {
		return "", fmt.Errorf(resolveCommitFailureTemplateConstant, reference, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CheckoutBranch switches the repository worktree to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return ErrBranchNameRequired
	}

	_, executionError := manager.runGit(executionContext, repositoryPath, gitCheckoutSubcommandConstant, branchName)
	if executionError != nil {
		return fmt.Errorf(checkoutFailureTemplateConstant, branchName, executionError)
	}
	return nil
}

// DeleteLocalBranch forcibly removes the named local branch.
func (manager *RepositoryManager) DeleteLocalBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return ErrBranchNameRequired
	}

	_, executionError := manager.runGit(executionContext, repositoryPath, gitBranchSubcommandConstant, gitDeleteFlagConstant, gitForceFlagConstant, branchName)
	if executionError != nil {
		return fmt.Errorf(deleteBranchFailureTemplateConstant, branchName, executionError)
	}
	return nil
}

// CreateTrackingBranch creates a local branch tracking the provided start point.
func (manager *RepositoryManager) CreateTrackingBranch(executionContext context.Context, repositoryPath string, branchName string, startPoint string) error {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return ErrBranchNameRequired
	}
	if len(strings.TrimSpace(startPoint)) == 0 {
		return ErrReferenceRequired
	}

	_, executionError := manager.runGit(executionContext, repositoryPath, gitBranchSubcommandConstant, gitTrackFlagConstant, branchName, startPoint)
	if executionError != nil {
		return fmt.Errorf(createTrackingBranchFailureTemplateConstant, branchName, startPoint, executionError)
	}
	return nil
}

// FetchRemotes fetches the named remotes in a single invocation.
func (manager *RepositoryManager) FetchRemotes(executionContext context.Context, repositoryPath string, remoteNames []string, pruneReferences bool, fetchTags bool) error {
	if validationError := manager.requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(remoteNames) == 0 {
		return ErrRemoteNamesRequired
	}

	fetchArguments := []string{gitFetchSubcommandConstant, gitMultipleFlagConstant}
	if pruneReferences {
		fetchArguments = append(fetchArguments, gitPruneFlagConstant)
	}
	if fetchTags {
		fetchArguments = append(fetchArguments, gitTagsFlagConstant)
	}
	fetchArguments = append(fetchArguments, remoteNames...)

	_, executionError := manager.runGit(executionContext, repositoryPath, fetchArguments...)
	if executionError != nil {
		return fmt.Errorf(fetchRemotesFailureTemplateConstant, executionError)
	}
	return nil
}

func (manager *RepositoryManager) runGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	}
	return manager.executor.ExecuteGit(executionContext, commandDetails)
}

func (manager *RepositoryManager) requireRepositoryPath(repositoryPath string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return ErrRepositoryPathRequired
	}
	return nil
}
