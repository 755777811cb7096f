package cleanup

import (
	"context"
	"fmt"
	"io"
)

const (
	confirmationPromptTemplateConstant   = "%s is merged to %s. Delete it? [y/N] "
	deletionReportTemplateConstant       = "Deleting local branch %s (was at %s)."
	dryRunReportTemplateConstant         = "Would delete local branch %s (was at %s)."
	resolveBranchFailureTemplateConstant = "failed to resolve branch %q: %w"
	ancestryCheckFailureTemplateConstant = "failed to verify %q is merged to %q: %w"
	checkoutJumpFailureTemplateConstant  = "failed to switch checkout from %q to %q: %w"
	deletionFailureTemplateConstant      = "failed to delete branch %q: %w"
)

// DeletionExecutor confirms and performs local branch deletions. Only local
// branches are ever deleted; remote refs and tags are never mutated.
type DeletionExecutor struct {
	repository     RepositoryOperations
	prompter       ConfirmationPrompter
	outputWriter   io.Writer
	repositoryPath string
	dryRun         bool
}

// NewDeletionExecutor constructs a DeletionExecutor.
func NewDeletionExecutor(repository RepositoryOperations, prompter ConfirmationPrompter, outputWriter io.Writer, repositoryPath string, dryRun bool) (*DeletionExecutor, error) {
	if repository == nil {
		return nil, ErrRepositoryOperationsNotConfigured
	}
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if outputWriter == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &DeletionExecutor{
		repository:     repository,
		prompter:       prompter,
		outputWriter:   outputWriter,
		repositoryPath: repositoryPath,
		dryRun:         dryRun,
	}, nil
}

// TryDelete offers to delete branchName, reported as merged into targetRef.
// It returns true when the candidate was handled (deleted, or reported in dry
// run mode) and false when the user declined or the candidate turned out not
// to be merged, letting the caller try the next candidate. The merge relation
// is re-verified against the live repository before prompting because the
// inventory snapshot may be stale. If the branch is the active checkout, the
// worktree is switched to fallbackCheckout before deletion and runState is
// updated to match.
func (executor *DeletionExecutor) TryDelete(executionContext context.Context, branchName string, targetRef string, fallbackCheckout string, runState *RunState) (bool, error) {
	branchCommit, resolveError := executor.repository.ResolveCommit(executionContext, executor.repositoryPath, branchName)
	if resolveError != nil {
		return false, fmt.Errorf(resolveBranchFailureTemplateConstant, branchName, resolveError)
	}

	mergeBaseCommit, mergeBaseError := executor.repository.MergeBase(executionContext, executor.repositoryPath, branchName, targetRef)
	if mergeBaseError != nil {
		return false, fmt.Errorf(ancestryCheckFailureTemplateConstant, branchName, targetRef, mergeBaseError)
	}
	if branchCommit != mergeBaseCommit {
		return false, nil
	}

	shortCommit, shortCommitError := executor.repository.ResolveShortCommit(executionContext, executor.repositoryPath, branchName)
	if shortCommitError != nil {
		return false, fmt.Errorf(resolveBranchFailureTemplateConstant, branchName, shortCommitError)
	}

	if executor.dryRun {
		dryRunReport := fmt.Sprintf(dryRunReportTemplateConstant, deletionDetailStyle.Render(branchName), deletionDetailStyle.Render(shortCommit))
		fmt.Fprintln(executor.outputWriter, deletionNoticeStyle.Render(dryRunReport))
		return true, nil
	}

	confirmationPrompt := fmt.Sprintf(confirmationPromptTemplateConstant, promptBranchStyle.Render(branchName), targetRef)
	confirmed, confirmationError := executor.prompter.Confirm(confirmationPrompt)
	if confirmationError != nil {
		return false, confirmationError
	}
	if !confirmed {
		return false, nil
	}

	if runState.CurrentBranch == branchName {
		checkoutError := executor.repository.CheckoutBranch(executionContext, executor.repositoryPath, fallbackCheckout)
		if checkoutError != nil {
			return false, fmt.Errorf(checkoutJumpFailureTemplateConstant, branchName, fallbackCheckout, checkoutError)
		}
		runState.CurrentBranch = fallbackCheckout
	}

	deletionReport := fmt.Sprintf(deletionReportTemplateConstant, deletionDetailStyle.Render(branchName), deletionDetailStyle.Render(shortCommit))
	fmt.Fprintln(executor.outputWriter, deletionNoticeStyle.Render(deletionReport))

	deletionError := executor.repository.DeleteLocalBranch(executionContext, executor.repositoryPath, branchName)
	if deletionError != nil {
		return false, fmt.Errorf(deletionFailureTemplateConstant, branchName, deletionError)
	}
	return true, nil
}
