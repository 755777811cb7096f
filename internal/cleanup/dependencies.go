package cleanup

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/git-lost/internal/gitrepo"
)

const (
	repositoryOperationsMissingMessageConstant = "repository operations not configured"
	prompterMissingMessageConstant             = "confirmation prompter not configured"
	loggerMissingMessageConstant               = "logger not configured"
	outputWriterMissingMessageConstant         = "output writer not configured"
)

// ErrRepositoryOperationsNotConfigured indicates the repository dependency was missing.
var ErrRepositoryOperationsNotConfigured = errors.New(repositoryOperationsMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrLoggerNotConfigured indicates the logger dependency was missing.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrOutputWriterNotConfigured indicates the output writer dependency was missing.
var ErrOutputWriterNotConfigured = errors.New(outputWriterMissingMessageConstant)

// RepositoryOperations exposes the repository-level git operations consumed by cleanup.
type RepositoryOperations interface {
	ListReferences(executionContext context.Context, repositoryPath string) ([]gitrepo.ListedReference, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	ListBranchesContaining(executionContext context.Context, repositoryPath string, commitReference string) ([]string, error)
	MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error)
	ResolveCommit(executionContext context.Context, repositoryPath string, reference string) (string, error)
	ResolveShortCommit(executionContext context.Context, repositoryPath string, reference string) (string, error)
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	DeleteLocalBranch(executionContext context.Context, repositoryPath string, branchName string) error
	CreateTrackingBranch(executionContext context.Context, repositoryPath string, branchName string, startPoint string) error
	FetchRemotes(executionContext context.Context, repositoryPath string, remoteNames []string, pruneReferences bool, fetchTags bool) error
}

// Dependencies enumerates external collaborators required for cleanup runs.
// ReferenceLister is optional; when nil, reference snapshots fall back to the
// repository operations.
type Dependencies struct {
	Repository      RepositoryOperations
	ReferenceLister gitrepo.ReferenceLister
	Prompter        ConfirmationPrompter
	Logger          *zap.Logger
	OutputWriter    io.Writer
}

// RunState tracks the one piece of repository state the run mutates: the
// active checkout. An empty CurrentBranch means a detached HEAD.
type RunState struct {
	CurrentBranch string
}
