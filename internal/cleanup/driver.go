package cleanup

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/git-lost/internal/gitrepo"
)

const (
	policyFailureTemplateConstant            = "invalid cleanup policy: %w"
	inventoryFailureTemplateConstant         = "failed to build reference inventory: %w"
	currentBranchReadFailureTemplateConstant = "failed to determine active branch: %w"
	branchExaminationFailureTemplateConstant = "failed to examine branch %q: %w"
	skipNoticeMessageConstant                = "Not cleaning up permanent branch "
	branchFailureNoticeTemplateConstant      = "WARNING: Failed to examine branch %s: %v"
	branchSkippedLogMessageConstant          = "skipped permanent branch"
	branchFailureLogMessageConstant          = "branch examination failed"
	logFieldBranchNameConstant               = "branch"
)

// Options configures a cleanup run.
type Options struct {
	RepositoryPath          string
	PermanentBranches       []string
	Remotes                 []string
	FetchFirst              bool
	FetchPrune              bool
	FetchTags               bool
	CreatePermanentBranches bool
	AutoFastForward         string
	DryRun                  bool
}

// Service drives the cleanup workflow: preparation, inventory snapshot, and
// one examination per non-permanent local branch.
type Service struct {
	repository      RepositoryOperations
	referenceLister gitrepo.ReferenceLister
	prompter        ConfirmationPrompter
	logger          *zap.Logger
	outputWriter    io.Writer
	analyzer        Analyzer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryOperationsNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.OutputWriter == nil {
		return nil, ErrOutputWriterNotConfigured
	}

	referenceLister := dependencies.ReferenceLister
	if referenceLister == nil {
		referenceLister = dependencies.Repository
	}

	return &Service{
		repository:      dependencies.Repository,
		referenceLister: referenceLister,
		prompter:        dependencies.Prompter,
		logger:          dependencies.Logger,
		outputWriter:    dependencies.OutputWriter,
	}, nil
}

// Run executes one cleanup pass. Policy and fast-forward validation problems
// abort the run before any branch is touched, as does a failure to build the
// reference snapshot. A failure while examining a single branch is logged and
// processing continues with the next branch.
func (service *Service) Run(executionContext context.Context, options Options) error {
	policy, policyError := NewPolicy(options.PermanentBranches, options.Remotes)
	if policyError != nil {
		return fmt.Errorf(policyFailureTemplateConstant, policyError)
	}

	if _, fastForwardError := ParseFastForwardMode(options.AutoFastForward); fastForwardError != nil {
		return fastForwardError
	}

	preparationService, preparationCreationError := NewPreparationService(service.repository, service.outputWriter)
	if preparationCreationError != nil {
		return preparationCreationError
	}
	preparationOptions := PreparationOptions{
		RepositoryPath:          options.RepositoryPath,
		FetchFirst:              options.FetchFirst,
		FetchPrune:              options.FetchPrune,
		FetchTags:               options.FetchTags,
		CreatePermanentBranches: options.CreatePermanentBranches,
		DryRun:                  options.DryRun,
	}
	if preparationError := preparationService.Prepare(executionContext, preparationOptions, policy); preparationError != nil {
		return preparationError
	}

	listedReferences, listError := service.referenceLister.ListReferences(executionContext, options.RepositoryPath)
	if listError != nil {
		return fmt.Errorf(inventoryFailureTemplateConstant, listError)
	}
	inventory, inventoryError := BuildInventory(listedReferences)
	if inventoryError != nil {
		return fmt.Errorf(inventoryFailureTemplateConstant, inventoryError)
	}

	currentBranch, currentBranchError := service.referenceLister.GetCurrentBranch(executionContext, options.RepositoryPath)
	if currentBranchError != nil {
		return fmt.Errorf(currentBranchReadFailureTemplateConstant, currentBranchError)
	}
	runState := &RunState{CurrentBranch: currentBranch}

	deletionExecutor, executorCreationError := NewDeletionExecutor(service.repository, service.prompter, service.outputWriter, options.RepositoryPath, options.DryRun)
	if executorCreationError != nil {
		return executorCreationError
	}

	for _, branchName := range inventory.LocalBranches() {
		if policy.IsPermanent(branchName) {
			fmt.Fprintln(service.outputWriter, skipNoticeStyle.Render(skipNoticeMessageConstant)+skipBranchStyle.Render(branchName))
			service.logger.Debug(branchSkippedLogMessageConstant, zap.String(logFieldBranchNameConstant, branchName))
			continue
		}

		if examinationError := service.examineBranch(executionContext, options.RepositoryPath, branchName, policy, deletionExecutor, runState); examinationError != nil {
			fmt.Fprintln(service.outputWriter, warningStyle.Render(fmt.Sprintf(branchFailureNoticeTemplateConstant, branchName, examinationError)))
			service.logger.Error(
				branchFailureLogMessageConstant,
				zap.String(logFieldBranchNameConstant, branchName),
				zap.Error(fmt.Errorf(branchExaminationFailureTemplateConstant, branchName, examinationError)),
			)
		}
	}

	return nil
}

func (service *Service) examineBranch(executionContext context.Context, repositoryPath string, branchName string, policy Policy, deletionExecutor *DeletionExecutor, runState *RunState) error {
	descendants, descendantsError := service.repository.ListBranchesContaining(executionContext, repositoryPath, branchName)
	if descendantsError != nil {
		return descendantsError
	}

	selection := service.analyzer.SelectTargets(branchName, descendants, policy, runState.CurrentBranch)

	if selection.Permanent != nil {
		_, deletionError := deletionExecutor.TryDelete(executionContext, branchName, selection.Permanent.TargetRef, policy.FallbackCheckout(), runState)
		return deletionError
	}

	for _, candidate := range selection.Fallback {
		handled, deletionError := deletionExecutor.TryDelete(executionContext, branchName, candidate.TargetRef, policy.FallbackCheckout(), runState)
		if deletionError != nil {
			return deletionError
		}
		if handled {
			return nil
		}
	}
	return nil
}
