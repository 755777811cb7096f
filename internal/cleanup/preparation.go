package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// FastForwardMode names an automatic fast-forward behavior.
type FastForwardMode string

const (
	// FastForwardNone disables automatic fast-forwarding.
	FastForwardNone FastForwardMode = "ff_none"
	// FastForwardPermanent would fast-forward permanent branches only.
	FastForwardPermanent FastForwardMode = "ff_permanent"
	// FastForwardAll would fast-forward every local branch with a matching upstream.
	FastForwardAll FastForwardMode = "ff_all"
)

const (
	fastForwardUnsupportedMessageConstant     = "automatic fast-forward is not supported"
	unknownFastForwardModeTemplateConstant    = "unknown auto fast-forward mode %q"
	fetchNoticeTemplateConstant               = "Fetching from %s ..."
	dryRunFetchNoticeTemplateConstant         = "Would fetch from %s."
	fetchFailureTemplateConstant              = "failed to fetch from remotes: %w"
	creationNoticeTemplateConstant            = "Creating permanent branch %s"
	dryRunCreationNoticeTemplateConstant      = "Would create permanent branch %s tracking %s."
	creationWarningTemplateConstant           = "WARNING: Can't create permanent branch %s: %s"
	noRemoteCandidatesMessageTemplateConstant = "No remotes configured, or no remotes have branch %s"
	multipleRemoteCandidatesTemplateConstant  = "Multiple remotes have a %s branch"
	remoteListSeparatorConstant               = ", "
	trackingStartPointTemplateConstant        = "%s/%s"
)

// ErrFastForwardUnsupported indicates a fast-forward mode other than ff_none was requested.
var ErrFastForwardUnsupported = errors.New(fastForwardUnsupportedMessageConstant)

// ParseFastForwardMode validates a configured fast-forward mode. Modes other
// than ff_none are recognized but rejected with ErrFastForwardUnsupported so a
// configured-but-unimplemented behavior surfaces before any branch is touched.
func ParseFastForwardMode(rawMode string) (FastForwardMode, error) {
	switch FastForwardMode(strings.TrimSpace(rawMode)) {
	case FastForwardNone, "":
		return FastForwardNone, nil
	case FastForwardPermanent, FastForwardAll:
		return "", ErrFastForwardUnsupported
	default:
		return "", fmt.Errorf(unknownFastForwardModeTemplateConstant, rawMode)
	}
}

// PreparationOptions configures the pre-analysis phase of a run. DryRun keeps
// the phase read-only: planned fetches and branch creations are reported but
// never executed.
type PreparationOptions struct {
	RepositoryPath          string
	FetchFirst              bool
	FetchPrune              bool
	FetchTags               bool
	CreatePermanentBranches bool
	DryRun                  bool
}

// PreparationService synchronizes remotes and materializes missing permanent
// branches before the reference snapshot is taken.
type PreparationService struct {
	repository   RepositoryOperations
	outputWriter io.Writer
}

// NewPreparationService constructs a PreparationService.
func NewPreparationService(repository RepositoryOperations, outputWriter io.Writer) (*PreparationService, error) {
	if repository == nil {
		return nil, ErrRepositoryOperationsNotConfigured
	}
	if outputWriter == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &PreparationService{repository: repository, outputWriter: outputWriter}, nil
}

// Prepare fetches the policy remotes and creates any permanent branch that
// exists on exactly one remote but not locally. Creation problems are warnings
// rather than errors: a missing permanent branch only matters if a later
// checkout needs it.
func (service *PreparationService) Prepare(executionContext context.Context, options PreparationOptions, policy Policy) error {
	if options.FetchFirst {
		remoteListing := strings.Join(policy.Remotes(), remoteListSeparatorConstant)
		if options.DryRun {
			fmt.Fprintln(service.outputWriter, fetchNoticeStyle.Render(fmt.Sprintf(dryRunFetchNoticeTemplateConstant, remoteListing)))
		} else {
			fmt.Fprintln(service.outputWriter, fetchNoticeStyle.Render(fmt.Sprintf(fetchNoticeTemplateConstant, remoteListing)))

			fetchError := service.repository.FetchRemotes(executionContext, options.RepositoryPath, policy.Remotes(), options.FetchPrune, options.FetchTags)
			if fetchError != nil {
				return fmt.Errorf(fetchFailureTemplateConstant, fetchError)
			}
		}
	}

	if !options.CreatePermanentBranches {
		return nil
	}

	listedReferences, listError := service.repository.ListReferences(executionContext, options.RepositoryPath)
	if listError != nil {
		return listError
	}
	inventory, inventoryError := BuildInventory(listedReferences)
	if inventoryError != nil {
		return inventoryError
	}

	for _, permanentBranchName := range policy.PermanentBranches() {
		if inventory.HasLocalBranch(permanentBranchName) {
			continue
		}
		service.createPermanentBranch(executionContext, options.RepositoryPath, permanentBranchName, policy, inventory, options.DryRun)
	}
	return nil
}

func (service *PreparationService) createPermanentBranch(executionContext context.Context, repositoryPath string, branchName string, policy Policy, inventory *RefInventory, dryRun bool) {
	if !dryRun {
		creationNotice := fmt.Sprintf(creationNoticeTemplateConstant, branchName)
		fmt.Fprintln(service.outputWriter, creationNoticeStyle.Render(creationNotice))
	}

	candidateRemotes := []string{}
	for _, remoteName := range policy.Remotes() {
		if inventory.RemoteHasBranch(remoteName, branchName) {
			candidateRemotes = append(candidateRemotes, remoteName)
		}
	}

	if len(candidateRemotes) == 0 {
		service.warnCreationFailure(branchName, fmt.Sprintf(noRemoteCandidatesMessageTemplateConstant, branchName))
		return
	}
	if len(candidateRemotes) > 1 {
		service.warnCreationFailure(branchName, fmt.Sprintf(multipleRemoteCandidatesTemplateConstant, branchName))
		return
	}

	startPoint := fmt.Sprintf(trackingStartPointTemplateConstant, candidateRemotes[0], branchName)
	if dryRun {
		fmt.Fprintln(service.outputWriter, creationNoticeStyle.Render(fmt.Sprintf(dryRunCreationNoticeTemplateConstant, branchName, startPoint)))
		return
	}
	creationError := service.repository.CreateTrackingBranch(executionContext, repositoryPath, branchName, startPoint)
	if creationError != nil {
		service.warnCreationFailure(branchName, creationError.Error())
	}
}

func (service *PreparationService) warnCreationFailure(branchName string, reason string) {
	warningMessage := fmt.Sprintf(creationWarningTemplateConstant, branchName, reason)
	fmt.Fprintln(service.outputWriter, warningStyle.Render(warningMessage))
}
