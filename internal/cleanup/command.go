package cleanup

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/git-lost/internal/execshell"
	"github.com/temirov/git-lost/internal/gitrepo"
	"github.com/temirov/git-lost/internal/utils"
	flagutils "github.com/temirov/git-lost/internal/utils/flags"
)

const (
	commandUseConstant                    = "cleanup [remote...]"
	commandShortDescriptionConstant       = "Delete local branches that are merged into permanent or other branches"
	commandLongDescriptionConstant        = "cleanup inspects local branches, determines which are merged into permanent branches (or any other branch, local or remote), and interactively offers to delete the merged ones. Positional arguments override the configured remotes."
	commandExecutionErrorTemplateConstant = "branch cleanup failed: %w"
	flagPermanentNameConstant             = "permanent"
	flagPermanentShorthandConstant        = "p"
	flagPermanentDescriptionConstant      = "Branch name that must never be cleaned up (repeatable)"
	flagFetchNameConstant                 = "fetch"
	flagFetchShorthandConstant            = "f"
	flagFetchDescriptionConstant          = "Fetch from the nominated remotes before analyzing"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Report deletions without prompting or making changes"
	defaultWorkingDirectoryConstant       = "."
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the effective cleanup configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra command for branch cleanup.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Repository                   RepositoryOperations
	ReferenceLister              gitrepo.ReferenceLister
	Prompter                     ConfirmationPrompter
	WorkingDirectory             string
}

// Build constructs the cleanup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var fetchToggleValue bool

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, &fetchToggleValue)
		},
	}

	command.Flags().StringArrayP(flagPermanentNameConstant, flagPermanentShorthandConstant, nil, flagPermanentDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &fetchToggleValue, flagFetchNameConstant, flagFetchShorthandConstant, true, flagFetchDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, fetchToggleValue *bool) error {
	options := builder.buildOptions(command, arguments, fetchToggleValue)

	logger := builder.resolveLogger()
	repository, referenceLister, dependenciesError := builder.resolveRepository(logger)
	if dependenciesError != nil {
		return dependenciesError
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	prompter := builder.Prompter
	if prompter == nil {
		prompter = NewIOConfirmationPrompter(command.InOrStdin(), outputWriter)
	}

	service, serviceError := NewService(Dependencies{
		Repository:      repository,
		ReferenceLister: referenceLister,
		Prompter:        prompter,
		Logger:          logger,
		OutputWriter:    outputWriter,
	})
	if serviceError != nil {
		return serviceError
	}

	if runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) buildOptions(command *cobra.Command, arguments []string, fetchToggleValue *bool) Options {
	configuration := builder.resolveConfiguration()

	permanentBranches := configuration.PermanentBranches
	if flagValues, flagError := command.Flags().GetStringArray(flagPermanentNameConstant); flagError == nil && len(flagValues) > 0 {
		permanentBranches = flagValues
	}

	remotes := configuration.Remotes
	if len(arguments) > 0 {
		remotes = arguments
	}

	fetchFirst := configuration.FetchFirst
	if command.Flags().Changed(flagFetchNameConstant) {
		fetchFirst = *fetchToggleValue
	}

	dryRun := configuration.DryRun
	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}

	workingDirectory := builder.WorkingDirectory
	if len(workingDirectory) == 0 {
		workingDirectory = defaultWorkingDirectoryConstant
	}

	return Options{
		RepositoryPath:          workingDirectory,
		PermanentBranches:       permanentBranches,
		Remotes:                 remotes,
		FetchFirst:              fetchFirst,
		FetchPrune:              configuration.FetchPrune,
		FetchTags:               configuration.FetchTags,
		CreatePermanentBranches: configuration.CreatePermanentBranches,
		AutoFastForward:         configuration.AutoFastForward,
		DryRun:                  dryRun,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveRepository(logger *zap.Logger) (RepositoryOperations, gitrepo.ReferenceLister, error) {
	if builder.Repository != nil {
		return builder.Repository, builder.ReferenceLister, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, builder.resolveHumanReadableLogging())
	if executorError != nil {
		return nil, nil, executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return nil, nil, managerError
	}

	referenceLister := builder.ReferenceLister
	if referenceLister == nil {
		referenceLister = gitrepo.NewGoGitRefReader()
	}
	return repositoryManager, referenceLister, nil
}
