package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/git-lost/internal/utils"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Inspect the effective git-lost configuration"
	configurationShowUseConstant                 = "show"
	configurationShowShortDescriptionConstant    = "Print the effective configuration after defaults, files, and environment overrides"
	configurationShowSourceTemplateConstant      = "# configuration file: %s\n"
	configurationShowDefaultSourceConstant       = "# configuration file: built-in defaults\n"
	configurationEncodeErrorTemplateConstant     = "unable to render configuration: %w"
)

// ApplicationConfigurationProvider supplies the resolved application configuration.
type ApplicationConfigurationProvider func() ApplicationConfiguration

// ConfigurationMetadataProvider supplies details about the loaded configuration sources.
type ConfigurationMetadataProvider func() utils.LoadedConfiguration

// ConfigurationCommandBuilder assembles the configuration inspection command hierarchy.
type ConfigurationCommandBuilder struct {
	ConfigurationProvider         ApplicationConfigurationProvider
	ConfigurationMetadataProvider ConfigurationMetadataProvider
}

type renderedConfiguration struct {
	Common renderedCommonConfiguration `yaml:"common"`
	Tools  renderedToolsConfiguration  `yaml:"tools"`
}

type renderedCommonConfiguration struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type renderedToolsConfiguration struct {
	Cleanup renderedCleanupConfiguration `yaml:"cleanup"`
}

type renderedCleanupConfiguration struct {
	PermanentBranches       []string `yaml:"permanent_branches"`
	Remotes                 []string `yaml:"remotes"`
	FetchFirst              bool     `yaml:"fetch_first"`
	FetchPrune              bool     `yaml:"fetch_prune"`
	FetchTags               bool     `yaml:"fetch_tags"`
	CreatePermanentBranches bool     `yaml:"create_permanent_branches"`
	AutoFastForward         string   `yaml:"auto_fast_forward"`
	DryRun                  bool     `yaml:"dry_run"`
}

// Build constructs the config command with its show subcommand.
func (builder *ConfigurationCommandBuilder) Build() (*cobra.Command, error) {
	configurationCommand := &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
	}

	showCommand := &cobra.Command{
		Use:   configurationShowUseConstant,
		Short: configurationShowShortDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runShow(command)
		},
	}

	configurationCommand.AddCommand(showCommand)

	return configurationCommand, nil
}

func (builder *ConfigurationCommandBuilder) runShow(command *cobra.Command) error {
	configuration := builder.resolveConfiguration()
	metadata := builder.resolveMetadata()

	if len(metadata.ConfigFileUsed) > 0 {
		fmt.Fprintf(command.OutOrStdout(), configurationShowSourceTemplateConstant, metadata.ConfigFileUsed)
	} else {
		fmt.Fprint(command.OutOrStdout(), configurationShowDefaultSourceConstant)
	}

	renderableConfiguration := renderedConfiguration{
		Common: renderedCommonConfiguration{
			LogLevel:  configuration.Common.LogLevel,
			LogFormat: configuration.Common.LogFormat,
		},
		Tools: renderedToolsConfiguration{
			Cleanup: renderedCleanupConfiguration{
				PermanentBranches:       configuration.Tools.Cleanup.PermanentBranches,
				Remotes:                 configuration.Tools.Cleanup.Remotes,
				FetchFirst:              configuration.Tools.Cleanup.FetchFirst,
				FetchPrune:              configuration.Tools.Cleanup.FetchPrune,
				FetchTags:               configuration.Tools.Cleanup.FetchTags,
				CreatePermanentBranches: configuration.Tools.Cleanup.CreatePermanentBranches,
				AutoFastForward:         configuration.Tools.Cleanup.AutoFastForward,
				DryRun:                  configuration.Tools.Cleanup.DryRun,
			},
		},
	}

	encodedConfiguration, encodeError := yaml.Marshal(renderableConfiguration)
	if encodeError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, encodeError)
	}

	fmt.Fprint(command.OutOrStdout(), string(encodedConfiguration))
	return nil
}

func (builder *ConfigurationCommandBuilder) resolveConfiguration() ApplicationConfiguration {
	if builder.ConfigurationProvider == nil {
		return ApplicationConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *ConfigurationCommandBuilder) resolveMetadata() utils.LoadedConfiguration {
	if builder.ConfigurationMetadataProvider == nil {
		return utils.LoadedConfiguration{}
	}
	return builder.ConfigurationMetadataProvider()
}
