package cleanup

import "strings"

const (
	permanentBranchesConfigurationKeyConstant = "permanent_branches"
	remotesConfigurationKeyConstant           = "remotes"
	fetchFirstConfigurationKeyConstant        = "fetch_first"
	fetchPruneConfigurationKeyConstant        = "fetch_prune"
	fetchTagsConfigurationKeyConstant         = "fetch_tags"
	createPermanentConfigurationKeyConstant   = "create_permanent_branches"
	autoFastForwardConfigurationKeyConstant   = "auto_fast_forward"
	dryRunConfigurationKeyConstant            = "dry_run"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures configuration values for the cleanup command.
type CommandConfiguration struct {
	PermanentBranches       []string `mapstructure:"permanent_branches"`
	Remotes                 []string `mapstructure:"remotes"`
	FetchFirst              bool     `mapstructure:"fetch_first"`
	FetchPrune              bool     `mapstructure:"fetch_prune"`
	FetchTags               bool     `mapstructure:"fetch_tags"`
	CreatePermanentBranches bool     `mapstructure:"create_permanent_branches"`
	AutoFastForward         string   `mapstructure:"auto_fast_forward"`
	DryRun                  bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for cleanup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		PermanentBranches:       []string{"master", "main"},
		Remotes:                 []string{"origin"},
		FetchFirst:              true,
		FetchPrune:              true,
		FetchTags:               true,
		CreatePermanentBranches: true,
		AutoFastForward:         string(FastForwardNone),
		DryRun:                  false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the cleanup command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + permanentBranchesConfigurationKeyConstant: defaults.PermanentBranches,
		rootKey + configurationKeySeparatorConstant + remotesConfigurationKeyConstant:           defaults.Remotes,
		rootKey + configurationKeySeparatorConstant + fetchFirstConfigurationKeyConstant:        defaults.FetchFirst,
		rootKey + configurationKeySeparatorConstant + fetchPruneConfigurationKeyConstant:        defaults.FetchPrune,
		rootKey + configurationKeySeparatorConstant + fetchTagsConfigurationKeyConstant:         defaults.FetchTags,
		rootKey + configurationKeySeparatorConstant + createPermanentConfigurationKeyConstant:   defaults.CreatePermanentBranches,
		rootKey + configurationKeySeparatorConstant + autoFastForwardConfigurationKeyConstant:   defaults.AutoFastForward,
		rootKey + configurationKeySeparatorConstant + dryRunConfigurationKeyConstant:            defaults.DryRun,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.PermanentBranches = sanitizeNames(configuration.PermanentBranches)
	sanitized.Remotes = sanitizeNames(configuration.Remotes)
	sanitized.AutoFastForward = strings.TrimSpace(configuration.AutoFastForward)
	return sanitized
}
