package branches

import "strings"

const (
	defaultRemoteNameConstant      = "origin"
	defaultMainBranchConstant      = "main"
	defaultCandidateBranchConstant = "release-candidate"

	configurationKeySeparatorConstant     = "."
	remoteConfigurationKeySuffixConstant  = "remote"
	mainBranchConfigurationSuffixConstant = "main_branch"
	candidateConfigurationSuffixConstant  = "candidate_branch"
)

// WorkflowConfiguration captures the branch names and remote shared by every
// workflow command.
type WorkflowConfiguration struct {
	RemoteName      string `mapstructure:"remote"`
	MainBranch      string `mapstructure:"main_branch"`
	CandidateBranch string `mapstructure:"candidate_branch"`
}

// DefaultWorkflowConfiguration provides baseline workflow settings.
func DefaultWorkflowConfiguration() WorkflowConfiguration {
	return WorkflowConfiguration{
		RemoteName:      defaultRemoteNameConstant,
		MainBranch:      defaultMainBranchConstant,
		CandidateBranch: defaultCandidateBranchConstant,
	}
}

// DefaultConfigurationValues exposes workflow defaults keyed under the
// provided configuration prefix for registration with the configuration
// loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + remoteConfigurationKeySuffixConstant:  defaultRemoteNameConstant,
		configurationKeyPrefix + configurationKeySeparatorConstant + mainBranchConfigurationSuffixConstant: defaultMainBranchConstant,
		configurationKeyPrefix + configurationKeySeparatorConstant + candidateConfigurationSuffixConstant:  defaultCandidateBranchConstant,
	}
}

// Sanitize trims configured values and fills missing ones with defaults.
func (configuration WorkflowConfiguration) Sanitize() WorkflowConfiguration {
	sanitized := configuration

	sanitized.RemoteName = valueOrDefault(configuration.RemoteName, defaultRemoteNameConstant)
	sanitized.MainBranch = valueOrDefault(configuration.MainBranch, defaultMainBranchConstant)
	sanitized.CandidateBranch = valueOrDefault(configuration.CandidateBranch, defaultCandidateBranchConstant)

	return sanitized
}

func valueOrDefault(configuredValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(configuredValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
