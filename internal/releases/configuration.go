package releases

import "strings"

const (
	defaultChangelogPathConstant = "CHANGELOG.md"
	defaultMetadataPathConstant  = "project.yaml"
	defaultTagPrefixConstant     = "v"

	configurationKeySeparatorConstant        = "."
	changelogPathConfigurationSuffixConstant = "changelog_path"
	metadataPathConfigurationSuffixConstant  = "metadata_path"
	tagPrefixConfigurationSuffixConstant     = "tag_prefix"
)

// Configuration captures the release file locations and tag naming.
type Configuration struct {
	ChangelogPath string `mapstructure:"changelog_path"`
	MetadataPath  string `mapstructure:"metadata_path"`
	TagPrefix     string `mapstructure:"tag_prefix"`
}

// DefaultConfiguration provides baseline release settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		ChangelogPath: defaultChangelogPathConstant,
		MetadataPath:  defaultMetadataPathConstant,
		TagPrefix:     defaultTagPrefixConstant,
	}
}

// DefaultConfigurationValues exposes release defaults keyed under the
// provided configuration prefix for registration with the configuration
// loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + changelogPathConfigurationSuffixConstant: defaultChangelogPathConstant,
		configurationKeyPrefix + configurationKeySeparatorConstant + metadataPathConfigurationSuffixConstant:  defaultMetadataPathConstant,
		configurationKeyPrefix + configurationKeySeparatorConstant + tagPrefixConfigurationSuffixConstant:     defaultTagPrefixConstant,
	}
}

// Sanitize trims configured values and fills missing ones with defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.ChangelogPath = valueOrDefault(configuration.ChangelogPath, defaultChangelogPathConstant)
	sanitized.MetadataPath = valueOrDefault(configuration.MetadataPath, defaultMetadataPathConstant)
	sanitized.TagPrefix = valueOrDefault(configuration.TagPrefix, defaultTagPrefixConstant)

	return sanitized
}

func valueOrDefault(configuredValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(configuredValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
