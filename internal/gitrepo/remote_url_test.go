package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/internal/gitrepo"
)

const (
	testSSHRemoteCaseNameConstant      = "ssh_remote"
	testScpLikeRemoteCaseNameConstant  = "scp_like_remote"
	testHTTPSRemoteCaseNameConstant    = "https_remote"
	testHTTPSNoSuffixCaseNameConstant  = "https_remote_without_suffix"
	testEmptyRemoteCaseNameConstant    = "empty_remote"
	testUnknownSchemeCaseNameConstant  = "unknown_scheme"
	testMissingSegmentCaseNameConstant = "missing_path_segment"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name           string
		remote         string
		expectedRemote gitrepo.RemoteURL
		expectError    bool
	}{
		{
			name:   testSSHRemoteCaseNameConstant,
			remote: "ssh://git@github.com/octocat/widgets.git",
			expectedRemote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   testScpLikeRemoteCaseNameConstant,
			remote: "git@github.com:octocat/widgets.git",
			expectedRemote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   testHTTPSRemoteCaseNameConstant,
			remote: "https://github.com/octocat/widgets.git",
			expectedRemote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   testHTTPSNoSuffixCaseNameConstant,
			remote: "https://github.com/octocat/widgets",
			expectedRemote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:        testEmptyRemoteCaseNameConstant,
			remote:      "   ",
			expectError: true,
		},
		{
			name:        testUnknownSchemeCaseNameConstant,
			remote:      "ftp://github.com/octocat/widgets",
			expectError: true,
		},
		{
			name:        testMissingSegmentCaseNameConstant,
			remote:      "https://github.com/octocat",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRemote, parsedRemote)
		})
	}
}
