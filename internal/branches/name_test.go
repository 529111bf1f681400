package branches_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/internal/branches"
)

func TestParseBranchName(testInstance *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedName branches.BranchName
		expectError  bool
	}{
		{
			name:         "feature_branch",
			input:        "feat/widget",
			expectedName: branches.BranchName{Tag: "feat", Topic: "widget"},
		},
		{
			name:         "nested_topic",
			input:        "fix/login/redirect-loop",
			expectedName: branches.BranchName{Tag: "fix", Topic: "login/redirect-loop"},
		},
		{
			name:         "surrounding_whitespace",
			input:        "  docs/readme ",
			expectedName: branches.BranchName{Tag: "docs", Topic: "readme"},
		},
		{
			name:        "missing_delimiter",
			input:       "widget",
			expectError: true,
		},
		{
			name:        "unknown_tag",
			input:       "wip/widget",
			expectError: true,
		},
		{
			name:        "empty_topic",
			input:       "feat/",
			expectError: true,
		},
		{
			name:        "topic_with_spaces",
			input:       "feat/bad topic",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedName, parseError := branches.ParseBranchName(testCase.input)
			if testCase.expectError {
				invalidBranchNameError := &branches.InvalidBranchNameError{}
				require.ErrorAs(testInstance, parseError, &invalidBranchNameError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedName, parsedName)
			require.Equal(testInstance, testCase.expectedName.Tag+"/"+testCase.expectedName.Topic, parsedName.String())
		})
	}
}

func TestWorkflowConfigurationSanitizeFillsDefaults(testInstance *testing.T) {
	sanitized := branches.WorkflowConfiguration{RemoteName: " upstream ", MainBranch: "", CandidateBranch: "  "}.Sanitize()

	require.Equal(testInstance, "upstream", sanitized.RemoteName)
	require.Equal(testInstance, "main", sanitized.MainBranch)
	require.Equal(testInstance, "release-candidate", sanitized.CandidateBranch)
}
