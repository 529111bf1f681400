package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/releasekit/internal/execshell"
)

const (
	pullRequestSubcommandConstant            = "pr"
	createSubcommandConstant                 = "create"
	apiSubcommandConstant                    = "api"
	baseFlagConstant                         = "--base"
	headFlagConstant                         = "--head"
	titleFlagConstant                        = "--title"
	bodyFlagConstant                         = "--body"
	methodFlagConstant                       = "-X"
	httpMethodPutConstant                    = "PUT"
	inputFlagConstant                        = "--input"
	stdinReferenceConstant                   = "-"
	acceptHeaderFlagConstant                 = "-H"
	acceptHeaderValueConstant                = "Accept: application/vnd.github+json"
	ownerFieldNameConstant                   = "owner"
	repositoryFieldNameConstant              = "repository"
	branchFieldNameConstant                  = "branch"
	baseBranchFieldNameConstant              = "base_branch"
	headBranchFieldNameConstant              = "head_branch"
	titleFieldNameConstant                   = "title"
	requiredValueMessageConstant             = "value required"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	payloadEncodingErrorTemplateConstant     = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	branchProtectionEndpointTemplateConstant = "repos/%s/%s/branches/%s/protection"
	createPullRequestOperationNameConstant   = OperationName("CreatePullRequest")
	updateProtectionOperationNameConstant    = OperationName("UpdateBranchProtection")
	requiredApprovingReviewCountConstant     = 1
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequestSpecification describes a pull request to open.
type PullRequestSpecification struct {
	BaseBranch string
	HeadBranch string
	Title      string
	Body       string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CreatePullRequest opens a pull request using gh pr create and returns the
// pull request URL printed by the CLI.
func (client *Client) CreatePullRequest(executionContext context.Context, specification PullRequestSpecification) (string, error) {
	if len(strings.TrimSpace(specification.BaseBranch)) == 0 {
		return "", InvalidInputError{FieldName: baseBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(specification.HeadBranch)) == 0 {
		return "", InvalidInputError{FieldName: headBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(specification.Title)) == 0 {
		return "", InvalidInputError{FieldName: titleFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			createSubcommandConstant,
			baseFlagConstant,
			specification.BaseBranch,
			headFlagConstant,
			specification.HeadBranch,
			titleFlagConstant,
			specification.Title,
			bodyFlagConstant,
			specification.Body,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: createPullRequestOperationNameConstant, Cause: executionError}
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// UpdateBranchProtection enables protection on the named branch using gh api.
// The payload enforces admin rules and requires one approving review.
func (client *Client) UpdateBranchProtection(executionContext context.Context, ownerName string, repositoryName string, branchName string) error {
	if len(strings.TrimSpace(ownerName)) == 0 {
		return InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		EnforceAdmins              bool `json:"enforce_admins"`
		RequiredStatusChecks       any  `json:"required_status_checks"`
		RequiredPullRequestReviews struct {
			RequiredApprovingReviewCount int `json:"required_approving_review_count"`
		} `json:"required_pull_request_reviews"`
		Restrictions any `json:"restrictions"`
	}{}
	payload.EnforceAdmins = true
	payload.RequiredPullRequestReviews.RequiredApprovingReviewCount = requiredApprovingReviewCountConstant

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: updateProtectionOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(branchProtectionEndpointTemplateConstant, ownerName, repositoryName, branchName),
			methodFlagConstant,
			httpMethodPutConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
			inputFlagConstant,
			stdinReferenceConstant,
		},
		StandardInput: payloadBytes,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: updateProtectionOperationNameConstant, Cause: executionError}
	}

	return nil
}
