package protect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/protect"
)

const testRepositoryPathConstant = "/tmp/widgets"

type gatewayStub struct {
	queuedRemoteURL string
	queuedError     error
}

func (stub *gatewayStub) GetRemoteURL(_ context.Context, _ string, _ string) (string, error) {
	return stub.queuedRemoteURL, stub.queuedError
}

type hostingClientStub struct {
	recordedCalls [][3]string
	queuedError   error
}

func (stub *hostingClientStub) UpdateBranchProtection(_ context.Context, ownerName string, repositoryName string, branchName string) error {
	stub.recordedCalls = append(stub.recordedCalls, [3]string{ownerName, repositoryName, branchName})
	return stub.queuedError
}

func TestProtectResolvesOwnerFromRemote(testInstance *testing.T) {
	testCases := []struct {
		name      string
		remoteURL string
	}{
		{name: "https_remote", remoteURL: "https://github.com/octocat/widgets.git"},
		{name: "scp_like_remote", remoteURL: "git@github.com:octocat/widgets.git"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			hostingClient := &hostingClientStub{}
			service, serviceError := protect.NewService(zap.NewNop(), &gatewayStub{queuedRemoteURL: testCase.remoteURL}, hostingClient)
			require.NoError(subtestInstance, serviceError)

			protectResult, protectError := service.Protect(context.Background(), protect.Options{
				RepositoryPath: testRepositoryPathConstant,
				Workflow:       branches.DefaultWorkflowConfiguration(),
			})

			require.NoError(subtestInstance, protectError)
			require.Equal(subtestInstance, protect.Result{
				OwnerName:       "octocat",
				RepositoryName:  "widgets",
				ProtectedBranch: "main",
			}, protectResult)
			require.Equal(subtestInstance, [][3]string{{"octocat", "widgets", "main"}}, hostingClient.recordedCalls)
		})
	}
}

func TestProtectRejectsUnparsableRemote(testInstance *testing.T) {
	hostingClient := &hostingClientStub{}
	service, serviceError := protect.NewService(zap.NewNop(), &gatewayStub{queuedRemoteURL: "not a remote"}, hostingClient)
	require.NoError(testInstance, serviceError)

	_, protectError := service.Protect(context.Background(), protect.Options{
		RepositoryPath: testRepositoryPathConstant,
		Workflow:       branches.DefaultWorkflowConfiguration(),
	})

	parseError := gitrepo.RemoteURLParseError{}
	require.ErrorAs(testInstance, protectError, &parseError)
	require.Empty(testInstance, hostingClient.recordedCalls)
}

func TestProtectSurfacesRemoteLookupFailure(testInstance *testing.T) {
	lookupFailure := errors.New("no such remote")
	service, serviceError := protect.NewService(zap.NewNop(), &gatewayStub{queuedError: lookupFailure}, &hostingClientStub{})
	require.NoError(testInstance, serviceError)

	_, protectError := service.Protect(context.Background(), protect.Options{
		RepositoryPath: testRepositoryPathConstant,
		Workflow:       branches.DefaultWorkflowConfiguration(),
	})

	require.ErrorIs(testInstance, protectError, lookupFailure)
}

func TestProtectSurfacesHostingFailure(testInstance *testing.T) {
	hostingFailure := errors.New("api unavailable")
	service, serviceError := protect.NewService(zap.NewNop(), &gatewayStub{queuedRemoteURL: "https://github.com/octocat/widgets.git"}, &hostingClientStub{queuedError: hostingFailure})
	require.NoError(testInstance, serviceError)

	_, protectError := service.Protect(context.Background(), protect.Options{
		RepositoryPath: testRepositoryPathConstant,
		Workflow:       branches.DefaultWorkflowConfiguration(),
	})

	require.ErrorIs(testInstance, protectError, hostingFailure)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingGatewayError := protect.NewService(zap.NewNop(), nil, &hostingClientStub{})
	require.ErrorIs(testInstance, missingGatewayError, protect.ErrRepositoryGatewayNotConfigured)

	_, missingClientError := protect.NewService(zap.NewNop(), &gatewayStub{}, nil)
	require.ErrorIs(testInstance, missingClientError, protect.ErrHostingClientNotConfigured)
}
