package create_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/branches/create"
)

const (
	testRepositoryPathConstant = "/workspace/repo"
)

type gatewayStub struct {
	branches.RepositoryGateway

	cleanWorktree bool
	currentBranch string
	resetCalls    [][2]string
	pushCalls     [][2]string
	pushFailure   error
}

func (stub *gatewayStub) CheckCleanWorktree(_ context.Context, _ string) (bool, error) {
	return stub.cleanWorktree, nil
}

func (stub *gatewayStub) GetCurrentBranch(_ context.Context, _ string) (string, error) {
	return stub.currentBranch, nil
}

func (stub *gatewayStub) ResetBranchToBase(_ context.Context, _ string, branchName string, baseReference string) error {
	stub.resetCalls = append(stub.resetCalls, [2]string{branchName, baseReference})
	return nil
}

func (stub *gatewayStub) PushBranchWithUpstream(_ context.Context, _ string, remoteName string, branchName string) error {
	stub.pushCalls = append(stub.pushCalls, [2]string{remoteName, branchName})
	return stub.pushFailure
}

func newService(testInstance *testing.T, gateway branches.RepositoryGateway) *create.Service {
	service, serviceError := create.NewService(zap.NewNop(), gateway)
	require.NoError(testInstance, serviceError)
	return service
}

func defaultOptions(branchName string) create.Options {
	return create.Options{
		RepositoryPath: testRepositoryPathConstant,
		BranchName:     branchName,
		Configuration:  branches.DefaultWorkflowConfiguration(),
	}
}

func TestCreateChecksOutAndPushesBranch(testInstance *testing.T) {
	gateway := &gatewayStub{cleanWorktree: true, currentBranch: "release-candidate"}
	service := newService(testInstance, gateway)

	creationResult, creationError := service.Create(context.Background(), defaultOptions("feat/widget"))

	require.NoError(testInstance, creationError)
	require.Equal(testInstance, create.Result{BranchName: "feat/widget", Pushed: true}, creationResult)
	require.Equal(testInstance, [][2]string{{"feat/widget", "release-candidate"}}, gateway.resetCalls)
	require.Equal(testInstance, [][2]string{{"origin", "feat/widget"}}, gateway.pushCalls)
}

func TestCreateRejectsInvalidNameBeforeTouchingRepository(testInstance *testing.T) {
	testCases := []struct {
		name       string
		branchName string
	}{
		{name: "missing_tag", branchName: "widget"},
		{name: "unknown_tag", branchName: "wip/widget"},
		{name: "invalid_topic", branchName: "feat/bad topic"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			gateway := &gatewayStub{cleanWorktree: true, currentBranch: "release-candidate"}
			service := newService(testInstance, gateway)

			_, creationError := service.Create(context.Background(), defaultOptions(testCase.branchName))

			invalidBranchNameError := &branches.InvalidBranchNameError{}
			require.ErrorAs(testInstance, creationError, &invalidBranchNameError)
			require.Empty(testInstance, gateway.resetCalls)
			require.Empty(testInstance, gateway.pushCalls)
		})
	}
}

func TestCreateRejectsDirtyWorktree(testInstance *testing.T) {
	gateway := &gatewayStub{cleanWorktree: false, currentBranch: "release-candidate"}
	service := newService(testInstance, gateway)

	_, creationError := service.Create(context.Background(), defaultOptions("feat/widget"))

	dirtyTreeError := &branches.DirtyTreeError{}
	require.ErrorAs(testInstance, creationError, &dirtyTreeError)
	require.Equal(testInstance, testRepositoryPathConstant, dirtyTreeError.RepositoryPath)
	require.Empty(testInstance, gateway.resetCalls)
}

func TestCreateRejectsWrongBaseBranch(testInstance *testing.T) {
	gateway := &gatewayStub{cleanWorktree: true, currentBranch: "main"}
	service := newService(testInstance, gateway)

	_, creationError := service.Create(context.Background(), defaultOptions("feat/widget"))

	wrongBaseBranchError := &branches.WrongBaseBranchError{}
	require.ErrorAs(testInstance, creationError, &wrongBaseBranchError)
	require.Equal(testInstance, "main", wrongBaseBranchError.CurrentBranch)
	require.Empty(testInstance, gateway.resetCalls)
}

func TestCreateToleratesPushFailure(testInstance *testing.T) {
	gateway := &gatewayStub{
		cleanWorktree: true,
		currentBranch: "release-candidate",
		pushFailure:   context.DeadlineExceeded,
	}
	service := newService(testInstance, gateway)

	creationResult, creationError := service.Create(context.Background(), defaultOptions("fix/crash"))

	require.NoError(testInstance, creationError)
	require.False(testInstance, creationResult.Pushed)
	require.Equal(testInstance, "fix/crash", creationResult.BranchName)
}
