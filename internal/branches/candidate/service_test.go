package candidate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/branches/candidate"
)

const (
	testRepositoryPathConstant = "/workspace/repo"
)

type gatewayStub struct {
	branches.RepositoryGateway

	resetCalls    [][2]string
	resetFailures map[string]error
	pushCalls     [][2]string
	pushFailure   error
}

func (stub *gatewayStub) FetchAllRemotes(_ context.Context, _ string) error {
	return nil
}

func (stub *gatewayStub) ResetBranchToBase(_ context.Context, _ string, branchName string, baseReference string) error {
	stub.resetCalls = append(stub.resetCalls, [2]string{branchName, baseReference})
	if stub.resetFailures != nil {
		return stub.resetFailures[baseReference]
	}
	return nil
}

func (stub *gatewayStub) PushBranchWithUpstream(_ context.Context, _ string, remoteName string, branchName string) error {
	stub.pushCalls = append(stub.pushCalls, [2]string{remoteName, branchName})
	return stub.pushFailure
}

func newService(testInstance *testing.T, gateway branches.RepositoryGateway) *candidate.Service {
	service, serviceError := candidate.NewService(zap.NewNop(), gateway)
	require.NoError(testInstance, serviceError)
	return service
}

func defaultOptions() candidate.Options {
	return candidate.Options{
		RepositoryPath: testRepositoryPathConstant,
		Configuration:  branches.DefaultWorkflowConfiguration(),
	}
}

func TestRefreshCreatesAndPushesCandidate(testInstance *testing.T) {
	gateway := &gatewayStub{}
	service := newService(testInstance, gateway)

	refreshResult, refreshError := service.Refresh(context.Background(), defaultOptions())

	require.NoError(testInstance, refreshError)
	require.Equal(testInstance, candidate.Result{CandidateBranch: "release-candidate", Pushed: true}, refreshResult)
	require.Equal(testInstance, [][2]string{{"release-candidate", "origin/release-candidate"}}, gateway.resetCalls)
	require.Equal(testInstance, [][2]string{{"origin", "release-candidate"}}, gateway.pushCalls)
}

func TestRefreshReportsUnpushedCandidate(testInstance *testing.T) {
	gateway := &gatewayStub{pushFailure: errors.New("no remote configured")}
	service := newService(testInstance, gateway)

	refreshResult, refreshError := service.Refresh(context.Background(), defaultOptions())

	require.NoError(testInstance, refreshError)
	require.False(testInstance, refreshResult.Pushed)
}

func TestRefreshFailsWhenNoBaseResolves(testInstance *testing.T) {
	baseFailure := errors.New("unknown ref")
	gateway := &gatewayStub{
		resetFailures: map[string]error{
			"origin/release-candidate": baseFailure,
			"origin/main":              baseFailure,
			"main":                     baseFailure,
			"":                         baseFailure,
		},
	}
	service := newService(testInstance, gateway)

	_, refreshError := service.Refresh(context.Background(), defaultOptions())

	preparationError := &branches.CandidatePreparationError{}
	require.ErrorAs(testInstance, refreshError, &preparationError)
	require.Equal(testInstance, "release-candidate", preparationError.CandidateBranch)
	require.Empty(testInstance, gateway.pushCalls)
}
