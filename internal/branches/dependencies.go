package branches

import (
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/execshell"
	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a
// shell-backed default. Human readable logging attaches the console event
// observer so command lifecycles surface as plain messages.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

// ResolveRepositoryGateway returns the provided gateway or constructs one from
// the executor.
func ResolveRepositoryGateway(existing RepositoryGateway, executor GitExecutor) (RepositoryGateway, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
