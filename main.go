package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/releasekit/cmd/cli"
	"github.com/temirov/releasekit/internal/releases/pullrequest"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	exitErrorTemplateConstant = "%v\n"
	failureExitCodeConstant   = 1
	noOpExitCodeConstant      = 2
)

// main executes the releasekit command-line application. Conditions that make
// a command a no-op rather than a failure exit with a distinct code so
// automation can tell them apart.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(resolveExitCode(executionError))
}

func resolveExitCode(executionError error) int {
	if errors.Is(executionError, semver.ErrNothingToRelease) {
		return noOpExitCodeConstant
	}
	if errors.Is(executionError, pullrequest.ErrNoDifference) {
		return noOpExitCodeConstant
	}
	return failureExitCodeConstant
}
