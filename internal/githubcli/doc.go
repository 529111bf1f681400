// Package githubcli provides a typed client over the GitHub CLI for the
// hosting operations the release workflow needs: opening pull requests and
// enabling branch protection.
package githubcli
