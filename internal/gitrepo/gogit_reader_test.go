package gitrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/temirov/git-lost/internal/gitrepo"
)

const (
	fixtureFileNameConstant      = "README.md"
	fixtureCommitMessageConstant = "initial commit"
	fixtureAuthorNameConstant    = "Fixture Author"
	fixtureAuthorEmailConstant   = "fixture@example.com"
)

func createFixtureRepository(testInstance *testing.T) (string, *gogit.Repository, plumbing.Hash) {
	repositoryPath := testInstance.TempDir()

	repository, initializationError := gogit.PlainInit(repositoryPath, false)
	require.NoError(testInstance, initializationError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	writeError := os.WriteFile(filepath.Join(repositoryPath, fixtureFileNameConstant), []byte("fixture\n"), 0o644)
	require.NoError(testInstance, writeError)

	_, addError := worktree.Add(fixtureFileNameConstant)
	require.NoError(testInstance, addError)

	commitHash, commitError := worktree.Commit(fixtureCommitMessageConstant, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  fixtureAuthorNameConstant,
			Email: fixtureAuthorEmailConstant,
			When:  time.Now(),
		},
	})
	require.NoError(testInstance, commitError)

	return repositoryPath, repository, commitHash
}

func TestGoGitRefReaderListReferences(testInstance *testing.T) {
	repositoryPath, repository, commitHash := createFixtureRepository(testInstance)

	featureReference := plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature/login"), commitHash)
	require.NoError(testInstance, repository.Storer.SetReference(featureReference))

	remoteReference := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "master"), commitHash)
	require.NoError(testInstance, repository.Storer.SetReference(remoteReference))

	tagReference := plumbing.NewHashReference(plumbing.NewTagReferenceName("v1.0.0"), commitHash)
	require.NoError(testInstance, repository.Storer.SetReference(tagReference))

	reader := gitrepo.NewGoGitRefReader()
	listedReferences, listError := reader.ListReferences(context.Background(), repositoryPath)
	require.NoError(testInstance, listError)

	expectedReferences := []gitrepo.ListedReference{
		{Commit: commitHash.String(), Name: "refs/heads/feature/login"},
		{Commit: commitHash.String(), Name: "refs/heads/master"},
		{Commit: commitHash.String(), Name: "refs/remotes/origin/master"},
		{Commit: commitHash.String(), Name: "refs/tags/v1.0.0"},
	}
	require.Equal(testInstance, expectedReferences, listedReferences)
}

func TestGoGitRefReaderGetCurrentBranch(testInstance *testing.T) {
	repositoryPath, repository, commitHash := createFixtureRepository(testInstance)

	reader := gitrepo.NewGoGitRefReader()

	branchName, branchError := reader.GetCurrentBranch(context.Background(), repositoryPath)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, "master", branchName)

	detachedHeadReference := plumbing.NewHashReference(plumbing.HEAD, commitHash)
	require.NoError(testInstance, repository.Storer.SetReference(detachedHeadReference))

	detachedBranchName, detachedError := reader.GetCurrentBranch(context.Background(), repositoryPath)
	require.NoError(testInstance, detachedError)
	require.Empty(testInstance, detachedBranchName)
}

func TestGoGitRefReaderValidatesRepositoryPath(testInstance *testing.T) {
	reader := gitrepo.NewGoGitRefReader()

	_, listError := reader.ListReferences(context.Background(), " ")
	require.ErrorIs(testInstance, listError, gitrepo.ErrRepositoryPathRequired)

	_, branchError := reader.GetCurrentBranch(context.Background(), "")
	require.ErrorIs(testInstance, branchError, gitrepo.ErrRepositoryPathRequired)
}

func TestGoGitRefReaderRejectsMissingRepository(testInstance *testing.T) {
	reader := gitrepo.NewGoGitRefReader()

	_, listError := reader.ListReferences(context.Background(), testInstance.TempDir())
	require.Error(testInstance, listError)
}
