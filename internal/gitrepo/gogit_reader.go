package gitrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	openRepositoryFailureTemplateConstant    = "failed to open repository at %s: %w"
	iterateReferencesFailureTemplateConstant = "failed to iterate references: %w"
	readHeadFailureTemplateConstant          = "failed to read HEAD: %w"
)

// GoGitRefReader lists references and the active branch without invoking the git executable.
type GoGitRefReader struct{}

// NewGoGitRefReader constructs a GoGitRefReader.
func NewGoGitRefReader() *GoGitRefReader {
	return &GoGitRefReader{}
}

// ListReferences reports every non-symbolic reference recorded in the repository,
// ordered by reference name to match the ordering of git show-ref.
func (reader *GoGitRefReader) ListReferences(executionContext context.Context, repositoryPath string) ([]ListedReference, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return nil, ErrRepositoryPathRequired
	}

	repository, openError := gogit.PlainOpenWithOptions(repositoryPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return nil, fmt.Errorf(openRepositoryFailureTemplateConstant, repositoryPath, openError)
	}

	referenceIterator, iteratorError := repository.References()
	if iteratorError != nil {
		return nil, fmt.Errorf(iterateReferencesFailureTemplateConstant, iteratorError)
	}

	listedReferences := []ListedReference{}
	iterationError := referenceIterator.ForEach(func(reference *plumbing.Reference) error {
		if reference.Type() != plumbing.HashReference {
			return nil
		}
		if reference.Name() == plumbing.HEAD {
			return nil
		}
		listedReferences = append(listedReferences, ListedReference{
			Commit: reference.Hash().String(),
			Name:   reference.Name().String(),
		})
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(iterateReferencesFailureTemplateConstant, iterationError)
	}

	sort.Slice(listedReferences, func(firstIndex int, secondIndex int) bool {
		return listedReferences[firstIndex].Name < listedReferences[secondIndex].Name
	})
	return listedReferences, nil
}

// GetCurrentBranch reports the checked out branch name, or an empty string for a detached HEAD.
func (reader *GoGitRefReader) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return "", ErrRepositoryPathRequired
	}

	repository, openError := gogit.PlainOpenWithOptions(repositoryPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return "", fmt.Errorf(openRepositoryFailureTemplateConstant, repositoryPath, openError)
	}

	headReference, headError := repository.Reference(plumbing.HEAD, false)
	if headError != nil {
		return "", fmt.Errorf(readHeadFailureTemplateConstant, headError)
	}
	if headReference.Type() != plumbing.SymbolicReference {
		return "", nil
	}
	return headReference.Target().Short(), nil
}
