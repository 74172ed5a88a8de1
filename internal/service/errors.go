package service

import (
	"errors"

	"vidtube/internal/apperr"
	"vidtube/internal/repository"
)

// repoError maps a repository error to the client-facing taxonomy.
func repoError(err error, notFound, internal string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, repository.ErrConflict):
		return apperr.Conflict(internal)
	default:
		return apperr.Internal(internal, err)
	}
}
