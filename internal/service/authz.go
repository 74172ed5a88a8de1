package service

import (
	"fmt"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
)

// authorize allows only the owner of resource to perform action.
func authorize(actorID int64, resource domain.Owned, action string) error {
	if actorID <= 0 || resource.OwnedBy() != actorID {
		return apperr.Forbidden(fmt.Sprintf("you do not have permission to %s", action))
	}
	return nil
}
