package leave

import (
	"errors"
	"net/http"

	leaveerrors "github.com/kamepallinandini997/leave-management-poc/internal/leave/errors"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"
)

func mapRepositoryError(err error, leaveID string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, filestore.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound.WithDetails(map[string]string{"leave_id": leaveID})
	}

	if errors.Is(err, filestore.ErrCorrupt) {
		return apperror.Wrap(err,
			apperror.ErrStorageUnavailable.Code,
			apperror.ErrStorageUnavailable.Message,
			http.StatusInternalServerError,
		)
	}

	return err
}
