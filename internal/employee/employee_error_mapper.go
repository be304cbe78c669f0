package employee

import (
	"errors"
	"net/http"

	employeeerrors "github.com/kamepallinandini997/leave-management-poc/internal/employee/errors"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"
)

func mapRepositoryError(err error, empID string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, filestore.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound.WithDetails(map[string]string{"emp_id": empID})
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
