package employeeerrors

import (
	"net/http"

	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found.",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeAlreadyExists,
		"Employee ID already exists.",
		http.StatusBadRequest,
	)
)
