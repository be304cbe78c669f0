package leaveerrors

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
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found.",
		http.StatusNotFound,
	)
	ErrOwningEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found for this leave.",
		http.StatusNotFound,
	)
	ErrInvalidLeaveStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave status",
		http.StatusBadRequest,
	)
)
