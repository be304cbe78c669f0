package leave

import (
	"context"
	"errors"

	"github.com/kamepallinandini997/leave-management-poc/internal/employee"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, leaveID string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	SaveAll(ctx context.Context, leaves []Leave) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	store     *filestore.Collection[Leave]
	employees employee.Repository
}

// NewRepository builds the leave repository. Employee existence checks go
// through the employee repository, which reads its own collection.
func NewRepository(store *filestore.Collection[Leave], employees employee.Repository) Repository {
	return &repository{store: store, employees: employees}
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	return r.store.Load(ctx)
}

func (r *repository) FindByID(ctx context.Context, leaveID string) (*Leave, error) {
	leaves, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range leaves {
		if leaves[i].LeaveID == leaveID {
			return &leaves[i], nil
		}
	}
	return nil, filestore.ErrRecordNotFound
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	leaves, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]Leave, 0, len(leaves))
	for _, l := range leaves {
		if l.EmployeeID == employeeID {
			owned = append(owned, l)
		}
	}
	return owned, nil
}

func (r *repository) SaveAll(ctx context.Context, leaves []Leave) error {
	return r.store.Save(ctx, leaves)
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	_, err := r.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, filestore.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
