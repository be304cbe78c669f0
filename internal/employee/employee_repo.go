package employee

import (
	"context"

	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, empID string) (*Employee, error)
	SaveAll(ctx context.Context, employees []Employee) error
}

type repository struct {
	store *filestore.Collection[Employee]
}

func NewRepository(store *filestore.Collection[Employee]) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	return r.store.Load(ctx)
}

func (r *repository) FindByID(ctx context.Context, empID string) (*Employee, error) {
	employees, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].EmpID == empID {
			return &employees[i], nil
		}
	}
	return nil, filestore.ErrRecordNotFound
}

func (r *repository) SaveAll(ctx context.Context, employees []Employee) error {
	return r.store.Save(ctx, employees)
}
