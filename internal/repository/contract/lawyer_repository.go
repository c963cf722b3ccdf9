package contract

import (
	"context"

	"lawpro-be/internal/entity"
	"lawpro-be/internal/repository/specification"
)

// LawyerRepository reads the lawyer directory. Create exists for seeding.
type LawyerRepository interface {
	Create(ctx context.Context, lawyer *entity.Lawyer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lawyer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
