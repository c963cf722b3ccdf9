package implementation

import (
	"context"
	"errors"

	"lawpro-be/internal/entity"
	"lawpro-be/internal/mapper"
	"lawpro-be/internal/model"
	"lawpro-be/internal/repository/contract"
	"lawpro-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LawyerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LawyerMapper
}

func NewLawyerRepository(db *gorm.DB) contract.LawyerRepository {
	return &LawyerRepositoryImpl{
		db:     db,
		mapper: mapper.NewLawyerMapper(),
	}
}

func (r *LawyerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LawyerRepositoryImpl) Create(ctx context.Context, lawyer *entity.Lawyer) error {
	m := r.mapper.ToModel(lawyer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lawyer = *r.mapper.ToEntity(m)
	return nil
}

func (r *LawyerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error) {
	var m model.Lawyer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LawyerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lawyer, error) {
	var models []*model.Lawyer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LawyerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Lawyer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
