package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

type authorityRepository struct {
	db *gorm.DB
}

func NewAuthorityRepository(db *gorm.DB) domain.AuthorityRepository {
	return &authorityRepository{db: db}
}

func (r *authorityRepository) CreateMapping(ctx context.Context, mapping *domain.AuthorityMapping) error {
	if err := r.db.WithContext(ctx).Create(mapping).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *authorityRepository) GetMappingByCategory(ctx context.Context, category string) (*domain.AuthorityMapping, error) {
	var mapping domain.AuthorityMapping
	if err := r.db.WithContext(ctx).First(&mapping, "category = ?", category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *authorityRepository) GetAllMappings(ctx context.Context) ([]domain.AuthorityMapping, error) {
	var mappings []domain.AuthorityMapping
	if err := r.db.WithContext(ctx).Order("category ASC").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *authorityRepository) DeleteMapping(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.AuthorityMapping{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
