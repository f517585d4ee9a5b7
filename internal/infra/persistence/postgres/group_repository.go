package postgres

import (
	"context"

	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"
	"buildops/internal/errors"
	"buildops/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// groupRepository implements the domain GroupRepository interface using GORM.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository is the constructor for groupRepository.
func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

// FindByNames resolves groups by exact name. Unknown names are absent from
// the result rather than an error.
func (repo *groupRepository) FindByNames(ctx context.Context, names []string) ([]*entity.Group, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var groupMs []*model.GroupModel
	err := repo.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&groupMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find groups by names")
	}

	groups := make([]*entity.Group, 0, len(groupMs))
	for _, groupM := range groupMs {
		groups = append(groups, toGroupDomain(groupM))
	}

	return groups, nil
}
