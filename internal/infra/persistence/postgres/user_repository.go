package postgres

import (
	"context"
	"time"

	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"
	"buildops/internal/errors"
	"buildops/internal/infra/persistence/model"
	"buildops/internal/infra/persistence/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// groupNameSubquery orders users by the alphabetically first of their group
// names, so group ordering is stable without joining (and duplicating) rows.
const groupNameSubquery = "(SELECT MIN(groups.name) FROM groups" +
	" JOIN user_groups ON user_groups.group_id = groups.id" +
	" WHERE user_groups.user_id = users.id)"

// groupCorrelation is the correlated EXISTS body used by the groups filter.
const groupCorrelation = "SELECT 1 FROM user_groups" +
	" JOIN groups ON groups.id = user_groups.group_id" +
	" WHERE user_groups.user_id = users.id"

// userOrderable is the static whitelist of ordering keys for users.
var userOrderable = map[string]string{
	"id":          "users.id",
	"first_name":  "users.first_name",
	"last_name":   "users.last_name",
	"email":       "users.email",
	"groups":      groupNameSubquery,
	"is_active":   "users.is_active",
	"last_login":  "users.last_login",
	"date_joined": "users.date_joined",
}

// userSearchColumns are the columns the free-text search parameter spans.
var userSearchColumns = []string{
	"users.first_name",
	"users.last_name",
	"users.email",
}

// userRepository implements the domain UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// tenantScope restricts a users query to a single tenant. A nil companyID
// scopes to users that belong to no company.
func tenantScope(companyID *uuid.UUID) query.Scope {
	if companyID == nil {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("users.company_id IS NULL")
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.company_id = ?", *companyID)
	}
}

// Create persists a new user. Groups are attached through the join table only;
// the group rows themselves are never inserted here.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit("Groups.*").Create(userM).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.DateJoined = userM.DateJoined
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user without tenant scoping. Reserved for
// authentication flows; tenant-facing reads go through FindByIDInCompany.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Groups").
		First(&userM, "users.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by exact email. Used by login, so it is
// not tenant scoped.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Groups").
		First(&userM, "users.email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByIDInCompany retrieves a single user visible to the tenant. A user that
// exists but belongs to another tenant is indistinguishable from a missing one.
func (repo *userRepository) FindByIDInCompany(ctx context.Context, id uuid.UUID, companyID *uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Scopes(tenantScope(companyID)).
		Preload("Groups").
		First(&userM, "users.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user in company")
	}

	return toUserDomain(&userM), nil
}

// List retrieves a filtered, ordered, paginated page of the tenant's users
// together with the total match count.
func (repo *userRepository) List(ctx context.Context, companyID *uuid.UUID, listQuery repository.UserListQuery) ([]*entity.User, int64, error) {
	filters := append([]query.Scope{tenantScope(companyID)}, userFilters(listQuery)...)

	var total int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(filters...).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var userMs []*model.UserModel
	err = repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(filters...).
		Scopes(
			query.Ordering(userOrderable, listQuery.Ordering, "users.email DESC"),
			query.Paginate(listQuery.Page, listQuery.PageSize),
		).
		Preload("Groups").
		Find(&userMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, total, nil
}

// userFilters is the statically enumerated mapping from user filter
// parameters to predicate builders.
func userFilters(listQuery repository.UserListQuery) []query.Scope {
	return []query.Scope{
		query.Contains("users.first_name", listQuery.FirstName),
		query.Contains("users.last_name", listQuery.LastName),
		query.Contains("users.email", listQuery.Email),
		query.RelatedNameContains(groupCorrelation, "groups.name", listQuery.Groups),
		query.BoolIn("users.is_active", listQuery.IsActive),
		query.DateRange("users.last_login", listQuery.LastLogin),
		query.DateRange("users.date_joined", listQuery.DateJoined),
		query.ContainsAny(userSearchColumns, listQuery.Search),
	}
}

// Update overwrites the mutable columns of an existing user and, when the
// entity carries a group set, replaces the join-table rows to match it.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("first_name", "last_name", "email", "username", "password_hash", "company_id", "is_active").
		Updates(userM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if user.Groups != nil {
		assoc := repo.db.WithContext(ctx).
			Model(&model.UserModel{ID: user.ID}).
			Omit("Groups.*").
			Association("Groups")
		if err := assoc.Replace(userM.Groups); err != nil {
			return errors.Wrap(err, "failed to replace user groups")
		}
	}

	return nil
}

// DeleteInCompany removes a user visible to the tenant. Deleting a user of
// another tenant reports not found.
func (repo *userRepository) DeleteInCompany(ctx context.Context, id uuid.UUID, companyID *uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Scopes(tenantScope(companyID)).
		Delete(&model.UserModel{}, "users.id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps a successful authentication.
func (repo *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_login", at).Error
	if err != nil {
		return errors.Wrap(err, "failed to update last login")
	}

	return nil
}

// ClearCompany detaches every user of the company before the company row is
// removed.
func (repo *userRepository) ClearCompany(ctx context.Context, companyID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("company_id = ?", companyID).
		Update("company_id", nil).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear company from users")
	}

	return nil
}
