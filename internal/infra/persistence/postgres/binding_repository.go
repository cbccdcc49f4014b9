package postgres

import (
	"context"
	"time"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	domainerrors "github.com/norrisng/FcomServer/internal/domain/errors"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bindingRepository implements the repository.BindingRepository interface.
type bindingRepository struct {
	db *gorm.DB
}

// NewBindingRepository is the constructor for bindingRepository.
func NewBindingRepository(db *gorm.DB) repository.BindingRepository {
	return &bindingRepository{
		db: db,
	}
}

// Create persists a new, unverified binding.
func (repo *bindingRepository) Create(ctx context.Context, binding *entity.Binding) error {
	bindingM := fromBindingDomain(binding)

	if err := repo.db.WithContext(ctx).Create(bindingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBindingExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required binding information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create binding")
	}

	return nil
}

// FindByToken retrieves a binding by its registration token.
func (repo *bindingRepository) FindByToken(ctx context.Context, token string) (*entity.Binding, error) {
	var bindingM model.BindingModel

	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&bindingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, errors.Wrap(err, "failed to find binding by token")
	}

	return toBindingDomain(&bindingM), nil
}

// FindByExternalID retrieves a binding by its Discord identity.
func (repo *bindingRepository) FindByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error) {
	var bindingM model.BindingModel

	if err := repo.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&bindingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, errors.Wrap(err, "failed to find binding by external ID")
	}

	return toBindingDomain(&bindingM), nil
}

// UpdateConfirmation sets the callsign, marks the binding verified and refreshes last_updated.
func (repo *bindingRepository) UpdateConfirmation(ctx context.Context, token, callsign string, lastUpdated time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BindingModel{}).
		Where("token = ?", token).
		Updates(map[string]any{
			"callsign":     callsign,
			"is_verified":  true,
			"last_updated": lastUpdated,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to confirm binding")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBindingNotFound
	}

	return nil
}

// DeleteByToken removes a binding; reports whether a row existed.
func (repo *bindingRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.BindingModel{})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete binding by token")
	}

	return result.RowsAffected > 0, nil
}

// DeleteByExternalID removes a binding; reports whether a row existed.
func (repo *bindingRepository) DeleteByExternalID(ctx context.Context, externalID int64) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		Delete(&model.BindingModel{})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete binding by external ID")
	}

	return result.RowsAffected > 0, nil
}

// DeleteExpired removes unverified bindings older than unverifiedBefore and
// verified bindings older than verifiedBefore.
func (repo *bindingRepository) DeleteExpired(ctx context.Context, unverifiedBefore, verifiedBefore time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("(is_verified = ? AND last_updated < ?) OR (is_verified = ? AND last_updated < ?)",
			false, unverifiedBefore, true, verifiedBefore).
		Delete(&model.BindingModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired bindings")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toBindingDomain converts a GORM BindingModel to a domain Binding entity.
func toBindingDomain(data *model.BindingModel) *entity.Binding {
	if data == nil {
		return nil
	}

	callsign := ""
	if data.Callsign != nil {
		callsign = *data.Callsign
	}

	return &entity.Binding{
		Token:       data.Token,
		ExternalID:  data.ExternalID,
		DisplayName: data.DisplayName,
		IsVerified:  data.IsVerified,
		Callsign:    callsign,
		LastUpdated: data.LastUpdated,
	}
}

// fromBindingDomain converts a domain Binding entity to a GORM BindingModel for persistence.
func fromBindingDomain(data *entity.Binding) *model.BindingModel {
	if data == nil {
		return nil
	}

	// Callsign stays NULL until the binding is confirmed.
	var callsign *string
	if data.Callsign != "" {
		cs := data.Callsign
		callsign = &cs
	}

	return &model.BindingModel{
		Token:       data.Token,
		ExternalID:  data.ExternalID,
		DisplayName: data.DisplayName,
		IsVerified:  data.IsVerified,
		Callsign:    callsign,
		LastUpdated: data.LastUpdated,
	}
}
