package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProviderProfileRepository
	addressRepo repository.AddressRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProviderProfileRepository
	AddressRepo repository.AddressRepository
	Logger      *slog.Logger
}

var (
	providerProfileSchema = validation.Schema{
		{Field: "experienceYears", Check: validation.AtLeast(0), Message: "experienceYears must not be negative"},
	}

	addressSchema = validation.Schema{
		{Field: "label", Check: validation.Required(), Message: "label is required"},
		{Field: "fullAddress", Check: validation.Required(), Message: "fullAddress is required"},
	}
)

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		addressRepo: params.AddressRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProviderProfile(ctx context.Context, actor *policy.Actor) (*entity.ProviderProfile, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}

	profile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)

	return profile, errors.Wrap(err, "failed to find provider profile")
}

func (srv *profileService) UpsertProviderProfile(ctx context.Context, actor *policy.Actor, input *usecase.ProviderProfileInput) (*entity.ProviderProfile, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}
	if err := providerProfileSchema.Validate(map[string]any{"experienceYears": input.ExperienceYears}); err != nil {
		return nil, err
	}

	profile := &entity.ProviderProfile{
		UserID:          actor.UserID,
		OccupationID:    input.OccupationID,
		Bio:             strings.TrimSpace(input.Bio),
		ExperienceYears: input.ExperienceYears,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if input.OccupationID != nil {
			if _, err := repoFactory.NewCatalogRepository().FindOccupationByID(ctx, *input.OccupationID); err != nil {
				return errors.Wrap(err, "failed to find occupation")
			}
		}

		return errors.Wrap(repoFactory.NewProviderProfileRepository().Upsert(ctx, profile), "failed to upsert provider profile")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute provider profile transaction")
	}

	srv.log(ctx).Info("Provider profile saved", slog.Any("userID", actor.UserID))

	return profile, nil
}

func (srv *profileService) ListAddresses(ctx context.Context, actor *policy.Actor) ([]*entity.Address, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	addresses, err := srv.addressRepo.FindAddressesByUser(ctx, actor.UserID)

	return addresses, errors.Wrap(err, "failed to list addresses")
}

func (srv *profileService) CreateAddress(ctx context.Context, actor *policy.Actor, input *usecase.AddressInput) (*entity.Address, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := addressSchema.Validate(map[string]any{
		"label":       strings.TrimSpace(input.Label),
		"fullAddress": strings.TrimSpace(input.FullAddress),
	}); err != nil {
		return nil, err
	}

	address := &entity.Address{
		UserID:      actor.UserID,
		Label:       strings.TrimSpace(input.Label),
		FullAddress: strings.TrimSpace(input.FullAddress),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		existing, err := addressRepo.FindAddressesByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}

		address.IsDefault = input.IsDefault || len(existing) == 0
		if address.IsDefault {
			if err := addressRepo.ClearDefault(ctx, actor.UserID); err != nil {
				return errors.Wrap(err, "failed to clear default address")
			}
		}

		return errors.Wrap(addressRepo.CreateAddress(ctx, address), "failed to create address")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute address creation transaction")
	}

	return address, nil
}

// DeleteAddress removes an address of the caller. When the default goes, the
// oldest remaining address takes its place.
func (srv *profileService) DeleteAddress(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		address, err := findOwnedAddress(ctx, addressRepo, actor, id)
		if err != nil {
			return err
		}

		if err := addressRepo.DeleteAddress(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		if !address.IsDefault {
			return nil
		}

		remaining, err := addressRepo.FindAddressesByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		if len(remaining) == 0 {
			return nil
		}

		return errors.Wrap(addressRepo.SetDefault(ctx, remaining[0].ID), "failed to promote default address")
	})

	return errors.Wrap(err, "failed to execute address deletion transaction")
}

func (srv *profileService) SetDefaultAddress(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*entity.Address, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var address *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		found, err := findOwnedAddress(ctx, addressRepo, actor, id)
		if err != nil {
			return err
		}

		if err := addressRepo.ClearDefault(ctx, actor.UserID); err != nil {
			return errors.Wrap(err, "failed to clear default address")
		}
		if err := addressRepo.SetDefault(ctx, id); err != nil {
			return errors.Wrap(err, "failed to set default address")
		}

		found.IsDefault = true
		address = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute default address transaction")
	}

	return address, nil
}

// findOwnedAddress hides other users' addresses behind ErrAddressNotFound.
func findOwnedAddress(ctx context.Context, addressRepo repository.AddressRepository, actor *policy.Actor, id uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address")
	}

	if address.UserID != actor.UserID {
		return nil, domainerrors.ErrAddressNotFound
	}

	return address, nil
}
