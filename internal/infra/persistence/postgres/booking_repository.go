package postgres

import (
	"context"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBookingDomain(booking)
	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrServiceNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&bookingM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrBookingNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find booking")
	}

	return toBookingDomain(&bookingM), nil
}

func (repo *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return repo.list(repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (repo *bookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Booking, error) {
	return repo.list(repo.db.WithContext(ctx).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.provider_id = ?", providerID))
}

func (repo *bookingRepository) list(query *gorm.DB) ([]*entity.Booking, error) {
	var models []model.BookingModel
	if err := query.Order("bookings.created_at DESC").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list bookings")
	}

	bookings := make([]*entity.Booking, 0, len(models))
	for i := range models {
		bookings = append(bookings, toBookingDomain(&models[i]))
	}

	return bookings, nil
}

func (repo *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.BookingModel{}).Where("id = ?", id).Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update booking status")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBookingNotFound
	}

	return nil
}

func (repo *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := repo.db.WithContext(ctx).Model(&model.BookingModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count bookings")
	}

	counts := make(map[entity.BookingStatus]int64, len(entity.AllBookingStatuses))
	for _, status := range entity.AllBookingStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[entity.BookingStatus(row.Status)] = row.Count
	}

	return counts, nil
}

func toBookingDomain(data *model.BookingModel) *entity.Booking {
	return &entity.Booking{
		ID:                  data.ID,
		UserID:              data.UserID,
		ServiceID:           data.ServiceID,
		Date:                data.Date,
		Time:                data.Time,
		Address:             data.Address,
		SpecialInstructions: data.SpecialInstructions,
		Price:               data.Price,
		Status:              entity.BookingStatus(data.Status),
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	return &model.BookingModel{
		ID:                  data.ID,
		UserID:              data.UserID,
		ServiceID:           data.ServiceID,
		Date:                data.Date,
		Time:                data.Time,
		Address:             data.Address,
		SpecialInstructions: data.SpecialInstructions,
		Price:               data.Price,
		Status:              data.Status.String(),
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
