package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"homeserve/config"
	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/domain/service"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager             repository.TransactionManager
	bookingRepo           repository.BookingRepository
	serviceRepo           repository.ServiceRepository
	userRepo              repository.UserRepository
	verification          usecase.VerificationUsecase
	publisher             service.EventPublisher
	allowDirectCompletion bool
	enforceTerminalStates bool
	logger                *slog.Logger
	now                   func() time.Time
}

// BookingServiceParams holds dependencies for BookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	BookingRepo  repository.BookingRepository
	ServiceRepo  repository.ServiceRepository
	UserRepo     repository.UserRepository
	Verification usecase.VerificationUsecase
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// ownedBooking is a booking resolved together with its service and owning partner.
type ownedBooking struct {
	booking *entity.Booking
	service *entity.Service
}

func (o *ownedBooking) partnerID() uuid.UUID {
	if o.service == nil || o.service.ProviderID == nil {
		return uuid.Nil
	}

	return *o.service.ProviderID
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	allowDirect, enforceTerminal := true, false
	if params.Config != nil && params.Config.Booking != nil {
		allowDirect = params.Config.Booking.AllowDirectCompletion
		enforceTerminal = params.Config.Booking.EnforceTerminalStates
	}

	return &bookingService{
		txManager:             params.TxManager,
		bookingRepo:           params.BookingRepo,
		serviceRepo:           params.ServiceRepo,
		userRepo:              params.UserRepo,
		verification:          params.Verification,
		publisher:             params.Publisher,
		allowDirectCompletion: allowDirect,
		enforceTerminalStates: enforceTerminal,
		logger:                params.Logger,
		now:                   time.Now,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create books a service for the calling customer. New bookings always start upcoming.
func (srv *bookingService) Create(ctx context.Context, actor *policy.Actor, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	svc, err := srv.serviceRepo.FindByID(ctx, input.ServiceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find service")
	}

	price := svc.Price
	if input.Price != nil {
		price = *input.Price
	}

	booking := &entity.Booking{
		UserID:              actor.UserID,
		ServiceID:           svc.ID,
		Date:                strings.TrimSpace(input.Date),
		Time:                strings.TrimSpace(input.Time),
		Address:             strings.TrimSpace(input.Address),
		SpecialInstructions: strings.TrimSpace(input.SpecialInstructions),
		Price:               price,
		Status:              entity.BookingStatusUpcoming,
	}

	if err := srv.bookingRepo.Create(ctx, booking); err != nil {
		return nil, errors.Wrap(err, "failed to create booking")
	}

	srv.log(ctx).Info("Booking created", slog.Any("bookingID", booking.ID), slog.Any("serviceID", svc.ID), slog.Any("customerID", actor.UserID))

	return booking, nil
}

// Get returns a booking visible to the caller.
func (srv *bookingService) Get(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID) (*entity.Booking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	owned, err := srv.loadOwned(ctx, srv.bookingRepo, srv.serviceRepo, bookingID)
	if err != nil {
		return nil, err
	}

	if err := policy.RequireBookingVisible(actor, owned.booking, owned.service); err != nil {
		return nil, err
	}

	return owned.booking, nil
}

// ListForCustomer returns the caller's own bookings.
func (srv *bookingService) ListForCustomer(ctx context.Context, actor *policy.Actor) ([]*entity.Booking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	bookings, err := srv.bookingRepo.ListByUser(ctx, actor.UserID)

	return bookings, errors.Wrap(err, "failed to list customer bookings")
}

// ListForPartner returns bookings of every service the calling partner provides.
func (srv *bookingService) ListForPartner(ctx context.Context, actor *policy.Actor) ([]*entity.Booking, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}

	bookings, err := srv.bookingRepo.ListByProvider(ctx, actor.UserID)

	return bookings, errors.Wrap(err, "failed to list partner bookings")
}

// Transition sets a booking's status on behalf of its owning partner.
func (srv *bookingService) Transition(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID, status string) (*entity.Booking, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}

	return srv.changeStatus(ctx, actor, bookingID, status, false)
}

// RequestCompletionOtp sends a code to the customer, who relays it to the partner on site.
func (srv *bookingService) RequestCompletionOtp(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID) error {
	owned, customer, err := srv.resolveForCompletion(ctx, actor, bookingID)
	if err != nil {
		return err
	}

	if err := srv.verification.CreateAndSend(ctx, customer); err != nil {
		return errors.Wrap(err, "failed to send completion code")
	}

	srv.log(ctx).Info("Completion code requested", slog.Any("bookingID", owned.booking.ID), slog.Any("partnerID", actor.UserID))

	return nil
}

// VerifyCompletionOtp checks the customer's code and completes the booking.
func (srv *bookingService) VerifyCompletionOtp(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID, otp string) (*entity.Booking, error) {
	_, customer, err := srv.resolveForCompletion(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := srv.verification.Verify(ctx, customer.Email, otp); err != nil {
		return nil, errors.Wrap(err, "completion code rejected")
	}

	booking, err := srv.changeStatus(ctx, actor, bookingID, entity.BookingStatusCompleted.String(), true)
	if err != nil {
		// The code is already consumed; the partner must request a new one.
		srv.log(ctx).Error("Booking not completed after customer code was accepted",
			slog.Any("bookingID", bookingID), slog.Any("partnerID", actor.UserID), slog.Any("error", err))

		return nil, err
	}

	return booking, nil
}

// resolveForCompletion loads the booking, checks the caller owns it and finds the customer.
func (srv *bookingService) resolveForCompletion(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID) (*ownedBooking, *entity.User, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, nil, err
	}

	owned, err := srv.loadOwned(ctx, srv.bookingRepo, srv.serviceRepo, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if err := policy.RequireServiceOwner(actor, owned.service); err != nil {
		return nil, nil, err
	}

	if srv.enforceTerminalStates && owned.booking.Status.IsTerminal() {
		return nil, nil, domainerrors.ErrInvalidStatus.WrapMessage("booking is already " + owned.booking.Status.String())
	}

	customer, err := srv.userRepo.FindByID(ctx, owned.booking.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, nil, domainerrors.ErrCustomerNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find customer")
	}

	return owned, customer, nil
}

// changeStatus is the single write path for booking status. verified marks
// completions proven by the customer's code.
func (srv *bookingService) changeStatus(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID, rawStatus string, verified bool) (*entity.Booking, error) {
	var (
		updated *entity.Booking
		event   *entity.BookingStatusChanged
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.NewBookingRepository()

		owned, err := srv.loadOwned(ctx, bookingRepo, repoFactory.NewServiceRepository(), bookingID)
		if err != nil {
			return err
		}

		if err := policy.RequireServiceOwner(actor, owned.service); err != nil {
			return err
		}

		target, ok := entity.ParseBookingStatus(strings.TrimSpace(rawStatus))
		if !ok {
			return domainerrors.ErrInvalidStatus.WrapMessage("unknown status " + rawStatus)
		}

		from := owned.booking.Status
		if srv.enforceTerminalStates && from.IsTerminal() && from != target {
			return domainerrors.ErrInvalidStatus.WrapMessage("booking is already " + from.String())
		}

		if target == entity.BookingStatusCompleted && !verified {
			if !srv.allowDirectCompletion {
				return domainerrors.ErrDirectCompletionDisabled
			}
			srv.log(ctx).Warn("Booking completed without customer verification",
				slog.Any("bookingID", bookingID), slog.Any("partnerID", actor.UserID))
		}

		if err := bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
			return errors.Wrap(err, "failed to update booking status")
		}

		owned.booking.Status = target
		updated = owned.booking
		event = &entity.BookingStatusChanged{
			BookingID:  bookingID,
			CustomerID: owned.booking.UserID,
			PartnerID:  owned.partnerID(),
			From:       from,
			To:         target,
			Verified:   verified,
			OccurredAt: srv.now(),
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute booking status transaction")
	}

	srv.log(ctx).Info("Booking status changed",
		slog.Any("bookingID", bookingID),
		slog.String("from", event.From.String()),
		slog.String("to", event.To.String()),
		slog.Bool("verified", verified),
	)
	srv.publish(ctx, event)

	return updated, nil
}

// publish is best effort: the status change is already committed.
func (srv *bookingService) publish(ctx context.Context, payload *entity.BookingStatusChanged) {
	if srv.publisher == nil {
		return
	}

	event := &service.BookingEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventTypeBookingStatusChanged,
		Payload:   payload,
	}
	if err := srv.publisher.PublishBookingEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish booking event", slog.Any("bookingID", payload.BookingID), slog.Any("error", err))
	}
}

// loadOwned resolves a booking and its service. A booking whose service is gone has no owner.
func (srv *bookingService) loadOwned(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	bookingID uuid.UUID,
) (*ownedBooking, error) {
	booking, err := bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find booking")
	}

	svc, err := serviceRepo.FindByID(ctx, booking.ServiceID)
	if err != nil && !errors.Is(err, domainerrors.ErrServiceNotFound) {
		return nil, errors.Wrap(err, "failed to find booking service")
	}

	return &ownedBooking{booking: booking, service: svc}, nil
}
