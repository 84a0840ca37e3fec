package handler

import (
	"time"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/service"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
)

// Response views keep secrets such as password hashes out of the JSON surface.

type userView struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func newUserView(u *entity.User) *userView {
	if u == nil {
		return nil
	}

	return &userView{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Role:            u.Role.String(),
		IsEmailVerified: u.IsEmailVerified,
		LastLogin:       u.LastLogin,
		CreatedAt:       u.CreatedAt,
	}
}

type authView struct {
	User         *userView          `json:"user"`
	Tokens       *service.TokenPair `json:"tokens"`
	EmailOTPSent *bool              `json:"emailOtpSent,omitempty"`
}

func newAuthView(out *usecase.AuthOutput, reportOTP bool) *authView {
	view := &authView{
		User:   newUserView(out.User),
		Tokens: out.Tokens,
	}
	if reportOTP {
		sent := out.EmailOTPSent
		view.EmailOTPSent = &sent
	}

	return view
}

type bookingView struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"userId"`
	ServiceID           uuid.UUID `json:"serviceId"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Address             string    `json:"address"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Price               float64   `json:"price"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func newBookingView(b *entity.Booking) *bookingView {
	return &bookingView{
		ID:                  b.ID,
		UserID:              b.UserID,
		ServiceID:           b.ServiceID,
		Date:                b.Date,
		Time:                b.Time,
		Address:             b.Address,
		SpecialInstructions: b.SpecialInstructions,
		Price:               b.Price,
		Status:              b.Status.String(),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

type reviewView struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"bookingId"`
	ReviewerID uuid.UUID `json:"reviewerId"`
	RevieweeID uuid.UUID `json:"revieweeId"`
	Target     string    `json:"target"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newReviewView(r *entity.Review) *reviewView {
	return &reviewView{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Target:     r.Target.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

type serviceView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Price           float64    `json:"price"`
	ServiceTypeID   *uuid.UUID `json:"serviceTypeId,omitempty"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Availability    bool       `json:"availability"`
	TimeSlots       []string   `json:"timeSlots"`
	ProviderID      *uuid.UUID `json:"providerId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func newServiceView(s *entity.Service) *serviceView {
	slots := s.TimeSlots
	if slots == nil {
		slots = []string{}
	}

	return &serviceView{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		ServiceTypeID:   s.ServiceTypeID,
		CategoryID:      s.CategoryID,
		DurationMinutes: s.DurationMinutes,
		Availability:    s.Availability,
		TimeSlots:       slots,
		ProviderID:      s.ProviderID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type categoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

func newCategoryView(c *entity.ServiceCategory) *categoryView {
	return &categoryView{ID: c.ID, Name: c.Name, Description: c.Description}
}

type serviceTypeView struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

func newServiceTypeView(t *entity.ServiceType) *serviceTypeView {
	return &serviceTypeView{ID: t.ID, CategoryID: t.CategoryID, Name: t.Name, Description: t.Description}
}

type occupationView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newOccupationView(o *entity.Occupation) *occupationView {
	return &occupationView{ID: o.ID, Name: o.Name}
}

type providerProfileView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	OccupationID    *uuid.UUID `json:"occupationId,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	ExperienceYears int        `json:"experienceYears"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func newProviderProfileView(p *entity.ProviderProfile) *providerProfileView {
	return &providerProfileView{
		ID:              p.ID,
		UserID:          p.UserID,
		OccupationID:    p.OccupationID,
		Bio:             p.Bio,
		ExperienceYears: p.ExperienceYears,
		UpdatedAt:       p.UpdatedAt,
	}
}

type addressView struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	FullAddress string    `json:"fullAddress"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newAddressView(a *entity.Address) *addressView {
	return &addressView{
		ID:          a.ID,
		Label:       a.Label,
		FullAddress: a.FullAddress,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
	}
}

// mapViews converts a slice with the given view constructor.
func mapViews[E any, V any](items []E, fn func(E) V) []V {
	views := make([]V, 0, len(items))
	for _, item := range items {
		views = append(views, fn(item))
	}

	return views
}
