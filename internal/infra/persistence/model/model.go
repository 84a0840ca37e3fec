// Package model holds the GORM persistence models. Entities never carry GORM tags;
// repositories map between the two.
package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// assignID fills an empty primary key with a time-ordered UUID before insert.
func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}

	generated, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "generate uuid")
	}
	*id = generated

	return nil
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&EmailVerificationTokenModel{},
		&OccupationModel{},
		&ProviderProfileModel{},
		&AddressModel{},
		&ServiceCategoryModel{},
		&ServiceTypeModel{},
		&ServiceModel{},
		&BookingModel{},
		&ReviewModel{},
	}
}
