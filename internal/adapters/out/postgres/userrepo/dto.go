// Package userrepo provides data transfer objects and mapping functions for user persistence.
// Handles the conversion between the user aggregate and its database representation.
package userrepo

import (
	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting user aggregates.
// The balance column is also mutated directly by CreditBalance, outside the
// aggregate, so approved deposits never lose concurrent increments.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role     string    `gorm:"type:varchar(32);not null;index"`
	Balance  float64   `gorm:"not null;default:0"`
	Enabled  bool      `gorm:"not null;default:true"`
	Verified bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Email:    aggregate.Email(),
		Role:     aggregate.Role().String(),
		Balance:  aggregate.Balance(),
		Enabled:  aggregate.IsEnabled(),
		Verified: aggregate.IsVerified(),
	}
}

// toDomain converts a database DTO to a user aggregate using RestoreUser.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, role, dto.Balance, dto.Enabled, dto.Verified)
}
