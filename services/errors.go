package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrNotFound              = errors.New("not found")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrInconsistentPartition = errors.New("line items not partitioned across vendor orders")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrConflict              = errors.New("changed concurrently")
	ErrInvalidInput          = errors.New("invalid input")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountBlocked        = errors.New("account is blocked")
)

// notFound turns gorm's missing-row error into ErrNotFound for the named resource.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}

func orRecordNotFound(err error) error {
	if err == nil {
		return gorm.ErrRecordNotFound
	}
	return err
}
