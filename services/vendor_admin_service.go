package services

import (
	"context"
	"strings"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/repository"
)

// VendorAdminService lets admins manage vendor accounts.
type VendorAdminService struct {
	Auth  *AuthService
	Users *repository.UserRepository
}

func NewVendorAdminService(auth *AuthService, users *repository.UserRepository) *VendorAdminService {
	return &VendorAdminService{Auth: auth, Users: users}
}

type CreateVendorIn struct {
	RegisterIn
	StoreName string `json:"storeName" binding:"required"`
}

type UpdateVendorIn struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	StoreName   *string `json:"storeName"`
	Blocked     *bool   `json:"blocked"`
}

func (s *VendorAdminService) List(ctx context.Context, p entity.Principal) ([]entity.User, error) {
	if err := Authorize(p, ActionManageVendors, nil); err != nil {
		return nil, err
	}
	return s.Users.ListByRole(ctx, entity.RoleVendor)
}

func (s *VendorAdminService) Create(ctx context.Context, p entity.Principal, in CreateVendorIn) (*entity.User, error) {
	if err := Authorize(p, ActionManageVendors, nil); err != nil {
		return nil, err
	}
	return s.Auth.createUser(ctx, in.RegisterIn, entity.RoleVendor, in.StoreName)
}

func (s *VendorAdminService) Update(ctx context.Context, p entity.Principal, vendorID uint, in UpdateVendorIn) (*entity.User, error) {
	if err := Authorize(p, ActionManageVendors, nil); err != nil {
		return nil, err
	}
	u, err := s.Users.FindByID(ctx, vendorID)
	if err != nil || u.Role != entity.RoleVendor {
		return nil, notFound(orRecordNotFound(err), "vendor %d", vendorID)
	}

	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("phone_number", in.PhoneNumber)
	set("address", in.Address)
	set("store_name", in.StoreName)
	if in.Blocked != nil {
		updates["blocked"] = *in.Blocked
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.Users.Update(ctx, vendorID, updates); err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, vendorID)
}

// Delete blocks the vendor. Products and past vendor orders are kept so
// existing orders still resolve.
func (s *VendorAdminService) Delete(ctx context.Context, p entity.Principal, vendorID uint) (*entity.User, error) {
	return s.Update(ctx, p, vendorID, UpdateVendorIn{Blocked: ptr(true)})
}

func ptr[T any](v T) *T { return &v }
