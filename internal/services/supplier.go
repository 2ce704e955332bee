package services

import (
	"errors"
	"strings"

	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// SupplierInput is the full supplier payload; updates replace all fields.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxNumber     string `json:"taxNumber"`
	Notes         string `json:"notes"`
	IsActive      *bool  `json:"isActive"`
}

func (in SupplierInput) validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	return v
}

func (in SupplierInput) active() bool {
	if in.IsActive == nil {
		return true
	}
	return *in.IsActive
}

func (s *SupplierService) Create(userID uint, in SupplierInput) (*models.Supplier, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}
	supplier := models.Supplier{
		UserID:        userID,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         strings.ToLower(in.Email),
		Phone:         in.Phone,
		Address:       in.Address,
		TaxNumber:     in.TaxNumber,
		Notes:         in.Notes,
		IsActive:      in.active(),
	}
	if err := s.db.Create(&supplier).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create supplier")
	}
	return &supplier, nil
}

func (s *SupplierService) Get(userID, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, pkgerrors.Wrap(err, "load supplier")
	}
	return &supplier, nil
}

func (s *SupplierService) List(userID uint) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&suppliers).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list suppliers")
	}
	return suppliers, nil
}

func (s *SupplierService) Update(userID, id uint, in SupplierInput) (*models.Supplier, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}

	supplier, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = in.Name
	supplier.ContactPerson = in.ContactPerson
	supplier.Email = strings.ToLower(in.Email)
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	supplier.TaxNumber = in.TaxNumber
	supplier.Notes = in.Notes
	supplier.IsActive = in.active()

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update supplier")
	}
	return supplier, nil
}

func (s *SupplierService) Delete(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Supplier{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete supplier")
	}
	if res.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
