package services

import (
	"errors"
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type CashbookService struct {
	db *gorm.DB
}

func NewCashbookService(db *gorm.DB) *CashbookService {
	return &CashbookService{db: db}
}

// CashbookEntryInput is the payload for creating a cashbook entry.
type CashbookEntryInput struct {
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Type        models.EntryType `json:"type"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Reference   string           `json:"reference"`
}

func (in CashbookEntryInput) validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("description", in.Description, v)
	validation.Required("category", in.Category, v)
	if !in.Type.Valid() {
		v["type"] = "invalid_type"
	}
	validation.NonNegativeFloat("amount", in.Amount, v)
	return v
}

func (s *CashbookService) Create(userID uint, in CashbookEntryInput) (*models.CashbookEntry, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	entry := models.CashbookEntry{
		UserID:      userID,
		Date:        date,
		Description: in.Description,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Reference:   in.Reference,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create cashbook entry")
	}
	return &entry, nil
}

func (s *CashbookService) Get(userID, id uint) (*models.CashbookEntry, error) {
	var entry models.CashbookEntry
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, pkgerrors.Wrap(err, "load cashbook entry")
	}
	return &entry, nil
}

// List returns all of the owner's entries, most recent date first.
func (s *CashbookService) List(userID uint) ([]models.CashbookEntry, error) {
	var entries []models.CashbookEntry
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list cashbook entries")
	}
	return entries, nil
}

// UpdateCashbookEntryInput is a partial update; nil fields are untouched.
type UpdateCashbookEntryInput struct {
	Date        *time.Time        `json:"date"`
	Description *string           `json:"description"`
	Type        *models.EntryType `json:"type"`
	Amount      *float64          `json:"amount"`
	Category    *string           `json:"category"`
	Reference   *string           `json:"reference"`
}

func (in UpdateCashbookEntryInput) validate() validation.Violations {
	v := make(validation.Violations)
	if in.Description != nil {
		validation.Required("description", *in.Description, v)
	}
	if in.Category != nil {
		validation.Required("category", *in.Category, v)
	}
	if in.Type != nil && !in.Type.Valid() {
		v["type"] = "invalid_type"
	}
	if in.Amount != nil {
		validation.NonNegativeFloat("amount", *in.Amount, v)
	}
	return v
}

func (s *CashbookService) Update(userID, id uint, in UpdateCashbookEntryInput) (*models.CashbookEntry, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}

	entry, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		entry.Date = *in.Date
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}
	if in.Type != nil {
		entry.Type = *in.Type
	}
	if in.Amount != nil {
		entry.Amount = *in.Amount
	}
	if in.Category != nil {
		entry.Category = *in.Category
	}
	if in.Reference != nil {
		entry.Reference = *in.Reference
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update cashbook entry")
	}
	return entry, nil
}

func (s *CashbookService) Delete(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CashbookEntry{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete cashbook entry")
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Balance returns the signed sum of all the owner's entries.
func (s *CashbookService) Balance(userID uint) (float64, error) {
	entries, err := s.List(userID)
	if err != nil {
		return 0, err
	}
	return SignedLedgerTotal(entries), nil
}
