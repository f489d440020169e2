package models

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	msgNameRequired = "Name field is required."
	msgNameTaken    = "Name must be unique."
	msgPhoneDigits  = "Phone number must be 10 digits."

	phoneNumberLength = 10
)

var asciiDigits = regexp.MustCompile(`^[0-9]+$`)

var (
	nameRules = []validation.Rule{
		validation.Required.Error(msgNameRequired),
	}
	phoneNumberRules = []validation.Rule{
		validation.Required.Error(msgPhoneDigits),
		validation.RuneLength(phoneNumberLength, phoneNumberLength).Error(msgPhoneDigits),
		validation.Match(asciiDigits).Error(msgPhoneDigits),
	}
)

// Author is a post writer. Names are unique across all authors; the unique
// index backs the lookup done by the author store.
type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex:idx_authors_name" json:"name"`
	PhoneNumber *string    `gorm:"size:16" json:"phone_number"`
	CreatedAt   time.Time  `gorm:"<-:create;not null" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName pins the table name.
func (*Author) TableName() string {
	return "authors"
}

// String renders the author for logs.
func (a *Author) String() string {
	return fmt.Sprintf("Author(id=%d, name=%s)", a.ID, a.Name)
}

// NameTakenError is returned when another author already uses the name.
func NameTakenError() *ValidationError {
	return NewValidationError("name", msgNameTaken)
}

// ValidateName checks name presence. Uniqueness is a storage concern and is
// enforced by the author store.
func ValidateName(name string) (string, error) {
	if err := checkField("name", name, nameRules...); err != nil {
		return "", err
	}
	return name, nil
}

// ValidatePhoneNumber accepts exactly ten ASCII digits 0-9; other Unicode
// decimal digits are rejected. Punctuation is not stripped.
func ValidatePhoneNumber(phoneNumber string) (string, error) {
	if err := checkField("phone_number", phoneNumber, phoneNumberRules...); err != nil {
		return "", err
	}
	return phoneNumber, nil
}

// NewAuthor builds an unsaved author. A nil phone leaves the column NULL.
func NewAuthor(name string, phoneNumber *string) (*Author, error) {
	a := &Author{}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	if phoneNumber != nil {
		if err := a.SetPhoneNumber(*phoneNumber); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SetName assigns name when valid. On error the previous name is kept.
func (a *Author) SetName(name string) error {
	v, err := ValidateName(name)
	if err != nil {
		return err
	}
	a.Name = v
	return nil
}

// SetPhoneNumber assigns the phone number when valid. On error the previous value is kept.
func (a *Author) SetPhoneNumber(phoneNumber string) error {
	v, err := ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return err
	}
	a.PhoneNumber = &v
	return nil
}

// ClearPhoneNumber unsets the phone number.
func (a *Author) ClearPhoneNumber() {
	a.PhoneNumber = nil
}

// Validate runs every field rule against the record as it stands.
func (a *Author) Validate() error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Name, nameRules...),
		validation.Field(&a.PhoneNumber, validation.When(a.PhoneNumber != nil, phoneNumberRules...)),
	)
	return firstFieldError(err, "name", "phone_number")
}

// BeforeSave rejects invalid records before any SQL is issued.
func (a *Author) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}

// BeforeCreate sets CreatedAt when not provided and leaves UpdatedAt unset.
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = nil
	return nil
}

// BeforeUpdate refreshes UpdatedAt.
func (a *Author) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	a.UpdatedAt = &now
	return nil
}
