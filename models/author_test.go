package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Ada Lovelace", false},
		{"single rune", "A", false},
		{"whitespace only is present", "   ", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "name", ve.Field)
				assert.Equal(t, "Name field is required.", ve.Message)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ten digits", "5551234567", false},
		{"all zeros", "0000000000", false},
		{"dashes", "555-123-4567", true},
		{"too short", "12345", true},
		{"eleven digits", "55512345678", true},
		{"ten chars with letter", "555123456a", true},
		{"ten chars with space", "555 123456", true},
		{"non-ascii digits", "٠١٢٣٤٥٦٧٨٩", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tt.input)
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "phone_number", ve.Field)
				assert.Equal(t, "Phone number must be 10 digits.", ve.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestNewAuthor(t *testing.T) {
	t.Run("without phone", func(t *testing.T) {
		a, err := NewAuthor("Octavia Butler", nil)
		require.NoError(t, err)
		assert.Equal(t, "Octavia Butler", a.Name)
		assert.Nil(t, a.PhoneNumber)
	})

	t.Run("with phone", func(t *testing.T) {
		a, err := NewAuthor("Octavia Butler", strPtr("5551234567"))
		require.NoError(t, err)
		require.NotNil(t, a.PhoneNumber)
		assert.Equal(t, "5551234567", *a.PhoneNumber)
	})

	t.Run("empty name", func(t *testing.T) {
		a, err := NewAuthor("", nil)
		assert.Nil(t, a)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("bad phone", func(t *testing.T) {
		a, err := NewAuthor("Octavia Butler", strPtr("555-1234"))
		assert.Nil(t, a)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "phone_number", ve.Field)
	})
}

func TestAuthor_SettersKeepPreviousValueOnError(t *testing.T) {
	a, err := NewAuthor("Ursula", strPtr("5551234567"))
	require.NoError(t, err)

	assert.Error(t, a.SetName(""))
	assert.Equal(t, "Ursula", a.Name)

	assert.Error(t, a.SetPhoneNumber("nope"))
	assert.Equal(t, "5551234567", *a.PhoneNumber)

	require.NoError(t, a.SetPhoneNumber("5559876543"))
	assert.Equal(t, "5559876543", *a.PhoneNumber)

	a.ClearPhoneNumber()
	assert.Nil(t, a.PhoneNumber)
}

func TestAuthor_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := &Author{Name: "Le Guin", PhoneNumber: strPtr("5551234567")}
		assert.NoError(t, a.Validate())
	})

	t.Run("nil phone is allowed", func(t *testing.T) {
		a := &Author{Name: "Le Guin"}
		assert.NoError(t, a.Validate())
	})

	t.Run("name reported before phone", func(t *testing.T) {
		a := &Author{PhoneNumber: strPtr("bad")}
		var ve *ValidationError
		require.ErrorAs(t, a.Validate(), &ve)
		assert.Equal(t, "name", ve.Field)
	})

	t.Run("empty phone pointer fails", func(t *testing.T) {
		a := &Author{Name: "Le Guin", PhoneNumber: strPtr("")}
		var ve *ValidationError
		require.ErrorAs(t, a.Validate(), &ve)
		assert.Equal(t, "phone_number", ve.Field)
	})
}

func TestAuthor_Hooks(t *testing.T) {
	a := &Author{Name: "Le Guin"}
	require.NoError(t, a.BeforeSave(nil))
	require.NoError(t, a.BeforeCreate(nil))
	assert.False(t, a.CreatedAt.IsZero())
	assert.Nil(t, a.UpdatedAt)

	created := a.CreatedAt
	time.Sleep(time.Millisecond)
	require.NoError(t, a.BeforeUpdate(nil))
	require.NotNil(t, a.UpdatedAt)
	assert.True(t, a.UpdatedAt.After(created))
	assert.Equal(t, created, a.CreatedAt)

	bad := &Author{}
	assert.True(t, errors.Is(bad.BeforeSave(nil), ErrValidation))
}

func TestAuthor_String(t *testing.T) {
	a := &Author{ID: 3, Name: "Le Guin"}
	assert.Equal(t, "Author(id=3, name=Le Guin)", a.String())
}

func TestNameTakenError(t *testing.T) {
	err := NameTakenError()
	assert.Equal(t, "name", err.Field)
	assert.Equal(t, "Name must be unique.", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
