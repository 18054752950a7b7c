package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewForm struct {
	ProductID string  `validate:"required,uuid"`
	UserName  string  `validate:"required"`
	Rating    float64 `validate:"required,gte=1,lte=5"`
	Comment   string  `validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	form := reviewForm{
		ProductID: "550e8400-e29b-41d4-a716-446655440000",
		UserName:  "dana",
		Rating:    4.5,
		Comment:   "solid game",
	}
	assert.NoError(t, Validate(form))
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(reviewForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "ProductID")
	assert.Contains(t, fields, "UserName")
	assert.Contains(t, fields, "Rating")
	assert.Contains(t, fields, "Comment")
	assert.Equal(t, "is required", fields["UserName"])
}

func TestValidate_OutOfRange(t *testing.T) {
	form := reviewForm{
		ProductID: "550e8400-e29b-41d4-a716-446655440000",
		UserName:  "dana",
		Rating:    6,
		Comment:   "too good",
	}

	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be less than or equal to 5", valErr.Fields()["Rating"])
}

func TestValidate_MalformedUUID(t *testing.T) {
	form := reviewForm{
		ProductID: "123",
		UserName:  "dana",
		Rating:    3,
		Comment:   "ok",
	}

	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid UUID", valErr.Fields()["ProductID"])
	assert.Contains(t, valErr.Error(), "field 'ProductID'")
}
