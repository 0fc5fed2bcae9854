package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress("12 Queen Street"))
	assert.Error(t, ValidateAddress(""))
	assert.Error(t, ValidateAddress("  ab  "))
}

func TestValidateValuation(t *testing.T) {
	value := func(v float64) *float64 { return &v }

	assert.NoError(t, ValidateValuation("cv", nil))
	assert.NoError(t, ValidateValuation("cv", value(0)))
	assert.NoError(t, ValidateValuation("rv", value(850000)))

	err := ValidateValuation("rv", value(-1))
	assert.EqualError(t, err, "rv must not be negative: -1")
}

func TestValidateRoomCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		max     int
		wantErr bool
	}{
		{name: "zero", count: 0, max: MaxBedrooms},
		{name: "at max", count: 15, max: MaxBedrooms},
		{name: "over max", count: 11, max: MaxBathrooms, wantErr: true},
		{name: "negative", count: -1, max: MaxBedrooms, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomCount("bedrooms", tt.count, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePropertyType(t *testing.T) {
	allowed := []string{"house", "apartment"}

	assert.NoError(t, ValidatePropertyType("", allowed))
	assert.NoError(t, ValidatePropertyType("house", allowed))
	assert.EqualError(t, ValidatePropertyType("castle", allowed), "invalid property type: castle")
}

func TestValidateNotes(t *testing.T) {
	long := make([]byte, MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}

	assert.NoError(t, ValidateNotes("Vendor motivated"))
	assert.Error(t, ValidateNotes(string(long)))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "line one\nline\ttwo", SanitizeString("line one\n\x00line\ttwo\x1b"))
}
