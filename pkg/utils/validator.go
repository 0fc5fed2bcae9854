package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Limits mirror the listing form constraints
const (
	MinAddressLength = 3
	MaxBedrooms      = 15
	MaxBathrooms     = 10
	MaxNotesLength   = 2000
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// ValidateAddress validates a street address
func ValidateAddress(address string) error {
	if len(strings.TrimSpace(address)) < MinAddressLength {
		return fmt.Errorf("address must be at least %d characters", MinAddressLength)
	}
	return nil
}

// ValidateValuation validates an optional CV/RV figure. Absent is fine.
func ValidateValuation(name string, value *float64) error {
	if value == nil {
		return nil
	}
	if *value < 0 {
		return fmt.Errorf("%s must not be negative: %.0f", name, *value)
	}
	return nil
}

// ValidateRoomCount validates a bedroom or bathroom count
func ValidateRoomCount(name string, count, maxCount int) error {
	if count < 0 || count > maxCount {
		return fmt.Errorf("%s must be between 0 and %d: %d", name, maxCount, count)
	}
	return nil
}

// ValidatePropertyType validates the property type against the allowed set.
// Empty is accepted.
func ValidatePropertyType(propertyType string, allowed []string) error {
	if propertyType == "" {
		return nil
	}
	for _, a := range allowed {
		if propertyType == a {
			return nil
		}
	}
	return fmt.Errorf("invalid property type: %s", propertyType)
}

// ValidateNotes validates the free-text notes length
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("notes exceed %d characters", MaxNotesLength)
	}
	return nil
}

// SanitizeString removes control characters, keeping tabs and newlines
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
