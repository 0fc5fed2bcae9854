package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/garyjia/listing-compliance/internal/compliance"
)

// Listing status constants
const (
	ListingStatusDraft     = "DRAFT"
	ListingStatusReady     = "READY"
	ListingStatusPublished = "PUBLISHED"
)

// Property type constants
const (
	PropertyTypeHouse     = "house"
	PropertyTypeApartment = "apartment"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeUnit      = "unit"
	PropertyTypeSection   = "section"
)

// Listing represents a property listing and its marketing copy
type Listing struct {
	ID           int64     `json:"id"`
	Address      string    `json:"address"`
	Suburb       string    `json:"suburb,omitempty"`
	City         string    `json:"city,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	CV           *float64  `json:"cv,omitempty"`
	RV           *float64  `json:"rv,omitempty"`
	DraftCopy    string    `json:"draft_copy,omitempty"`
	Variants     *Variants `json:"variants,omitempty"`
	Features     []string  `json:"features"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Variants holds generated copy variants
type Variants struct {
	Standard  string      `json:"standard"`
	Long      string      `json:"long"`
	Headlines []string    `json:"headlines"`
	Bullets   []string    `json:"bullets"`
	Social    *SocialCopy `json:"social,omitempty"`
}

// SocialCopy holds per-network social posts. Not scanned by the compliance engine.
type SocialCopy struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	LinkedIn  string `json:"linkedin"`
}

// Facts is the locked fact sheet sent to the AI validator
type Facts struct {
	Address      string   `json:"address"`
	Suburb       string   `json:"suburb,omitempty"`
	City         string   `json:"city,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	CV           *float64 `json:"cv,omitempty"`
	RV           *float64 `json:"rv,omitempty"`
	Features     []string `json:"features,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// ValidationRecord is a persisted snapshot of one validation run
type ValidationRecord struct {
	ID            int64                          `json:"id"`
	ListingID     int64                          `json:"listing_id"`
	Result        *compliance.CombinedValidation `json:"result"`
	Score         int                            `json:"score"`
	CombinedScore int                            `json:"combined_score"`
	CanPublish    bool                           `json:"can_publish"`
	CopyHash      string                         `json:"copy_hash"`
	CreatedAt     time.Time                      `json:"created_at"`
}

// Facts returns the fact sheet for this listing
func (l *Listing) Facts() Facts {
	return Facts{
		Address:      l.Address,
		Suburb:       l.Suburb,
		City:         l.City,
		PropertyType: l.PropertyType,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		CV:           l.CV,
		RV:           l.RV,
		Features:     l.Features,
		Notes:        l.Notes,
	}
}

// ComplianceInput maps the listing onto the compliance engine input
func (l *Listing) ComplianceInput() compliance.Listing {
	input := compliance.Listing{
		Address:   l.Address,
		DraftCopy: l.DraftCopy,
		Features:  l.Features,
		Notes:     l.Notes,
		CV:        l.CV,
		RV:        l.RV,
	}
	if l.Variants != nil {
		input.Variants = &compliance.Variants{
			Standard:  l.Variants.Standard,
			Long:      l.Variants.Long,
			Headlines: l.Variants.Headlines,
			Bullets:   l.Variants.Bullets,
		}
	}
	return input
}

// CopyHash fingerprints everything a validation reads: the fact sheet, the
// draft and the variants. A validation only vouches for the listing while
// the hashes agree.
func (l *Listing) CopyHash() string {
	data, _ := json.Marshal(struct {
		Facts     Facts     `json:"facts"`
		DraftCopy string    `json:"draft_copy"`
		Variants  *Variants `json:"variants"`
	}{l.Facts(), l.DraftCopy, l.Variants})

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Validates reports whether record was computed from the listing's current copy
func (r *ValidationRecord) Validates(l *Listing) bool {
	return r.CopyHash != "" && r.CopyHash == l.CopyHash()
}

// IsPublished returns true if the listing has been published
func (l *Listing) IsPublished() bool {
	return l.Status == ListingStatusPublished
}
