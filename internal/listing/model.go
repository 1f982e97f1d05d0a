// File: internal/listing/model.go
package listing

import (
	"time"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListingType distinguishes properties for sale from rentals.
type ListingType string

const (
	TypeSale ListingType = "sale"
	TypeRent ListingType = "rent"
)

// Listing represents a property listing in the database.
//
// Moderation state is tracked by three fields that must stay coherent:
// Status is the canonical state, IsActive is the legacy visibility flag
// kept in sync on every write, and WasAccepted records whether the listing
// was ever approved. Both Status and IsActive are pointers because rows
// created before the state machine existed carry NULLs; EffectiveStatus
// reconciles them on read.
type Listing struct {
	common.BaseModel
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Slug          string         `gorm:"type:varchar(280);not null;index"`
	Description   string         `gorm:"type:text;not null"`
	Address       string         `gorm:"type:varchar(500);not null"`
	Type          ListingType    `gorm:"type:varchar(10);not null;index"`
	Offer         bool           `gorm:"not null;default:false"`
	Furnished     bool           `gorm:"not null;default:false"`
	Parking       bool           `gorm:"not null;default:false"`
	RegularPrice  float64        `gorm:"not null"`
	DiscountPrice float64        `gorm:"not null;default:0"`
	Bedrooms      int            `gorm:"not null;default:1"`
	Bathrooms     int            `gorm:"not null;default:1"`
	ImageURLs     pq.StringArray `gorm:"type:text[]"`
	Status        *ListingStatus `gorm:"type:varchar(20);index"`
	IsActive      *bool          `gorm:"index"`
	WasAccepted   bool           `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Listing model.
func (Listing) TableName() string {
	return "listings"
}

// BeforeSave keeps the legacy is_active flag coherent with the canonical
// status whenever a full record is written. Rows with a NULL status are left
// alone so legacy data survives unrelated saves.
func (l *Listing) BeforeSave(tx *gorm.DB) error {
	if l.Status != nil {
		active := *l.Status == StatusActive
		l.IsActive = &active
		if active {
			l.WasAccepted = true
		}
	}
	return nil
}

// MakeSlug derives a URL slug from the listing name.
func MakeSlug(name string) string {
	return slug.Make(name)
}

// --- DTOs for API requests/responses ---

// CreateListingRequest defines the payload to create a listing. Moderation
// fields are deliberately absent; the server decides the initial state.
type CreateListingRequest struct {
	Name          string   `json:"name" binding:"required,min=3,max=255"`
	Description   string   `json:"description" binding:"required"`
	Address       string   `json:"address" binding:"required,max=500"`
	Type          string   `json:"type" binding:"required,oneof=sale rent"`
	Offer         bool     `json:"offer"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	RegularPrice  float64  `json:"regularPrice" binding:"required,gt=0"`
	DiscountPrice float64  `json:"discountPrice" binding:"omitempty,gte=0"`
	Bedrooms      int      `json:"bedrooms" binding:"omitempty,gte=1,lte=50"`
	Bathrooms     int      `json:"bathrooms" binding:"omitempty,gte=1,lte=50"`
	ImageURLs     []string `json:"imageUrls" binding:"omitempty,max=10,dive,url"`
}

// UpdateListingRequest defines the owner-editable fields. Absent fields are
// left untouched. Moderation fields sent by clients are ignored.
type UpdateListingRequest struct {
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=3,max=255"`
	Description   *string  `json:"description,omitempty"`
	Address       *string  `json:"address,omitempty" binding:"omitempty,max=500"`
	Type          *string  `json:"type,omitempty" binding:"omitempty,oneof=sale rent"`
	Offer         *bool    `json:"offer,omitempty"`
	Furnished     *bool    `json:"furnished,omitempty"`
	Parking       *bool    `json:"parking,omitempty"`
	RegularPrice  *float64 `json:"regularPrice,omitempty" binding:"omitempty,gt=0"`
	DiscountPrice *float64 `json:"discountPrice,omitempty" binding:"omitempty,gte=0"`
	Bedrooms      *int     `json:"bedrooms,omitempty" binding:"omitempty,gte=1,lte=50"`
	Bathrooms     *int     `json:"bathrooms,omitempty" binding:"omitempty,gte=1,lte=50"`
	ImageURLs     []string `json:"imageUrls,omitempty" binding:"omitempty,max=10,dive,url"`
}

// ModerationRequest is the body of the admin status endpoint. Either field
// may be supplied; an explicit status wins over the legacy boolean.
type ModerationRequest struct {
	Status   *string `json:"status,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListingResponse is the representation sent in API responses. The
// effective_status field carries the reconciled moderation state so clients
// never have to repeat the legacy logic.
type ListingResponse struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description"`
	Address         string      `json:"address"`
	Type            ListingType `json:"type"`
	Offer           bool        `json:"offer"`
	Furnished       bool        `json:"furnished"`
	Parking         bool        `json:"parking"`
	RegularPrice    float64     `json:"regularPrice"`
	DiscountPrice   float64     `json:"discountPrice"`
	Bedrooms        int         `json:"bedrooms"`
	Bathrooms       int         `json:"bathrooms"`
	ImageURLs       []string    `json:"imageUrls"`
	EffectiveStatus string      `json:"effective_status"`
	WasAccepted     bool        `json:"was_accepted"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ToListingResponse converts a Listing model to its API representation.
func ToListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		Name:            l.Name,
		Slug:            l.Slug,
		Description:     l.Description,
		Address:         l.Address,
		Type:            l.Type,
		Offer:           l.Offer,
		Furnished:       l.Furnished,
		Parking:         l.Parking,
		RegularPrice:    l.RegularPrice,
		DiscountPrice:   l.DiscountPrice,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		ImageURLs:       []string(l.ImageURLs),
		EffectiveStatus: string(EffectiveStatus(l.Status, l.IsActive)),
		WasAccepted:     LifetimeAccepted(l),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// Stats is the public homepage aggregate. Every count uses the shared
// visibility predicate, so the numbers always describe the same set of
// listings a public search would return.
type Stats struct {
	TotalActive int64 `json:"totalActive"`
	SaleCount   int64 `json:"saleCount"`
	RentCount   int64 `json:"rentCount"`
	OfferCount  int64 `json:"offerCount"`
}

// AdminSummary aggregates moderation counts for the admin dashboard.
// Accepted counts listings that were ever approved, including ones since
// deactivated or declined.
type AdminSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Declined int64 `json:"declined"`
	Pending  int64 `json:"pending"`
	Offers   int64 `json:"offers"`
	Accepted int64 `json:"accepted"`
}
