package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ════════════════════════════════════════════════════════════
// Database Models
// ════════════════════════════════════════════════════════════

// Region is the top-level physical grouping cameras are registered under
type Region struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string      `json:"name" gorm:"uniqueIndex;not null"`
	SubRegions []SubRegion `json:"sub_regions,omitempty" gorm:"foreignKey:RegionID"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Region) TableName() string {
	return "regions"
}

// SubRegion belongs to exactly one Region; names are unique within it
type SubRegion struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_sub_region_name"`
	RegionID  uuid.UUID `json:"region_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_sub_region_name"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (s *SubRegion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (SubRegion) TableName() string {
	return "sub_regions"
}

// ════════════════════════════════════════════════════════════
// Request Models
// ════════════════════════════════════════════════════════════

type CreateRegionRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateRegionRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateSubRegionRequest struct {
	Name     string    `json:"name" binding:"required"`
	RegionID uuid.UUID `json:"region_id" binding:"required"`
}

type UpdateSubRegionRequest struct {
	Name string `json:"name" binding:"required"`
}

// ════════════════════════════════════════════════════════════
// Response Models
// ════════════════════════════════════════════════════════════

// AreaDateLayout is the dd/mm/yy rendering the console tables use
const AreaDateLayout = "02/01/06"

type SubRegionItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RegionResponse is one row of the area management table
type RegionResponse struct {
	ID         uuid.UUID       `json:"id"`
	Region     string          `json:"region"`
	CreatedAt  string          `json:"created_at"`
	SubRegions []SubRegionItem `json:"sub_regions"`
}

// RegionListItem feeds region/sub-region dropdowns
type RegionListItem struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	SubRegions []SubRegionItem `json:"sub_regions"`
}

type SubRegionResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RegionID   uuid.UUID `json:"region_id"`
	RegionName string    `json:"region_name,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

func (r *Region) subRegionItems() []SubRegionItem {
	items := make([]SubRegionItem, 0, len(r.SubRegions))
	for _, s := range r.SubRegions {
		items = append(items, SubRegionItem{ID: s.ID, Name: s.Name})
	}
	return items
}

func (r *Region) ToResponse() RegionResponse {
	return RegionResponse{
		ID:         r.ID,
		Region:     r.Name,
		CreatedAt:  r.CreatedAt.Format(AreaDateLayout),
		SubRegions: r.subRegionItems(),
	}
}

func (r *Region) ToListItem() RegionListItem {
	return RegionListItem{
		ID:         r.ID,
		Name:       r.Name,
		SubRegions: r.subRegionItems(),
	}
}

func (s *SubRegion) ToResponse(regionName string) SubRegionResponse {
	return SubRegionResponse{
		ID:         s.ID,
		Name:       s.Name,
		RegionID:   s.RegionID,
		RegionName: regionName,
		CreatedAt:  s.CreatedAt.Format(AreaDateLayout),
	}
}
