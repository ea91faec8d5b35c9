package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SpaceType string

const (
	SpaceCommonArea    SpaceType = "common_area"
	SpacePrivateOffice SpaceType = "private_office"
	SpacePhotoStudio   SpaceType = "photo_studio"
	SpaceEventSpace    SpaceType = "event_space"
)

func (t SpaceType) Valid() bool {
	switch t {
	case SpaceCommonArea, SpacePrivateOffice, SpacePhotoStudio, SpaceEventSpace:
		return true
	}
	return false
}

type FeeType string

const (
	FeeHourly  FeeType = "hourly"
	FeeDaily   FeeType = "daily"
	FeeMonthly FeeType = "monthly"
)

func (t FeeType) Valid() bool {
	switch t {
	case FeeHourly, FeeDaily, FeeMonthly:
		return true
	}
	return false
}

type Space struct {
	bun.BaseModel `bun:"table:spaces,alias:s"`

	ID          string    `bun:"id,pk,type:varchar(60)" json:"id"`
	Name        string    `bun:"name,unique,notnull,type:varchar(255)" json:"name"`
	Type        SpaceType `bun:"type,notnull,type:varchar(32)" json:"type"`
	Description *string   `bun:"description" json:"description"`
	Photos      []string  `bun:"photos,type:jsonb" json:"photos"`
	Fee         float64   `bun:"fee,type:numeric(10,2)" json:"fee"`
	FeeType     FeeType   `bun:"fee_type,notnull,type:varchar(16)" json:"fee_type"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

type SpaceCreate struct {
	Name        string    `json:"name"`
	Type        SpaceType `json:"type"`
	Description *string   `json:"description"`
	Photos      []string  `json:"photos"`
	Fee         float64   `json:"fee"`
	FeeType     FeeType   `json:"fee_type"`
}

func (r SpaceCreate) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" || len(name) > 255 {
		return invalid("name", "must be 1-255 characters")
	}
	if !r.Type.Valid() {
		return invalid("type", "unknown space type")
	}
	if r.Fee < 0 {
		return invalid("fee", "must not be negative")
	}
	if !r.FeeType.Valid() {
		return invalid("fee_type", "unknown fee type")
	}
	return nil
}

func (r SpaceCreate) Build() *Space {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	return &Space{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(r.Name),
		Type:        r.Type,
		Description: r.Description,
		Photos:      photos,
		Fee:         r.Fee,
		FeeType:     r.FeeType,
	}
}

type SpaceEdit struct {
	Name        *string    `json:"name"`
	Type        *SpaceType `json:"type"`
	Description *string    `json:"description"`
	Photos      []string   `json:"photos"`
	Fee         *float64   `json:"fee"`
	FeeType     *FeeType   `json:"fee_type"`
}

func (r SpaceEdit) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" || len(name) > 255 {
			return invalid("name", "must be 1-255 characters")
		}
	}
	if r.Type != nil && !r.Type.Valid() {
		return invalid("type", "unknown space type")
	}
	if r.Fee != nil && *r.Fee < 0 {
		return invalid("fee", "must not be negative")
	}
	if r.FeeType != nil && !r.FeeType.Valid() {
		return invalid("fee_type", "unknown fee type")
	}
	return nil
}

func (r SpaceEdit) Apply(s *Space) []string {
	var cols []string
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
		cols = append(cols, "name")
	}
	if r.Type != nil {
		s.Type = *r.Type
		cols = append(cols, "type")
	}
	if r.Description != nil {
		s.Description = r.Description
		cols = append(cols, "description")
	}
	if r.Photos != nil {
		s.Photos = r.Photos
		cols = append(cols, "photos")
	}
	if r.Fee != nil {
		s.Fee = *r.Fee
		cols = append(cols, "fee")
	}
	if r.FeeType != nil {
		s.FeeType = *r.FeeType
		cols = append(cols, "fee_type")
	}
	return cols
}
