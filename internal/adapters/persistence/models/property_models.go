package models

import (
	"time"

	"gorm.io/gorm"

	"staynest-hostels/internal/core/domain"
)

// ============================================================
// Property Inventory Ledger
// ============================================================

// BedStatus is the occupancy state of a single bed
type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedOccupied    BedStatus = "occupied"
	BedOnBook      BedStatus = "onbook"
	BedNotice      BedStatus = "notice"
	BedMaintenance BedStatus = "maintenance"
)

// ParseBedStatus validates a raw status string. Any of the five states
// is reachable from any other by an admin write; the intended lifecycle
// is available → onbook → occupied → notice → available, with
// maintenance reachable from and to any state.
func ParseBedStatus(s string) (BedStatus, error) {
	switch BedStatus(s) {
	case BedAvailable, BedOccupied, BedOnBook, BedNotice, BedMaintenance:
		return BedStatus(s), nil
	}
	return "", domain.ErrInvalidBedStatus
}

// IsBookable reports whether a bed in this status can be reserved
func (s BedStatus) IsBookable() bool {
	return s == BedAvailable
}

// Property is the root aggregate of the inventory ledger. Its counters
// and rent range are denormalized: public reads return them as stored,
// and every bed/room mutation recomputes them before commit.
type Property struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	VendorID      uint           `gorm:"index;not null" json:"vendor_id"`
	Name          string         `gorm:"size:150;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PropertyType  string         `gorm:"size:20;not null;default:'hostel'" json:"propertyType"`
	Address       string         `gorm:"size:255" json:"address"`
	AreaID        *uint          `gorm:"index" json:"area_id"`
	CityID        *uint          `gorm:"index" json:"city_id"`
	TotalRooms    int            `gorm:"default:0" json:"totalRooms"`
	TotalBeds     int            `gorm:"default:0" json:"totalBeds"`
	AvailableBeds int            `gorm:"default:0" json:"availableBeds"`
	OccupiedBeds  int            `gorm:"default:0" json:"occupiedBeds"`
	RentMin       float64        `gorm:"default:0" json:"rentMin"`
	RentMax       float64        `gorm:"default:0" json:"rentMax"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Rooms  []Room `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
	Vendor *User  `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Area   *Area  `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	City   *City  `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}

// Room is owned exclusively by one Property and is never addressed
// outside its owning property's API path.
type Room struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PropertyID    uint           `gorm:"index;not null" json:"property_id"`
	RoomNumber    string         `gorm:"size:30;not null" json:"roomNumber"`
	RoomType      string         `gorm:"size:20;not null;default:'shared'" json:"roomType"`
	Rent          float64        `gorm:"not null" json:"rent"`
	TotalBeds     int            `gorm:"default:0" json:"totalBeds"`
	AvailableBeds int            `gorm:"default:0" json:"availableBeds"`
	OccupiedBeds  int            `gorm:"default:0" json:"occupiedBeds"`
	OnBookBeds    int            `gorm:"default:0" json:"onBookBeds"`
	OnNoticeBeds  int            `gorm:"default:0" json:"onNoticeBeds"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Beds []Bed `gorm:"foreignKey:RoomID" json:"beds,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// Bed is the smallest rentable unit, owned exclusively by one Room.
// Beds carry no soft-delete flag of their own; room-level IsActive is
// the only soft delete below the property.
type Bed struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RoomID          uint       `gorm:"index;not null" json:"room_id"`
	BedNumber       string     `gorm:"size:30;not null" json:"bedNumber"`
	Status          BedStatus  `gorm:"size:20;not null;default:'available'" json:"status"`
	StudentName     string     `gorm:"size:100" json:"studentName,omitempty"`
	StudentPhone    string     `gorm:"size:20" json:"studentPhone,omitempty"`
	StudentEmail    string     `gorm:"size:100" json:"studentEmail,omitempty"`
	JoiningDate     *time.Time `gorm:"type:date" json:"joiningDate,omitempty"`
	RentDueDate     *time.Time `gorm:"type:date" json:"rentDueDate,omitempty"`
	SecurityDeposit float64    `gorm:"default:0" json:"securityDeposit"`
	AdvanceRent     float64    `gorm:"default:0" json:"advanceRent"`
	NoticeDate      *time.Time `gorm:"type:date" json:"noticeDate,omitempty"`
	VacatingDate    *time.Time `gorm:"type:date" json:"vacatingDate,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bed) TableName() string {
	return "beds"
}

// ClearOccupant resets all occupant and financial fields, used when a
// bed returns to available.
func (b *Bed) ClearOccupant() {
	b.StudentName = ""
	b.StudentPhone = ""
	b.StudentEmail = ""
	b.JoiningDate = nil
	b.RentDueDate = nil
	b.SecurityDeposit = 0
	b.AdvanceRent = 0
	b.NoticeDate = nil
	b.VacatingDate = nil
}

// ============================================================
// Aggregate recomputation
// ============================================================

// RecalculateCounts sets the room counters from the given beds. Every
// bed counts toward TotalBeds; status counters count beds in exactly
// that status.
func (r *Room) RecalculateCounts(beds []Bed) {
	r.TotalBeds = len(beds)
	r.AvailableBeds = 0
	r.OccupiedBeds = 0
	r.OnBookBeds = 0
	r.OnNoticeBeds = 0

	for i := range beds {
		switch beds[i].Status {
		case BedAvailable:
			r.AvailableBeds++
		case BedOccupied:
			r.OccupiedBeds++
		case BedOnBook:
			r.OnBookBeds++
		case BedNotice:
			r.OnNoticeBeds++
		}
	}
}

// RecalculateCounts sets the property counters from the given rooms.
// Only active rooms contribute. Active rooms with zero beds still
// contribute their rent to the rent range.
func (p *Property) RecalculateCounts(rooms []Room) {
	p.TotalRooms = 0
	p.TotalBeds = 0
	p.AvailableBeds = 0
	p.OccupiedBeds = 0
	p.RentMin = 0
	p.RentMax = 0

	for i := range rooms {
		room := &rooms[i]
		if !room.IsActive {
			continue
		}

		p.TotalRooms++
		p.TotalBeds += room.TotalBeds
		p.AvailableBeds += room.AvailableBeds
		p.OccupiedBeds += room.OccupiedBeds

		if p.RentMin == 0 || room.Rent < p.RentMin {
			p.RentMin = room.Rent
		}
		if room.Rent > p.RentMax {
			p.RentMax = room.Rent
		}
	}
}

// ============================================================
// DTOs
// ============================================================

// RentRange mirrors the rentRange object on public listings
type RentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PropertySummary is the public listing card
type PropertySummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	PropertyType  string    `json:"propertyType"`
	Address       string    `json:"address"`
	AreaName      string    `json:"areaName,omitempty"`
	CityName      string    `json:"cityName,omitempty"`
	TotalRooms    int       `json:"totalRooms"`
	TotalBeds     int       `json:"totalBeds"`
	AvailableBeds int       `json:"availableBeds"`
	RentRange     RentRange `json:"rentRange"`
}

func (p *Property) ToSummary() *PropertySummary {
	s := &PropertySummary{
		ID:            p.ID,
		Name:          p.Name,
		PropertyType:  p.PropertyType,
		Address:       p.Address,
		TotalRooms:    p.TotalRooms,
		TotalBeds:     p.TotalBeds,
		AvailableBeds: p.AvailableBeds,
		RentRange:     RentRange{Min: p.RentMin, Max: p.RentMax},
	}
	if p.Area != nil {
		s.AreaName = p.Area.Name
	}
	if p.City != nil {
		s.CityName = p.City.Name
	}
	return s
}

// BookingBed is the booking-dropdown view of a bed
type BookingBed struct {
	ID          uint   `json:"id"`
	BedNumber   string `json:"bedNumber"`
	Status      string `json:"status"`
	StudentName string `json:"studentName,omitempty"`
	IsBookable  bool   `json:"isBookable"`
}

func (b *Bed) ToBookingBed() *BookingBed {
	return &BookingBed{
		ID:          b.ID,
		BedNumber:   b.BedNumber,
		Status:      string(b.Status),
		StudentName: b.StudentName,
		IsBookable:  b.Status.IsBookable(),
	}
}
