package models

import "time"

// ============================================================
// Location hierarchy: country → state → city → area
// ============================================================

type Country struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:80;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Country) TableName() string {
	return "countries"
}

type State struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CountryID uint      `gorm:"index;not null" json:"country_id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

func (State) TableName() string {
	return "states"
}

type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StateID   uint      `gorm:"index;not null" json:"state_id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	State *State `gorm:"foreignKey:StateID" json:"state,omitempty"`
}

func (City) TableName() string {
	return "cities"
}

type Area struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CityID    uint      `gorm:"index;not null" json:"city_id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	Pincode   string    `gorm:"size:10" json:"pincode"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Area) TableName() string {
	return "areas"
}
