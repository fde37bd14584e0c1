package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User roles, one per surface
const (
	RoleStudent = "STUDENT"
	RoleVendor  = "VENDOR"
	RoleAdmin   = "ADMIN"
)

// User represents users table (students, vendors and admins)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'STUDENT'" json:"role"`
	ReferralCode string         `gorm:"uniqueIndex;size:12" json:"referral_code"`
	ReferredBy   *uint          `gorm:"index" json:"referred_by"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	ReferralCode string    `json:"referral_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		ReferralCode: u.ReferralCode,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// KYC
// ============================================================

// KYC statuses
const (
	KYCStatusPending  = "pending"
	KYCStatusVerified = "verified"
	KYCStatusRejected = "rejected"
)

// KYC represents a student's identity verification record.
// One record per student, enforced by the unique index.
type KYC struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"uniqueIndex;not null" json:"student_id"`
	DocumentType   string     `gorm:"size:30;not null" json:"document_type"`
	DocumentNumber string     `gorm:"size:50;not null" json:"document_number"`
	Status         string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Remark         string     `gorm:"type:text" json:"remark"`
	VerifiedBy     *uint      `json:"verified_by"`
	VerifiedAt     *time.Time `json:"verified_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (KYC) TableName() string {
	return "kyc_records"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Locations
		&Country{},
		&State{},
		&City{},
		&Area{},
		// Inventory
		&Property{},
		&Room{},
		&Bed{},
		// Student portal
		&KYC{},
		&Payment{},
		&WalletRequest{},
		&Booking{},
	)
}
