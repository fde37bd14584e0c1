package models

import "time"

// ============================================================
// Wallet ledger
// ============================================================

// Payment types
const (
	PaymentCredit = "credit"
	PaymentDebit  = "debit"
)

// Payment is one row of a student's append-only wallet ledger. The
// balance is never materialized; it is always SUM(credit) - SUM(debit)
// computed at read time.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Type      string    `gorm:"size:10;not null" json:"type"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Wallet request statuses and payment methods
const (
	WalletRequestPending  = "pending"
	WalletRequestApproved = "approved"
	WalletRequestRejected = "rejected"

	MethodUPI          = "upi"
	MethodBankTransfer = "bank_transfer"
)

// WalletRequest is a student top-up request awaiting admin review.
// Approval credits the ledger atomically with the status flip.
type WalletRequest struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	StudentID     uint       `gorm:"index;not null" json:"student_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	PaymentMethod string     `gorm:"size:20;not null" json:"paymentMethod"`
	Status        string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Note          string     `gorm:"size:255" json:"note"`
	ReviewedBy    *uint      `json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (WalletRequest) TableName() string {
	return "wallet_requests"
}

func (w *WalletRequest) IsPending() bool {
	return w.Status == WalletRequestPending
}

// ============================================================
// Bookings
// ============================================================

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a student reserving a bed. The bed's move to onbook,
// the advance debit and this row are committed in one transaction.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"index;not null" json:"student_id"`
	PropertyID uint      `gorm:"index;not null" json:"property_id"`
	RoomID     uint      `gorm:"not null" json:"room_id"`
	BedID      uint      `gorm:"not null" json:"bed_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Status     string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Student  *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
