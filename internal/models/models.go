package models

import (
	"time"
)

type MemberStatus string

const (
	StatusPending  MemberStatus = "PENDING"
	StatusApproved MemberStatus = "APPROVED"
	StatusRejected MemberStatus = "REJECTED"
)

type OwnershipProofType string

const (
	ProofLDTaxReceipt  OwnershipProofType = "LD_TAX_RECEIPT"
	ProofMutationPaper OwnershipProofType = "MUTATION_PAPER"
	ProofBDSKhatian    OwnershipProofType = "BDS_KHATIAN"
)

func (t OwnershipProofType) Valid() bool {
	switch t {
	case ProofLDTaxReceipt, ProofMutationPaper, ProofBDSKhatian:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentBkash PaymentMethod = "BKASH"
	PaymentBank  PaymentMethod = "BANK"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentBkash || m == PaymentBank
}

type StaffRole string

const (
	RoleAdmin  StaffRole = "ADMIN"
	RoleEditor StaffRole = "EDITOR"
	RoleViewer StaffRole = "VIEWER"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

const DefaultMembershipFee = 1020

// Member is a registered plot owner. PasswordHash never leaves the server.
type Member struct {
	ID                    int64              `json:"id" db:"id"`
	Email                 string             `json:"email" db:"email"`
	PasswordHash          string             `json:"-" db:"password_hash"`
	SectorNumber          string             `json:"sectorNumber" db:"sector_number"`
	RoadNumber            string             `json:"roadNumber" db:"road_number"`
	PlotNumber            string             `json:"plotNumber" db:"plot_number"`
	PlotSize              string             `json:"plotSize" db:"plot_size"`
	OwnershipProofType    OwnershipProofType `json:"ownershipProofType" db:"ownership_proof_type"`
	OwnershipProofFile    *string            `json:"ownershipProofFile" db:"ownership_proof_file"`
	OwnerNameEnglish      string             `json:"ownerNameEnglish" db:"owner_name_english"`
	OwnerNameBangla       string             `json:"ownerNameBangla" db:"owner_name_bangla"`
	ContactNumber         string             `json:"contactNumber" db:"contact_number"`
	NIDNumber             string             `json:"nidNumber" db:"nid_number"`
	PresentAddress        string             `json:"presentAddress" db:"present_address"`
	PermanentAddress      string             `json:"permanentAddress" db:"permanent_address"`
	OwnerPhoto            *string            `json:"ownerPhoto" db:"owner_photo"`
	PaymentMethod         PaymentMethod      `json:"paymentMethod" db:"payment_method"`
	BkashTransactionID    *string            `json:"bkashTransactionId" db:"bkash_transaction_id"`
	BkashAccountNumber    *string            `json:"bkashAccountNumber" db:"bkash_account_number"`
	BankAccountNumberFrom *string            `json:"bankAccountNumberFrom" db:"bank_account_number_from"`
	PaymentReceipt        *string            `json:"paymentReceipt" db:"payment_receipt"`
	MembershipFee         int                `json:"membershipFee" db:"membership_fee"`
	AgreeDataUse          bool               `json:"agreeDataUse" db:"agree_data_use"`
	Status                MemberStatus       `json:"status" db:"status"`
	CreatedAt             time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time          `json:"updatedAt" db:"updated_at"`
}

// Staff is an operator account for the dashboard.
type Staff struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Title        *string   `json:"title" db:"title"`
	Address      *string   `json:"address" db:"address"`
	PhotoURL     *string   `json:"photoUrl" db:"photo_url"`
	Role         StaffRole `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Post is a staff-managed article. AuthorID points at a member and is
// cleared of its posts when that member is deleted.
type Post struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	CoverImage *string   `json:"coverImage" db:"cover_image"`
	Published  bool      `json:"published" db:"published"`
	AuthorID   *int64    `json:"authorId" db:"author_id"`
	StaffID    *int64    `json:"staffId" db:"staff_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type Preview struct {
	ID        int64     `json:"id" db:"id"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MemberStats holds member counts by status.
type MemberStats struct {
	Total    int `json:"total" db:"total"`
	Active   int `json:"active" db:"active"`
	Pending  int `json:"pending" db:"pending"`
	Inactive int `json:"inactive" db:"inactive"`
}

type PostStats struct {
	Total     int `json:"total" db:"total"`
	Published int `json:"published" db:"published"`
}

// UI status names used by the dashboard.
const (
	UIStatusActive   = "active"
	UIStatusPending  = "pending"
	UIStatusInactive = "inactive"
)

// StatusFromUI maps a dashboard status name to the stored enum.
func StatusFromUI(ui string) (MemberStatus, bool) {
	switch ui {
	case UIStatusActive:
		return StatusApproved, true
	case UIStatusPending:
		return StatusPending, true
	case UIStatusInactive:
		return StatusRejected, true
	}
	return "", false
}

// UIStatus is the inverse of StatusFromUI; unknown values read as pending.
func (s MemberStatus) UIStatus() string {
	switch s {
	case StatusApproved:
		return UIStatusActive
	case StatusRejected:
		return UIStatusInactive
	default:
		return UIStatusPending
	}
}
