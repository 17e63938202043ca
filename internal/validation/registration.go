package validation

import (
	"strings"
	"unicode/utf8"
)

// FileInfo describes an uploaded file as far as the rules need it.
type FileInfo struct {
	Size        int64
	ContentType string
}

func (f *FileInfo) IsImage() bool {
	return f != nil && strings.HasPrefix(f.ContentType, "image/")
}

// RegistrationForm is the membership form as submitted. A nil file means none was attached.
type RegistrationForm struct {
	SectorNumber          string
	RoadNumber            string
	PlotNumber            string
	PlotSize              string
	OwnershipProofType    string
	OwnershipProofFile    *FileInfo
	OwnerNameEnglish      string
	OwnerNameBangla       string
	ContactNumber         string
	NIDNumber             string
	PresentAddress        string
	PermanentAddress      string
	Email                 string
	OwnerPhoto            *FileInfo
	PaymentMethod         string
	BkashTransactionID    string
	BkashAccountNumber    string
	BankAccountNumberFrom string
	PaymentReceipt        *FileInfo
	AgreeDataUse          bool
	Password              string
}

// method is the payment method as the conditional rules compare it.
func (f *RegistrationForm) method() string {
	return strings.TrimSpace(f.PaymentMethod)
}

// Field keys, shared with the multipart form names.
const (
	FieldSectorNumber          = "sectorNumber"
	FieldRoadNumber            = "roadNumber"
	FieldPlotNumber            = "plotNumber"
	FieldPlotSize              = "plotSize"
	FieldOwnershipProofType    = "ownershipProofType"
	FieldOwnershipProofFile    = "ownershipProofFile"
	FieldOwnerNameEnglish      = "ownerNameEnglish"
	FieldOwnerNameBangla       = "ownerNameBangla"
	FieldContactNumber         = "contactNumber"
	FieldNIDNumber             = "nidNumber"
	FieldPresentAddress        = "presentAddress"
	FieldPermanentAddress      = "permanentAddress"
	FieldEmail                 = "email"
	FieldOwnerPhoto            = "ownerPhoto"
	FieldPaymentMethod         = "paymentMethod"
	FieldBkashTransactionID    = "bkashTransactionId"
	FieldBkashAccountNumber    = "bkashAccountNumber"
	FieldBankAccountNumberFrom = "bankAccountNumberFrom"
	FieldPaymentReceipt        = "paymentReceipt"
	FieldAgreeDataUse          = "agreeDataUse"
	FieldPassword              = "password"
)

// RegistrationFields lists every key in form order.
var RegistrationFields = []string{
	FieldSectorNumber,
	FieldRoadNumber,
	FieldPlotNumber,
	FieldPlotSize,
	FieldOwnershipProofType,
	FieldOwnershipProofFile,
	FieldOwnerNameEnglish,
	FieldOwnerNameBangla,
	FieldContactNumber,
	FieldNIDNumber,
	FieldPresentAddress,
	FieldPermanentAddress,
	FieldEmail,
	FieldOwnerPhoto,
	FieldPaymentMethod,
	FieldBkashTransactionID,
	FieldBkashAccountNumber,
	FieldBankAccountNumberFrom,
	FieldPaymentReceipt,
	FieldAgreeDataUse,
	FieldPassword,
}

var labels = map[string]string{
	FieldSectorNumber:       "Sector number",
	FieldRoadNumber:         "Road number",
	FieldPlotNumber:         "Plot number",
	FieldPlotSize:           "Plot size",
	FieldOwnershipProofType: "Document type",
	FieldOwnerNameEnglish:   "Owner name (English)",
	FieldOwnerNameBangla:    "Owner name (Bangla)",
	FieldPresentAddress:     "Present address",
	FieldPermanentAddress:   "Permanent address",
	FieldPaymentMethod:      "Payment method",
}

func required(key, value string) string {
	if !nonEmpty(value) {
		return labels[key] + " is required"
	}
	return ""
}

// ValidateRegistrationField checks one field. Rules for one field never
// report on another; payment fields only apply to their own method.
func ValidateRegistrationField(key string, f *RegistrationForm) string {
	switch key {
	case FieldSectorNumber:
		return required(key, f.SectorNumber)
	case FieldRoadNumber:
		return required(key, f.RoadNumber)
	case FieldPlotNumber:
		return required(key, f.PlotNumber)
	case FieldPlotSize:
		return required(key, f.PlotSize)
	case FieldOwnerNameEnglish:
		return required(key, f.OwnerNameEnglish)
	case FieldOwnerNameBangla:
		return required(key, f.OwnerNameBangla)
	case FieldPresentAddress:
		return required(key, f.PresentAddress)
	case FieldPermanentAddress:
		return required(key, f.PermanentAddress)
	case FieldOwnershipProofType:
		return required(key, f.OwnershipProofType)
	case FieldPaymentMethod:
		return required(key, f.PaymentMethod)
	case FieldPassword:
		if !nonEmpty(f.Password) || utf8.RuneCountInString(f.Password) < 8 {
			return "Password must be at least 8 characters"
		}
	case FieldContactNumber:
		if !nonEmpty(f.ContactNumber) || !IsPhone(f.ContactNumber) {
			return "Enter a valid phone number"
		}
	case FieldNIDNumber:
		if !nonEmpty(f.NIDNumber) || !IsNID(f.NIDNumber) {
			return "Enter a valid numeric NID (8–20 digits)"
		}
	case FieldEmail:
		if !nonEmpty(f.Email) || !IsEmail(f.Email) {
			return "Enter a valid email address"
		}
	case FieldOwnershipProofFile:
		if f.OwnershipProofFile == nil {
			return "Ownership proof file is required"
		}
		if f.OwnershipProofFile.Size > MaxFileSize {
			return "Ownership proof must be ≤ 10MB"
		}
	case FieldOwnerPhoto:
		if f.OwnerPhoto == nil {
			return "Owner photo is required"
		}
		if f.OwnerPhoto.Size > MaxFileSize {
			return "Photo must be ≤ 10MB"
		}
		if !f.OwnerPhoto.IsImage() {
			return "Photo must be an image file"
		}
	case FieldBkashTransactionID:
		if f.method() == "BKASH" && !nonEmpty(f.BkashTransactionID) {
			return "bKash transaction ID is required"
		}
	case FieldBkashAccountNumber:
		if f.method() == "BKASH" && !nonEmpty(f.BkashAccountNumber) {
			return "bKash account number used is required"
		}
	case FieldBankAccountNumberFrom:
		if f.method() == "BANK" && !nonEmpty(f.BankAccountNumberFrom) {
			return "Bank account number (sender) is required"
		}
	case FieldPaymentReceipt:
		if f.PaymentReceipt == nil {
			return "Payment receipt/screenshot is required"
		}
		if f.PaymentReceipt.Size > MaxFileSize {
			return "Receipt must be ≤ 10MB"
		}
	case FieldAgreeDataUse:
		if !f.AgreeDataUse {
			return "You must agree to the data use notice"
		}
	}
	return ""
}

// ValidateRegistration runs every field rule.
func ValidateRegistration(f *RegistrationForm) Errors {
	errs := Errors{}
	for _, key := range RegistrationFields {
		errs.add(key, ValidateRegistrationField(key, f))
	}
	return errs
}
