package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorStatus is the onboarding state of a vendor application.
type VendorStatus string

const (
	VendorPendingPayment VendorStatus = "pending_payment"
	VendorActive         VendorStatus = "active"
)

// VendorApplication is a seller onboarding request. The listing fee is
// recorded at submission and settled through the payment stub.
type VendorApplication struct {
	ID            string          `json:"id"`
	BusinessName  string          `json:"businessName"`
	ContactName   string          `json:"contactName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	BusinessType  string          `json:"businessType"`
	Experience    string          `json:"experience"`
	AgreedToTerms bool            `json:"agreeToTerms"`
	Status        VendorStatus    `json:"status"`
	Fee           decimal.Decimal `json:"fee"`
	Currency      string          `json:"currency"`
	PaymentRef    string          `json:"paymentRef,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Inquiry is a message left through the contact form.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// FacetKind names a browse dimension of the catalog.
type FacetKind string

const (
	FacetCategory FacetKind = "category"
	FacetLocation FacetKind = "location"
)

// Facet is one selectable value of a browse dimension.
type Facet struct {
	Kind     FacetKind `json:"kind"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}
