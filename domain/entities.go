package domain

import "strings"

// Roles carried by the user store
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// Profile is the identity block the user store returns on a successful login
type Profile struct {
	FirstName string
	LastName  string
	Role      string
}

// DisplayName concatenates the store's first and last name fields
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Session is the client-held record of an authenticated user. When
// Authenticated is true, Token and Username are always set. The JSON tags
// are the persisted single-key storage layout and must not change without a
// new storage key.
type Session struct {
	Authenticated bool   `json:"isAuthenticated"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	Token         string `json:"token"`
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	Token   string
	Profile *Profile
}

// Account is a read-only projection of a bank account. TransferFee is the
// figure quoted by the terminal rejection notice; Balance is display-only and
// is never debited.
type Account struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
	TransferFee float64 `json:"transferFee"`
}

// Country selects which bank-identifier format a transfer uses
type Country string

const (
	CountryUS Country = "us"
	CountryCA Country = "ca"
)

// BankIdentifier is the country-specific routing information of a transfer.
// US and CA field sets are mutually exclusive and never merged.
type BankIdentifier interface {
	Country() Country
}

// USBankIdentifier routes through a 9-digit ABA routing number
type USBankIdentifier struct {
	RoutingNumber string
	AccountNumber string
}

func (USBankIdentifier) Country() Country { return CountryUS }

// CABankIdentifier routes through institution and transit numbers
type CABankIdentifier struct {
	InstitutionNumber string
	TransitNumber     string
	AccountNumber     string
}

func (CABankIdentifier) Country() Country { return CountryCA }

// TransferRequest is the validated form content handed to the PIN gate. It is
// ephemeral and never persisted.
type TransferRequest struct {
	BankName      string
	Identifier    BankIdentifier
	RecipientName string
	Amount        float64
	Note          string
}

// TransferStage is the state of the wire-transfer flow
type TransferStage string

const (
	StageEditing    TransferStage = "editing"
	StagePinPending TransferStage = "pin_pending"
	StageRejected   TransferStage = "rejected"
)

// Field names a transfer form input. Values double as validation-error keys.
type Field string

const (
	FieldBankName          Field = "bankName"
	FieldRoutingNumber     Field = "routingNumber"
	FieldInstitutionNumber Field = "institutionNumber"
	FieldTransitNumber     Field = "transitNumber"
	FieldAccountNumber     Field = "accountNumber"
	FieldRecipientName     Field = "recipientName"
	FieldAmount            Field = "amount"
	FieldNote              Field = "note"
)

// ActivityKind identifies a qualifying user input event. Any of these resets
// the inactivity clock; the host forwards them from whatever input surface
// it owns, including interaction with the warning dialog itself.
type ActivityKind string

const (
	ActivityPointerDown ActivityKind = "mousedown"
	ActivityPointerMove ActivityKind = "mousemove"
	ActivityKeyPress    ActivityKind = "keypress"
	ActivityScroll      ActivityKind = "scroll"
	ActivityTouchStart  ActivityKind = "touchstart"
	ActivityClick       ActivityKind = "click"
)

// QualifyingActivities is the fixed set of events that re-arm the inactivity
// timer.
var QualifyingActivities = []ActivityKind{
	ActivityPointerDown,
	ActivityPointerMove,
	ActivityKeyPress,
	ActivityScroll,
	ActivityTouchStart,
	ActivityClick,
}

// User is a user-store record as the stub server persists it
type User struct {
	ID        uint
	Username  string
	FirstName string
	LastName  string
	Email     string
	PasswordHash string `gorm:"column:password"`
	Role      string
	IsActive  bool
}
