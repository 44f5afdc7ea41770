package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// TransferServiceConfig carries the flow's policy knobs
type TransferServiceConfig struct {
	// FallbackFee is quoted when the account projection cannot be fetched
	FallbackFee float64
	// MaxAmount is the upper bound accepted by validation
	MaxAmount float64
}

// TransferServiceImpl implements domain.TransferFlow: a form state machine
// that validates country-specific recipient/bank fields, gates submission
// behind a PIN challenge, and always terminates in the fixed fee rejection.
// One instance per visit to the transfer view.
type TransferServiceImpl struct {
	userStore domain.UserStore
	pin       domain.PinVerifier
	sink      domain.EventSink
	config    TransferServiceConfig

	mu      sync.Mutex
	country domain.Country
	fields  map[domain.Field]string
	errors  map[domain.Field]string
	stage   domain.TransferStage

	pinBuffer string
	pinError  string

	fee     float64
	request *domain.TransferRequest
}

var usFields = []domain.Field{
	domain.FieldBankName,
	domain.FieldRoutingNumber,
	domain.FieldAccountNumber,
	domain.FieldRecipientName,
	domain.FieldAmount,
	domain.FieldNote,
}

var caFields = []domain.Field{
	domain.FieldBankName,
	domain.FieldInstitutionNumber,
	domain.FieldTransitNumber,
	domain.FieldAccountNumber,
	domain.FieldRecipientName,
	domain.FieldAmount,
	domain.FieldNote,
}

// NewTransferService creates a fresh flow in the Editing stage with the US
// field set selected.
func NewTransferService(
	userStore domain.UserStore,
	pin domain.PinVerifier,
	sink domain.EventSink,
	config TransferServiceConfig,
) *TransferServiceImpl {
	s := &TransferServiceImpl{
		userStore: userStore,
		pin:       pin,
		sink:      sink,
		config:    config,
		country:   domain.CountryUS,
		stage:     domain.StageEditing,
		fee:       config.FallbackFee,
	}
	s.resetFieldsLocked()
	return s
}

// LoadFee reads the account's transfer fee from the user store. Any fetch
// failure falls back to the configured default fee rather than breaking the
// form.
func (s *TransferServiceImpl) LoadFee(ctx context.Context, username, token string) {
	accounts, err := s.userStore.Accounts(ctx, username, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || len(accounts) == 0 {
		s.fee = s.config.FallbackFee
		return
	}
	s.fee = accounts[0].TransferFee
}

// SelectCountry switches the bank-identifier format. Fields are not portable
// across formats, so all of them are cleared along with any errors.
func (s *TransferServiceImpl) SelectCountry(country domain.Country) {
	if country != domain.CountryUS && country != domain.CountryCA {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StageEditing {
		return
	}
	s.country = country
	s.resetFieldsLocked()
}

func (s *TransferServiceImpl) resetFieldsLocked() {
	s.fields = make(map[domain.Field]string)
	for _, f := range s.allowedFieldsLocked() {
		s.fields[f] = ""
	}
	s.errors = make(map[domain.Field]string)
	s.request = nil
}

func (s *TransferServiceImpl) allowedFieldsLocked() []domain.Field {
	if s.country == domain.CountryCA {
		return caFields
	}
	return usFields
}

// SetField stores a field edit. The value is filtered to the field's allowed
// character class first, and touching a field clears any existing error on
// it. Fields outside the selected country's set are ignored.
func (s *TransferServiceImpl) SetField(field domain.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StageEditing {
		return
	}
	if _, ok := s.fields[field]; !ok {
		return
	}

	switch field {
	case domain.FieldBankName, domain.FieldRecipientName:
		value = FilterName(value)
	case domain.FieldRoutingNumber, domain.FieldInstitutionNumber,
		domain.FieldTransitNumber, domain.FieldAccountNumber:
		value = FilterDigits(value)
	case domain.FieldAmount:
		value = FilterAmount(value)
	}

	s.fields[field] = value
	delete(s.errors, field)
}

// FieldValue returns the stored (filtered) value of a field
func (s *TransferServiceImpl) FieldValue(field domain.Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[field]
}

// Submit runs validation over every applicable field, collecting all
// failures before reporting. On success the flow advances to PinPending with
// a cleared PIN buffer; on failure it stays in Editing with the error map
// populated. Returns whether validation passed.
func (s *TransferServiceImpl) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StageEditing {
		return false
	}

	errs := s.validateLocked()
	if len(errs) > 0 {
		s.errors = errs
		return false
	}

	s.errors = make(map[domain.Field]string)
	s.request = s.buildRequestLocked()
	s.stage = domain.StagePinPending
	s.pinBuffer = ""
	s.pinError = ""
	return true
}

func (s *TransferServiceImpl) validateLocked() map[domain.Field]string {
	errs := make(map[domain.Field]string)

	bankName := strings.TrimSpace(s.fields[domain.FieldBankName])
	if bankName == "" {
		errs[domain.FieldBankName] = "Bank name is required"
	} else if !ValidName(bankName) {
		errs[domain.FieldBankName] = "Bank name can only contain letters, spaces, hyphens, apostrophes, and periods"
	}

	if s.country == domain.CountryUS {
		routing := strings.TrimSpace(s.fields[domain.FieldRoutingNumber])
		if routing == "" {
			errs[domain.FieldRoutingNumber] = "Routing number is required"
		} else if !AllDigits(routing, 9, 9) {
			errs[domain.FieldRoutingNumber] = "Routing number must be exactly 9 digits"
		} else if !ValidABARoutingNumber(routing) {
			errs[domain.FieldRoutingNumber] = "Invalid routing number"
		}

		account := strings.TrimSpace(s.fields[domain.FieldAccountNumber])
		if account == "" {
			errs[domain.FieldAccountNumber] = "Account number is required"
		} else if !AllDigits(account, 8, 17) {
			errs[domain.FieldAccountNumber] = "Account number must be 8-17 digits"
		}
	} else {
		institution := strings.TrimSpace(s.fields[domain.FieldInstitutionNumber])
		if institution == "" {
			errs[domain.FieldInstitutionNumber] = "Institution number is required"
		} else if !AllDigits(institution, 3, 3) {
			errs[domain.FieldInstitutionNumber] = "Institution number must be exactly 3 digits"
		}

		transit := strings.TrimSpace(s.fields[domain.FieldTransitNumber])
		if transit == "" {
			errs[domain.FieldTransitNumber] = "Transit number is required"
		} else if !AllDigits(transit, 5, 5) {
			errs[domain.FieldTransitNumber] = "Transit number must be exactly 5 digits"
		}

		account := strings.TrimSpace(s.fields[domain.FieldAccountNumber])
		if account == "" {
			errs[domain.FieldAccountNumber] = "Account number is required"
		} else if !AllDigits(account, 7, 12) {
			errs[domain.FieldAccountNumber] = "Account number must be 7-12 digits"
		}
	}

	recipient := strings.TrimSpace(s.fields[domain.FieldRecipientName])
	if recipient == "" {
		errs[domain.FieldRecipientName] = "Recipient name is required"
	} else if !ValidName(recipient) {
		errs[domain.FieldRecipientName] = "Recipient name can only contain letters, spaces, hyphens, apostrophes, and periods"
	}

	amount := strings.TrimSpace(s.fields[domain.FieldAmount])
	if amount == "" {
		errs[domain.FieldAmount] = "Amount is required"
	} else if v, err := strconv.ParseFloat(amount, 64); err != nil || v <= 0 {
		errs[domain.FieldAmount] = "Please enter a valid amount"
	} else if s.config.MaxAmount > 0 && v > s.config.MaxAmount {
		errs[domain.FieldAmount] = fmt.Sprintf("Please enter a valid amount between $0.01 and $%s", formatMoney(s.config.MaxAmount))
	}

	return errs
}

func (s *TransferServiceImpl) buildRequestLocked() *domain.TransferRequest {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(s.fields[domain.FieldAmount]), 64)
	req := &domain.TransferRequest{
		BankName:      strings.TrimSpace(s.fields[domain.FieldBankName]),
		RecipientName: strings.TrimSpace(s.fields[domain.FieldRecipientName]),
		Amount:        amount,
		Note:          s.fields[domain.FieldNote],
	}
	if s.country == domain.CountryCA {
		req.Identifier = domain.CABankIdentifier{
			InstitutionNumber: s.fields[domain.FieldInstitutionNumber],
			TransitNumber:     s.fields[domain.FieldTransitNumber],
			AccountNumber:     s.fields[domain.FieldAccountNumber],
		}
	} else {
		req.Identifier = domain.USBankIdentifier{
			RoutingNumber: s.fields[domain.FieldRoutingNumber],
			AccountNumber: s.fields[domain.FieldAccountNumber],
		}
	}
	return req
}

// SetPin stores PIN input, cleared of non-digits. Changing the buffer clears
// any PIN error.
func (s *TransferServiceImpl) SetPin(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StagePinPending {
		return
	}
	s.pinBuffer = FilterDigits(value)
	s.pinError = ""
}

// ConfirmPin checks the buffered PIN against the verification capability.
// Success closes the PIN prompt and moves straight to the fixed fee
// rejection; a mismatch keeps the buffer for correction. Returns whether the
// PIN verified.
func (s *TransferServiceImpl) ConfirmPin(ctx context.Context) bool {
	s.mu.Lock()
	if s.stage != domain.StagePinPending {
		s.mu.Unlock()
		return false
	}
	secret := s.pinBuffer
	s.mu.Unlock()

	ok, err := s.pin.Verify(ctx, secret)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StagePinPending {
		// torn down while the verification was in flight
		return false
	}
	if err != nil {
		if errors.Is(err, domain.ErrPinMaxAttempts) {
			s.pinError = "Too many incorrect attempts. Please try again later."
		} else {
			s.pinError = "Incorrect PIN"
		}
		return false
	}
	if !ok {
		s.pinError = "Incorrect PIN"
		return false
	}

	s.stage = domain.StageRejected
	s.pinBuffer = ""
	s.pinError = ""
	s.publish(domain.NewSessionEvent(domain.TransferRejectedEvent, "").
		WithMetadata("fee", s.fee).
		WithMetadata("amount", s.request.Amount))
	return true
}

// CancelPin abandons the PIN challenge, discarding the buffer. The form
// returns to Editing with its fields intact.
func (s *TransferServiceImpl) CancelPin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StagePinPending {
		return
	}
	s.stage = domain.StageEditing
	s.pinBuffer = ""
	s.pinError = ""
}

// DismissRejection acknowledges the terminal notice. Field values remain as
// submitted so the user can correct and retry.
func (s *TransferServiceImpl) DismissRejection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != domain.StageRejected {
		return
	}
	s.stage = domain.StageEditing
}

// Stage returns the current flow stage
func (s *TransferServiceImpl) Stage() domain.TransferStage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// ValidationErrors returns a copy of the per-field error map
func (s *TransferServiceImpl) ValidationErrors() map[domain.Field]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Field]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// PinError returns the message shown inside the PIN prompt, if any
func (s *TransferServiceImpl) PinError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinError
}

// Request returns the validated transfer request, or nil before a successful
// submit. The request is never executed; it exists for display and audit.
func (s *TransferServiceImpl) Request() *domain.TransferRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request
}

// Country returns the selected bank-identifier format
func (s *TransferServiceImpl) Country() domain.Country {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.country
}

// RejectionNotice is the terminal business message. Every successful
// submission resolves here; no transfer is ever executed and no balance is
// ever mutated.
func (s *TransferServiceImpl) RejectionNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf(
		"Your transaction cannot be processed at this time. A required fee of $%s must be paid in order to proceed.",
		formatMoney(s.fee),
	)
}

func (s *TransferServiceImpl) publish(event *domain.SessionEvent) {
	if s.sink != nil {
		s.sink.Publish(event)
	}
}

// formatMoney renders a nonnegative figure with thousands separators, the
// way the rejection notice quotes the fee (3300 -> "3,300").
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	return b.String() + frac
}

var _ domain.TransferFlow = (*TransferServiceImpl)(nil)
