package services

import (
	"context"
	"strings"
	"testing"

	"github.com/mrozdorothy3-debug/swed/domain"
	"github.com/mrozdorothy3-debug/swed/internal/mocks"
)

const testPin = "0034"

func newTransferFixture() (*TransferServiceImpl, *mocks.MockUserStore, *mocks.MockEventSink) {
	store := mocks.NewMockUserStore()
	sink := mocks.NewMockEventSink()
	svc := NewTransferService(store, mocks.NewMockPinVerifier(testPin), sink, TransferServiceConfig{
		FallbackFee: 3000,
		MaxAmount:   100000,
	})
	return svc, store, sink
}

func fillValidUSForm(svc *TransferServiceImpl) {
	svc.SetField(domain.FieldBankName, "First National Bank")
	svc.SetField(domain.FieldRoutingNumber, "021000021")
	svc.SetField(domain.FieldAccountNumber, "12345678")
	svc.SetField(domain.FieldRecipientName, "Jane Doe")
	svc.SetField(domain.FieldAmount, "100.00")
}

func TestTransferServiceImpl_LoadFee(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks.MockUserStore)
		expected   float64
	}{
		{
			name: "account fee adopted",
			setupMocks: func(store *mocks.MockUserStore) {
				store.AccountsFunc = func(ctx context.Context, username, token string) ([]domain.Account, error) {
					return []domain.Account{{ID: "primary", Type: "checking", Balance: 30000, TransferFee: 3300}}, nil
				}
			},
			expected: 3300,
		},
		{
			name: "fetch failure falls back",
			setupMocks: func(store *mocks.MockUserStore) {
				store.AccountsFunc = func(ctx context.Context, username, token string) ([]domain.Account, error) {
					return nil, domain.ErrMalformedResponse
				}
			},
			expected: 3000,
		},
		{
			name:       "empty projection falls back",
			setupMocks: func(store *mocks.MockUserStore) {},
			expected:   3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTransferFixture()
			tt.setupMocks(store)

			svc.LoadFee(context.Background(), "Neil Harryman", "token_abc")
			fillValidUSForm(svc)
			if !svc.Submit() {
				t.Fatalf("Submit() failed: %v", svc.ValidationErrors())
			}
			svc.SetPin(testPin)
			if !svc.ConfirmPin(context.Background()) {
				t.Fatal("ConfirmPin() failed")
			}

			notice := svc.RejectionNotice()
			want := "$" + formatMoney(tt.expected)
			if !strings.Contains(notice, want) {
				t.Errorf("rejection notice %q does not quote %s", notice, want)
			}
		})
	}
}

func TestTransferServiceImpl_SetFieldFilters(t *testing.T) {
	tests := []struct {
		name     string
		field    domain.Field
		input    string
		expected string
	}{
		{"routing keeps digits only", domain.FieldRoutingNumber, "02-1000021x", "021000021"},
		{"account keeps digits only", domain.FieldAccountNumber, "1234 5678", "12345678"},
		{"bank name drops digits", domain.FieldBankName, "First National 123", "First National "},
		{"recipient keeps punctuation", domain.FieldRecipientName, "O'Brien-Smith Jr.", "O'Brien-Smith Jr."},
		{"amount drops second point", domain.FieldAmount, "12.3.4", "12.3"},
		{"amount truncates cents", domain.FieldAmount, "12.3456", "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTransferFixture()
			svc.SetField(tt.field, tt.input)
			if got := svc.FieldValue(tt.field); got != tt.expected {
				t.Errorf("FieldValue(%s) = %q, want %q", tt.field, got, tt.expected)
			}
		})
	}
}

func TestTransferServiceImpl_SetFieldIgnoresForeignFields(t *testing.T) {
	svc, _, _ := newTransferFixture()

	// US format is selected; CA-only fields must not be accepted
	svc.SetField(domain.FieldInstitutionNumber, "001")
	svc.SetField(domain.FieldTransitNumber, "12345")

	if got := svc.FieldValue(domain.FieldInstitutionNumber); got != "" {
		t.Errorf("institution number stored under US format: %q", got)
	}
	if got := svc.FieldValue(domain.FieldTransitNumber); got != "" {
		t.Errorf("transit number stored under US format: %q", got)
	}
}

func TestTransferServiceImpl_SelectCountryClearsForm(t *testing.T) {
	svc, _, _ := newTransferFixture()
	fillValidUSForm(svc)

	svc.SelectCountry(domain.CountryCA)

	if svc.Country() != domain.CountryCA {
		t.Fatalf("Country() = %v, want %v", svc.Country(), domain.CountryCA)
	}
	for _, f := range []domain.Field{domain.FieldBankName, domain.FieldAccountNumber, domain.FieldRecipientName, domain.FieldAmount} {
		if got := svc.FieldValue(f); got != "" {
			t.Errorf("field %s survived the country switch: %q", f, got)
		}
	}
	if len(svc.ValidationErrors()) != 0 {
		t.Errorf("errors survived the country switch: %v", svc.ValidationErrors())
	}

	// switching back clears again rather than restoring
	svc.SetField(domain.FieldBankName, "Royal Bank")
	svc.SelectCountry(domain.CountryUS)
	if got := svc.FieldValue(domain.FieldBankName); got != "" {
		t.Errorf("bank name survived the second switch: %q", got)
	}
}

func TestTransferServiceImpl_SubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		country  domain.Country
		fill     func(*TransferServiceImpl)
		field    domain.Field
		expected string
	}{
		{
			name:     "bank name required",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldBankName, "") },
			field:    domain.FieldBankName,
			expected: "Bank name is required",
		},
		{
			name:     "routing number required",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldRoutingNumber, "") },
			field:    domain.FieldRoutingNumber,
			expected: "Routing number is required",
		},
		{
			name:     "routing number length",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldRoutingNumber, "1234") },
			field:    domain.FieldRoutingNumber,
			expected: "Routing number must be exactly 9 digits",
		},
		{
			name:    "routing number checksum",
			country: domain.CountryUS,
			fill: func(svc *TransferServiceImpl) {
				fillValidUSForm(svc)
				svc.SetField(domain.FieldRoutingNumber, "123456789")
			},
			field:    domain.FieldRoutingNumber,
			expected: "Invalid routing number",
		},
		{
			name:     "us account number length",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldAccountNumber, "1234567") },
			field:    domain.FieldAccountNumber,
			expected: "Account number must be 8-17 digits",
		},
		{
			name:     "recipient name required",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldRecipientName, "") },
			field:    domain.FieldRecipientName,
			expected: "Recipient name is required",
		},
		{
			name:     "amount required",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldAmount, "") },
			field:    domain.FieldAmount,
			expected: "Amount is required",
		},
		{
			name:     "amount must be positive",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldAmount, "0") },
			field:    domain.FieldAmount,
			expected: "Please enter a valid amount",
		},
		{
			name:     "amount over the cap",
			country:  domain.CountryUS,
			fill:     func(svc *TransferServiceImpl) { fillValidUSForm(svc); svc.SetField(domain.FieldAmount, "100001") },
			field:    domain.FieldAmount,
			expected: "Please enter a valid amount between $0.01 and $100,000",
		},
		{
			name:    "institution number length",
			country: domain.CountryCA,
			fill: func(svc *TransferServiceImpl) {
				fillValidCAForm(svc)
				svc.SetField(domain.FieldInstitutionNumber, "12")
			},
			field:    domain.FieldInstitutionNumber,
			expected: "Institution number must be exactly 3 digits",
		},
		{
			name:    "transit number length",
			country: domain.CountryCA,
			fill: func(svc *TransferServiceImpl) {
				fillValidCAForm(svc)
				svc.SetField(domain.FieldTransitNumber, "123")
			},
			field:    domain.FieldTransitNumber,
			expected: "Transit number must be exactly 5 digits",
		},
		{
			name:    "ca account number length",
			country: domain.CountryCA,
			fill: func(svc *TransferServiceImpl) {
				fillValidCAForm(svc)
				svc.SetField(domain.FieldAccountNumber, "123456")
			},
			field:    domain.FieldAccountNumber,
			expected: "Account number must be 7-12 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTransferFixture()
			svc.SelectCountry(tt.country)
			tt.fill(svc)

			if svc.Submit() {
				t.Fatal("Submit() passed, want validation failure")
			}
			if svc.Stage() != domain.StageEditing {
				t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StageEditing)
			}
			if got := svc.ValidationErrors()[tt.field]; got != tt.expected {
				t.Errorf("error on %s = %q, want %q", tt.field, got, tt.expected)
			}
		})
	}
}

func fillValidCAForm(svc *TransferServiceImpl) {
	svc.SetField(domain.FieldBankName, "Royal Bank of Canada")
	svc.SetField(domain.FieldInstitutionNumber, "003")
	svc.SetField(domain.FieldTransitNumber, "12345")
	svc.SetField(domain.FieldAccountNumber, "1234567")
	svc.SetField(domain.FieldRecipientName, "Jane Doe")
	svc.SetField(domain.FieldAmount, "50")
}

func TestTransferServiceImpl_SubmitCollectsAllErrors(t *testing.T) {
	svc, _, _ := newTransferFixture()

	if svc.Submit() {
		t.Fatal("Submit() passed on an empty form")
	}

	errs := svc.ValidationErrors()
	for _, f := range []domain.Field{
		domain.FieldBankName,
		domain.FieldRoutingNumber,
		domain.FieldAccountNumber,
		domain.FieldRecipientName,
		domain.FieldAmount,
	} {
		if errs[f] == "" {
			t.Errorf("missing error for %s", f)
		}
	}
	if errs[domain.FieldNote] != "" {
		t.Errorf("note must never fail validation, got %q", errs[domain.FieldNote])
	}
}

func TestTransferServiceImpl_EditingClearsFieldError(t *testing.T) {
	svc, _, _ := newTransferFixture()
	svc.Submit()
	if svc.ValidationErrors()[domain.FieldBankName] == "" {
		t.Fatal("expected a bank name error")
	}

	svc.SetField(domain.FieldBankName, "F")

	if got := svc.ValidationErrors()[domain.FieldBankName]; got != "" {
		t.Errorf("bank name error survived an edit: %q", got)
	}
	if svc.ValidationErrors()[domain.FieldAmount] == "" {
		t.Error("editing one field must not clear errors on others")
	}
}

func TestTransferServiceImpl_FullFlow(t *testing.T) {
	svc, store, sink := newTransferFixture()
	store.AccountsFunc = func(ctx context.Context, username, token string) ([]domain.Account, error) {
		return []domain.Account{{ID: "primary", Type: "checking", Balance: 30000, TransferFee: 3300}}, nil
	}
	svc.LoadFee(context.Background(), "Neil Harryman", "token_abc")

	fillValidUSForm(svc)
	if !svc.Submit() {
		t.Fatalf("Submit() failed: %v", svc.ValidationErrors())
	}
	if svc.Stage() != domain.StagePinPending {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StagePinPending)
	}

	req := svc.Request()
	if req == nil {
		t.Fatal("Request() is nil after a successful submit")
	}
	if req.RecipientName != "Jane Doe" || req.Amount != 100 {
		t.Errorf("unexpected request: %+v", req)
	}
	id, ok := req.Identifier.(domain.USBankIdentifier)
	if !ok {
		t.Fatalf("Identifier is %T, want USBankIdentifier", req.Identifier)
	}
	if id.RoutingNumber != "021000021" || id.AccountNumber != "12345678" {
		t.Errorf("unexpected identifier: %+v", id)
	}

	svc.SetPin("00-34a")
	if !svc.ConfirmPin(context.Background()) {
		t.Fatalf("ConfirmPin() failed: %q", svc.PinError())
	}
	if svc.Stage() != domain.StageRejected {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StageRejected)
	}

	notice := svc.RejectionNotice()
	want := "Your transaction cannot be processed at this time. A required fee of $3,300 must be paid in order to proceed."
	if notice != want {
		t.Errorf("RejectionNotice() = %q, want %q", notice, want)
	}

	found := false
	for _, typ := range sink.Types() {
		if typ == domain.TransferRejectedEvent {
			found = true
		}
	}
	if !found {
		t.Error("no rejection event published")
	}

	svc.DismissRejection()
	if svc.Stage() != domain.StageEditing {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StageEditing)
	}
	if got := svc.FieldValue(domain.FieldRecipientName); got != "Jane Doe" {
		t.Errorf("fields must survive a dismissed rejection, recipient = %q", got)
	}
}

func TestTransferServiceImpl_WrongPin(t *testing.T) {
	svc, _, _ := newTransferFixture()
	fillValidUSForm(svc)
	svc.Submit()

	svc.SetPin("9999")
	if svc.ConfirmPin(context.Background()) {
		t.Fatal("ConfirmPin() passed with the wrong PIN")
	}
	if svc.Stage() != domain.StagePinPending {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StagePinPending)
	}
	if got := svc.PinError(); got != "Incorrect PIN" {
		t.Errorf("PinError() = %q, want %q", got, "Incorrect PIN")
	}

	// correcting the input clears the error and succeeds
	svc.SetPin(testPin)
	if got := svc.PinError(); got != "" {
		t.Errorf("PinError() = %q after an edit, want empty", got)
	}
	if !svc.ConfirmPin(context.Background()) {
		t.Fatal("ConfirmPin() failed with the corrected PIN")
	}
}

func TestTransferServiceImpl_PinAttemptLimit(t *testing.T) {
	svc, _, _ := newTransferFixture()
	verifier := mocks.NewMockPinVerifier(testPin)
	verifier.VerifyFunc = func(ctx context.Context, secret string) (bool, error) {
		return false, domain.ErrPinMaxAttempts
	}
	svc.pin = verifier

	fillValidUSForm(svc)
	svc.Submit()
	svc.SetPin("9999")
	if svc.ConfirmPin(context.Background()) {
		t.Fatal("ConfirmPin() passed while locked out")
	}
	want := "Too many incorrect attempts. Please try again later."
	if got := svc.PinError(); got != want {
		t.Errorf("PinError() = %q, want %q", got, want)
	}
}

func TestTransferServiceImpl_CancelPin(t *testing.T) {
	svc, _, _ := newTransferFixture()
	fillValidUSForm(svc)
	svc.Submit()
	svc.SetPin("12")

	svc.CancelPin()

	if svc.Stage() != domain.StageEditing {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StageEditing)
	}
	if got := svc.FieldValue(domain.FieldBankName); got != "First National Bank" {
		t.Errorf("fields must survive a cancelled PIN prompt, bank name = %q", got)
	}
	if svc.PinError() != "" {
		t.Errorf("PinError() = %q after cancel, want empty", svc.PinError())
	}
}

func TestTransferServiceImpl_StageGuards(t *testing.T) {
	svc, _, _ := newTransferFixture()

	// Editing: PIN operations are inert
	svc.SetPin("1234")
	if svc.ConfirmPin(context.Background()) {
		t.Error("ConfirmPin() passed outside PinPending")
	}
	svc.CancelPin()
	svc.DismissRejection()
	if svc.Stage() != domain.StageEditing {
		t.Fatalf("Stage() = %v, want %v", svc.Stage(), domain.StageEditing)
	}

	// PinPending: form edits and country switches are inert
	fillValidUSForm(svc)
	svc.Submit()
	svc.SetField(domain.FieldBankName, "Other Bank")
	svc.SelectCountry(domain.CountryCA)
	if got := svc.FieldValue(domain.FieldBankName); got != "First National Bank" {
		t.Errorf("field edited during PinPending: %q", got)
	}
	if svc.Country() != domain.CountryUS {
		t.Errorf("country switched during PinPending: %v", svc.Country())
	}
	if svc.Submit() {
		t.Error("Submit() passed during PinPending")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{3300, "3,300"},
		{3000, "3,000"},
		{1500, "1,500"},
		{100, "100"},
		{0, "0"},
		{1234567, "1,234,567"},
		{100000, "100,000"},
		{2500.5, "2,500.5"},
	}

	for _, tt := range tests {
		if got := formatMoney(tt.input); got != tt.expected {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
