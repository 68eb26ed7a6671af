// Package claimform validates claim creation input, uploads attachments
// straight to object storage and submits the claim.
package claimform

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/claimflow/internal/model"
)

// ExpenseAtLayout is the local date-time form accepted for the expense time.
const ExpenseAtLayout = "2006-01-02T15:04"

// Form field names used in validation errors.
const (
	FieldTitle     = "title"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldExpenseAt = "expenseAt"
	FieldPayout    = "payout"
	FieldTags      = "tagIds"
)

// ValidationError reports the first invalid field of a form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Input is the raw creation form as entered by the user.
type Input struct {
	Payout      model.PayoutInfo
	Title       string
	Description string
	Amount      string
	Currency    string
	ExpenseAt   string
	Recipient   string
	Password    string
	TagIDs      []string
	Files       []string
}

// Validate checks the form and returns the first problem as a *ValidationError.
// When known is non-nil every tag id must appear in it.
func (in Input) Validate(known []model.Tag) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: FieldTitle, Message: "title is required"}
	}

	amount, err := model.ParseAmount(in.Amount)
	if err != nil || !amount.IsPositive() {
		return &ValidationError{Field: FieldAmount, Message: "amount must be a positive number"}
	}

	if strings.TrimSpace(in.ExpenseAt) == "" {
		return &ValidationError{Field: FieldExpenseAt, Message: "expense time is required"}
	}
	if _, err := ParseExpenseAt(in.ExpenseAt, time.Local); err != nil {
		return &ValidationError{Field: FieldExpenseAt, Message: err.Error()}
	}

	if !in.Payout.HasIdentifier() {
		return &ValidationError{Field: FieldPayout, Message: "enter at least an IBAN or an account number"}
	}

	if _, err := in.currency(); err != nil {
		return &ValidationError{Field: FieldCurrency, Message: err.Error()}
	}

	if known != nil {
		for _, id := range in.TagIDs {
			if !slices.ContainsFunc(known, func(t model.Tag) bool { return t.ID == id }) {
				return &ValidationError{Field: FieldTags, Message: fmt.Sprintf("unknown tag %q", id)}
			}
		}
	}

	return nil
}

func (in Input) currency() (model.Currency, error) {
	if strings.TrimSpace(in.Currency) == "" {
		return model.DefaultCurrency, nil
	}
	return model.ParseCurrency(in.Currency)
}

// ParseExpenseAt accepts RFC 3339, or a local "2006-01-02T15:04" /
// "2006-01-02 15:04" / "2006-01-02" value interpreted in loc.
// The result is in UTC.
func ParseExpenseAt(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{ExpenseAtLayout, "2006-01-02 15:04", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("expense time %q must look like 2024-05-01T14:30", s)
}

// Request converts validated input into the create body. Optional text
// fields are trimmed and omitted when empty.
func (in Input) Request(photoIDs []string) (model.ClaimRequest, error) {
	amount, err := model.ParseAmount(in.Amount)
	if err != nil {
		return model.ClaimRequest{}, err
	}
	currency, err := in.currency()
	if err != nil {
		return model.ClaimRequest{}, err
	}
	expenseAt, err := ParseExpenseAt(in.ExpenseAt, time.Local)
	if err != nil {
		return model.ClaimRequest{}, err
	}

	req := model.ClaimRequest{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Currency:    currency,
		ExpenseAt:   expenseAt,
		Payout:      in.Payout.Trimmed(),
		Recipient:   strings.TrimSpace(in.Recipient),
		Password:    strings.TrimSpace(in.Password),
	}
	if len(in.TagIDs) > 0 {
		req.TagIDs = slices.Clone(in.TagIDs)
	}
	if len(photoIDs) > 0 {
		req.PhotoIDs = slices.Clone(photoIDs)
	}
	return req, nil
}
