package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaimStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ClaimStatus
	}{
		{"SUBMITTED", StatusSubmitted},
		{"paid", StatusPaid},
		{" PAYMENT_FAILED ", StatusPaymentFailed},
		{"WITHDRAW", StatusWithdraw},
		{"ARCHIVED", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClaimStatus(tt.input))
		})
	}
}

func TestClaim_UnmarshalUnknownStatus(t *testing.T) {
	raw := `{"id":"c1","title":"Taxi","status":"ON_HOLD","amount":42.5,"currency":"CHF",
		"expenseAt":"2024-05-01T10:00:00Z","createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-01T10:00:00Z",
		"payout":{"iban":"CH0000000000"}}`

	var c Claim
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, StatusUnknown, c.Status)
	assert.Equal(t, "42.5", c.Amount.String())
	assert.Equal(t, "CH0000000000", c.Payout.IBAN)
}

func TestAmount_JSONNumber(t *testing.T) {
	a, err := ParseAmount("42.50")
	require.NoError(t, err)

	data, err := json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{a})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":42.5}`, string(data))

	var quoted Amount
	require.NoError(t, json.Unmarshal([]byte(`"13.05"`), &quoted))
	assert.Equal(t, "13.05 USD", quoted.Format(CurrencyUSD))
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("eur")
	require.NoError(t, err)
	assert.Equal(t, CurrencyEUR, c)

	_, err = ParseCurrency("JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = ParseCurrency("not-a-code")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestDownloadURL_Stale(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	buffer := 30 * time.Second

	tests := []struct {
		name string
		url  DownloadURL
		want bool
	}{
		{"missing url", DownloadURL{}, true},
		{"no expiry stated", DownloadURL{URL: "https://s3/x"}, false},
		{"expires in 10 minutes", DownloadURL{URL: "https://s3/x", ExpiresAt: now.Add(10 * time.Minute)}, false},
		{"expires in 29 seconds", DownloadURL{URL: "https://s3/x", ExpiresAt: now.Add(29 * time.Second)}, true},
		{"already expired", DownloadURL{URL: "https://s3/x", ExpiresAt: now.Add(-time.Minute)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.url.Stale(now, buffer))
		})
	}
}

func TestUploadHeader_Unmarshal(t *testing.T) {
	var p PresignedUpload
	raw := `{"url":"http://minio/b/k","headers":{"Host":["localhost:9000"],"Content-Type":"image/png","X-Amz-Meta":["a","b"]}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, []string{"localhost:9000"}, p.Headers["Host"])
	assert.Equal(t, "image/png", p.Headers.Joined("Content-Type"))
	assert.Equal(t, "a, b", p.Headers.Joined("X-Amz-Meta"))
}

func TestPayoutInfo_HasIdentifier(t *testing.T) {
	assert.False(t, PayoutInfo{BankName: "UBS"}.HasIdentifier())
	assert.False(t, PayoutInfo{IBAN: "   "}.HasIdentifier())
	assert.True(t, PayoutInfo{IBAN: "CH00"}.HasIdentifier())
	assert.True(t, PayoutInfo{AccountNumber: "12345"}.HasIdentifier())
}
