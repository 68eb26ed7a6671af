package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/model"
)

func TestFormatAmount(t *testing.T) {
	a := model.NewAmount(decimal.RequireFromString("42.5"))

	assert.Equal(t, "42.50 CHF", FormatAmount(a, model.CurrencyCHF))
	assert.Equal(t, "42.50", FormatAmount(a, ""))
	assert.Contains(t, FormatAmount(a, model.CurrencyUSD), "42.50")
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09 14:30", FormatTime(ts, time.UTC))
	assert.Equal(t, "-", FormatTime(time.Time{}, time.UTC))

	zurich := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-03-09 15:30", FormatTime(ts, zurich))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, strings.Repeat("•", 20)+"3000", MaskAccount("CH93 0076 2011 6238 5295 3000"))
	assert.Equal(t, "1234", MaskAccount("1234"))
	assert.Equal(t, "", MaskAccount("  "))
}

func TestTagLabels(t *testing.T) {
	tags := []model.Tag{{ID: "t1", Label: "Travel"}, {ID: "t2"}}
	assert.Equal(t, "Travel, t2", TagLabels(tags))
	assert.Empty(t, TagLabels(nil))
}

func TestClaimDetail(t *testing.T) {
	claim := &model.Claim{
		ID:        "c1",
		Title:     "Team lunch",
		Status:    model.StatusApproved,
		Amount:    model.NewAmount(decimal.RequireFromString("120")),
		Currency:  model.CurrencyCHF,
		ExpenseAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Recipient: "Ada",
		Payout:    model.PayoutInfo{BankName: "PostFinance", IBAN: "CH9300762011623852957"},
		Tags:      []model.Tag{{ID: "t1", Label: "Food"}},
		Photos: []model.Photo{
			{ID: "p1", Key: "uploads/2024-05-01/x_receipt.png"},
			{ID: "p2", Key: "uploads/2024-05-01/y_menu.pdf"},
		},
	}
	urls := map[string]model.DownloadURL{
		"p1": {URL: "https://s3/p1?sig=1"},
		"p2": {},
	}

	out := ClaimDetail(nil, claim, urls, time.UTC)

	assert.Contains(t, out, "Team lunch")
	assert.Contains(t, out, "Approved")
	assert.Contains(t, out, "120.00 CHF")
	assert.Contains(t, out, "2024-05-01 12:00")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "PostFinance")
	assert.Contains(t, out, "2957")
	assert.NotContains(t, out, "CH9300762011623852957")
	assert.Contains(t, out, "Attachments (2)")
	assert.Contains(t, out, "x_receipt.png")
	assert.Contains(t, out, "https://s3/p1?sig=1")
	assert.Contains(t, out, "link unavailable")
	assert.NotContains(t, out, "Description")
}

func TestClaimDetail_Translated(t *testing.T) {
	claim := &model.Claim{
		ID:        "c1",
		Title:     "Repas d'équipe",
		Status:    model.StatusPaid,
		Recipient: "Ada",
		Photos:    []model.Photo{{ID: "p1", Key: "uploads/2024-05-01/x_receipt.png"}},
	}

	out := ClaimDetail(i18n.New(i18n.French), claim, nil, time.UTC)

	assert.Contains(t, out, "Payée")
	assert.Contains(t, out, "Bénéficiaire")
	assert.Contains(t, out, "Pièces jointes (1)")
	assert.Contains(t, out, "lien indisponible")
	assert.NotContains(t, out, "Recipient")
}

func TestStatusBadge(t *testing.T) {
	for _, s := range model.AllStatuses {
		assert.Contains(t, StatusBadge(nil, s), s.Label())
	}
	assert.Contains(t, StatusBadge(i18n.New(i18n.SwissGerman), model.StatusWithdraw), "Zurückgezogen")
}
