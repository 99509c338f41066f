package payment

import (
	"net/url"
	"strings"
	"testing"

	"bookflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{65.00, 6500},
		{65.5, 6550},
		{35, 3500},
		{0.01, 1},
		{12.345, 1235}, // round to nearest rappen
		{12.344, 1234},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToMinorUnits(tc.amount), "amount %v", tc.amount)
	}
}

func testConfig() Config {
	return Config{Instance: "bookflow", AppBaseURL: "https://app.example.ch"}
}

func TestBookingURL(t *testing.T) {
	cfg := testConfig()
	b := models.BookingData{
		BookingID:   "bk-42",
		ServiceName: "Coupe classique",
		Montant:     65.00,
		Phone:       "+41791234567",
	}

	raw := cfg.BookingURL(b)
	assert.True(t, strings.HasPrefix(raw, "https://bookflow.payrexx.com/pay?"), raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "twint", q.Get("psp[0]"))
	assert.Equal(t, "CHF", q.Get("currency"))
	assert.Equal(t, "6500", q.Get("amount"))
	assert.Equal(t, "booking-bk-42", q.Get("referenceId"))
	assert.Equal(t, "Coupe classique", q.Get("purpose"))
	assert.Equal(t, "bk-42", q.Get("fields[custom_field_1][value]"))
	assert.Equal(t, "+41791234567", q.Get("fields[phone][value]"))
	assert.Equal(t, "https://app.example.ch/?screen=tracking", q.Get("successRedirectUrl"))
	assert.Equal(t, "https://app.example.ch/?screen=payment_failed", q.Get("failedRedirectUrl"))
	assert.Equal(t, "https://app.example.ch/?screen=booking", q.Get("cancelRedirectUrl"))
}

func TestBookingURL_RoundsAmount(t *testing.T) {
	cfg := testConfig()
	raw := cfg.BookingURL(models.BookingData{BookingID: "bk-1", Montant: 65.5})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "6550", u.Query().Get("amount"))
}

func TestBookingURL_OmitsEmptyPhone(t *testing.T) {
	cfg := testConfig()
	raw := cfg.BookingURL(models.BookingData{BookingID: "bk-1", Montant: 10})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.False(t, u.Query().Has("fields[phone][value]"))
}

func TestSubscriptionURL(t *testing.T) {
	cfg := testConfig()
	raw := cfg.SubscriptionURL("sub-7")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "twint", q.Get("psp[0]"))
	assert.Equal(t, "CHF", q.Get("currency"))
	assert.Equal(t, "2900", q.Get("amount"), "subscription price is a fixed constant")
	assert.Equal(t, "sub-sub-7", q.Get("referenceId"))
	assert.Equal(t, "sub-7", q.Get("fields[custom_field_1][value]"))
}

func TestBookingURL_Deterministic(t *testing.T) {
	cfg := testConfig()
	b := models.BookingData{BookingID: "bk-9", ServiceName: "Ménage standard", Montant: 65}
	assert.Equal(t, cfg.BookingURL(b), cfg.BookingURL(b))
}
