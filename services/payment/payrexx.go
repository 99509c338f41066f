// Package payment builds Payrexx payment-page URLs. No network call happens
// here: the client is redirected to the returned URL and comes back through
// one of the redirect targets. The only observable contract on return is
// which in-app screen the redirect lands on.
package payment

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"bookflow/models"
)

const (
	// Currency is fixed; the marketplace only bills in Swiss francs.
	Currency = "CHF"
	// PSP is the single payment scheme offered on the hosted page.
	PSP = "twint"
	// SubscriptionAmountRappen is the fixed monthly pro subscription price
	// in minor units (CHF 29.00).
	SubscriptionAmountRappen int64 = 2900
)

// ToMinorUnits converts a decimal CHF amount to integer rappen, rounding
// to the nearest unit (65.5 CHF -> 6550).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Config identifies the Payrexx instance and where its redirects land.
type Config struct {
	Instance   string
	AppBaseURL string
}

func (c Config) payURL(q url.Values) string {
	return fmt.Sprintf("https://%s.payrexx.com/pay?%s", c.Instance, q.Encode())
}

func (c Config) redirect(screen models.Screen) string {
	return c.AppBaseURL + "/?screen=" + string(screen)
}

// BookingURL builds the hosted payment page URL for one booking. The
// reference id is derived from the booking id and the booking id also rides
// along as a custom field for provider-side reconciliation.
func (c Config) BookingURL(b models.BookingData) string {
	q := url.Values{}
	q.Set("psp[0]", PSP)
	q.Set("referenceId", "booking-"+b.BookingID)
	q.Set("purpose", b.ServiceName)
	q.Set("amount", strconv.FormatInt(ToMinorUnits(b.Montant), 10))
	q.Set("currency", Currency)
	if b.Phone != "" {
		q.Set("fields[phone][value]", b.Phone)
	}
	q.Set("successRedirectUrl", c.redirect(models.ScreenTracking))
	q.Set("failedRedirectUrl", c.redirect(models.ScreenPaymentFailed))
	q.Set("cancelRedirectUrl", c.redirect(models.ScreenBooking))
	q.Set("fields[custom_field_1][value]", b.BookingID)
	return c.payURL(q)
}

// SubscriptionURL builds the hosted payment page URL for the fixed-price
// pro subscription.
func (c Config) SubscriptionURL(subscriptionID string) string {
	q := url.Values{}
	q.Set("psp[0]", PSP)
	q.Set("referenceId", "sub-"+subscriptionID)
	q.Set("purpose", "Abonnement Pro")
	q.Set("amount", strconv.FormatInt(SubscriptionAmountRappen, 10))
	q.Set("currency", Currency)
	q.Set("successRedirectUrl", c.redirect(models.ScreenProDashboard))
	q.Set("failedRedirectUrl", c.redirect(models.ScreenPaymentFailed))
	q.Set("cancelRedirectUrl", c.redirect(models.ScreenProDashboard))
	q.Set("fields[custom_field_1][value]", subscriptionID)
	return c.payURL(q)
}
