package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"avail_quote/internal/domain"
	"avail_quote/internal/refdata"
)

// SupplierCode is echoed verbatim as hotelCodeSupplier on every quote.
const SupplierCode = "39971881"

// Pricer turns a validated request into a PriceQuote: markup on the fixed net
// price, rounded to cents, then converted via the exchange rate.
type Pricer struct {
	ref   *refdata.Table
	rates domain.RateSource
	ids   domain.IDGenerator
}

func NewPricer(ref *refdata.Table, rates domain.RateSource, ids domain.IDGenerator) *Pricer {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Pricer{ref: ref, rates: rates, ids: ids}
}

// Quote prices one request. The rounding happens before conversion, matching
// the contract: selling = round(net + net*markup/100, 2) * rate.
func (p *Pricer) Quote(ctx context.Context, currency, nationality string) (domain.PriceQuote, error) {
	rate, err := p.rates.Rate(ctx, p.ref.BaseCurrency, currency)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	net := decimal.NewFromFloat(p.ref.NetPrice)
	markup := decimal.NewFromFloat(p.ref.MarkupPct)
	base := net.Add(net.Mul(markup).Div(decimal.NewFromInt(100))).Round(2)
	selling := base.Mul(decimal.NewFromFloat(rate))

	return domain.PriceQuote{
		ID:           p.ids.NewID(),
		SupplierCode: SupplierCode,
		Market:       nationality,
		Net:          p.ref.NetPrice,
		SellingPrice: selling.InexactFloat64(),
		Currency:     currency,
		Markup:       p.ref.MarkupPct,
		ExchangeRate: rate,
	}, nil
}

// quoteIDs generates identifiers of the form A#<timestamp>-<8 random chars>.
// Practically unique across calls; collisions are neither detected nor retried.
type quoteIDs struct {
	now func() time.Time
}

func NewIDGenerator() domain.IDGenerator { return quoteIDs{now: time.Now} }

func (g quoteIDs) NewID() string {
	return fmt.Sprintf("A#%s-%s", g.now().Format("20060102150405"), uuid.NewString()[:8])
}
