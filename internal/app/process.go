package app

import (
	"context"
	"time"

	"github.com/beevik/etree"

	"avail_quote/internal/domain"
	"avail_quote/internal/refdata"
)

// requestTag marks every parsed request; echoed on the record, never
// serialized into responses.
const requestTag = "OCG_SECRET"

// Processor runs the whole pipeline for one availability request:
// extraction, occupancy, basic fields, dates, pricing. Stateless apart from
// the injected reference table; safe for concurrent use.
type Processor struct {
	ref    *refdata.Table
	pricer *Pricer
	now    func() time.Time
}

// NewProcessor wires the pipeline. A nil now defaults to time.Now; tests pass
// a fixed clock to pin the date-window checks.
func NewProcessor(ref *refdata.Table, rates domain.RateSource, ids domain.IDGenerator, now func() time.Time) *Processor {
	if now == nil {
		now = time.Now
	}
	return &Processor{ref: ref, pricer: NewPricer(ref, rates, ids), now: now}
}

// ParseRequest extracts and validates one request without pricing it. Stage
// order is fixed and every failure is terminal: fields, then rooms, then
// basic-field membership, then dates.
func (p *Processor) ParseRequest(xml []byte) (domain.RequestRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xml); err != nil {
		return domain.RequestRecord{}, domain.Errf(domain.KindStructural, "",
			"malformed XML document: %v", err)
	}

	raw, err := p.extractFields(doc)
	if err != nil {
		return domain.RequestRecord{}, err
	}
	rooms, err := p.extractRooms(doc)
	if err != nil {
		return domain.RequestRecord{}, err
	}
	if err := p.validateBasicFields(raw); err != nil {
		return domain.RequestRecord{}, err
	}
	start, end, err := p.validateDates(raw.startDate, raw.endDate)
	if err != nil {
		return domain.RequestRecord{}, err
	}

	return domain.RequestRecord{
		Language:     raw.language,
		OptionsQuota: raw.optionsQuota,
		Currency:     raw.currency,
		Nationality:  raw.nationality,
		StartDate:    start,
		EndDate:      end,
		Rooms:        rooms,
		Tag:          requestTag,
	}, nil
}

// Process validates and prices one request, returning the response array for
// the serializer. Always one element on success.
func (p *Processor) Process(ctx context.Context, xml []byte) ([]domain.QuoteResponse, error) {
	rec, err := p.ParseRequest(xml)
	if err != nil {
		return nil, err
	}
	q, err := p.pricer.Quote(ctx, rec.Currency, rec.Nationality)
	if err != nil {
		return nil, err
	}
	return []domain.QuoteResponse{assembleResponse(rec, q)}, nil
}

func assembleResponse(rec domain.RequestRecord, q domain.PriceQuote) domain.QuoteResponse {
	resp := domain.QuoteResponse{
		ID:                q.ID,
		HotelCodeSupplier: q.SupplierCode,
		Market:            q.Market,
		Price: domain.Price{
			MinimumSellingPrice: nil,
			Currency:            q.Currency,
			Net:                 q.Net,
			SellingPrice:        q.SellingPrice,
			SellingCurrency:     q.Currency,
			Markup:              q.Markup,
			ExchangeRate:        q.ExchangeRate,
		},
	}
	for _, room := range rec.Rooms {
		resp.Rooms = append(resp.Rooms, room.Guests)
	}
	return resp
}
