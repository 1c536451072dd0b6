package app_test

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"avail_quote/internal/app"
	"avail_quote/internal/domain"
	"avail_quote/internal/refdata"
)

// Fixed clock for every pipeline test: "today" is 01/09/2026.
func testClock() time.Time {
	return time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
}

func newTestProcessor() *app.Processor {
	table := refdata.Default()
	rates := app.NewRateService(table, nil, nil, 0)
	return app.NewProcessor(table, rates, nil, testClock)
}

// ---- request builder ----

type reqOpts struct {
	lang        string
	quota       string // "" omits the element
	currency    string
	nationality string
	start, end  string
	rooms       [][]int
	noParam     bool
	dropAttr    string
}

// validOpts is a request that passes every stage against the fixed clock:
// start in 3 days, 3-night stay, one room with an adult and a child.
func validOpts() reqOpts {
	return reqOpts{
		lang: "en", quota: "20", currency: "USD", nationality: "US",
		start: "04/09/2026", end: "07/09/2026",
		rooms: [][]int{{30, 5}},
	}
}

func buildRequest(o reqOpts) []byte {
	var b strings.Builder
	b.WriteString("<AvailRQ>\n")
	if o.lang != "" {
		fmt.Fprintf(&b, "  <source><languageCode>%s</languageCode></source>\n", o.lang)
	}
	if o.quota != "" {
		fmt.Fprintf(&b, "  <optionsQuota>%s</optionsQuota>\n", o.quota)
	}
	if !o.noParam {
		b.WriteString("  <Configuration><Parameters><Parameter")
		for _, attr := range [][2]string{{"password", "testpass"}, {"username", "testuser"}, {"CompanyID", "123456"}} {
			if attr[0] == o.dropAttr {
				continue
			}
			fmt.Fprintf(&b, " %s=%q", attr[0], attr[1])
		}
		b.WriteString("/></Parameters></Configuration>\n")
	}
	if o.start != "" {
		fmt.Fprintf(&b, "  <StartDate>%s</StartDate>\n", o.start)
	}
	if o.end != "" {
		fmt.Fprintf(&b, "  <EndDate>%s</EndDate>\n", o.end)
	}
	if o.currency != "" {
		fmt.Fprintf(&b, "  <Currency>%s</Currency>\n", o.currency)
	}
	if o.nationality != "" {
		fmt.Fprintf(&b, "  <Nationality>%s</Nationality>\n", o.nationality)
	}
	for _, room := range o.rooms {
		b.WriteString("  <Paxes>\n")
		for _, age := range room {
			fmt.Fprintf(&b, "    <Pax age=\"%d\"/>\n", age)
		}
		b.WriteString("  </Paxes>\n")
	}
	b.WriteString("</AvailRQ>")
	return []byte(b.String())
}

func wantErr(t *testing.T, err error, kind domain.ErrorKind, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", msg)
	}
	if got := domain.KindOf(err); got != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, got, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Error())
	}
}

// ---- tests ----

func TestProcess_ValidRequest(t *testing.T) {
	p := newTestProcessor()
	out, err := p.Process(context.Background(), buildRequest(validOpts()))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one response element, got %d", len(out))
	}
	resp := out[0]
	if resp.HotelCodeSupplier != "39971881" {
		t.Fatalf("unexpected supplier code: %s", resp.HotelCodeSupplier)
	}
	if resp.Market != "US" {
		t.Fatalf("market should echo nationality, got %s", resp.Market)
	}
	if resp.Price.Currency != "USD" || resp.Price.SellingCurrency != "USD" {
		t.Fatalf("currency should pass through, got %+v", resp.Price)
	}
	// USD is the base currency and has no table entry: identity rate.
	if resp.Price.ExchangeRate != 1.0 {
		t.Fatalf("expected rate 1.0, got %v", resp.Price.ExchangeRate)
	}
	// net 100, markup 10% -> 110.00
	if resp.Price.Net != 100.0 || resp.Price.SellingPrice != 110.0 {
		t.Fatalf("unexpected pricing: %+v", resp.Price)
	}
	if resp.Price.MinimumSellingPrice != nil {
		t.Fatalf("minimumSellingPrice must be null")
	}
	if len(resp.Rooms) != 1 || len(resp.Rooms[0]) != 2 {
		t.Fatalf("unexpected rooms: %+v", resp.Rooms)
	}
	if resp.Rooms[0][1].Type != domain.GuestChild || resp.Rooms[0][1].Age != 5 {
		t.Fatalf("age 5 should classify as Child: %+v", resp.Rooms[0][1])
	}
}

func TestProcess_CurrencyConversion(t *testing.T) {
	p := newTestProcessor()
	o := validOpts()
	o.currency = "EUR"
	out, err := p.Process(context.Background(), buildRequest(o))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	price := out[0].Price
	if price.ExchangeRate != 0.92 {
		t.Fatalf("expected USD->EUR rate 0.92, got %v", price.ExchangeRate)
	}
	// round(100 + 10, 2) * 0.92
	if price.SellingPrice != 101.2 {
		t.Fatalf("expected selling price 101.2, got %v", price.SellingPrice)
	}
}

func TestProcess_MalformedXML(t *testing.T) {
	p := newTestProcessor()
	_, err := p.Process(context.Background(), []byte("<AvailRQ><oops"))
	if domain.KindOf(err) != domain.KindStructural {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestParseRequest_Defaults(t *testing.T) {
	p := newTestProcessor()
	o := validOpts()
	o.lang, o.quota, o.nationality = "", "", ""
	rec, err := p.ParseRequest(buildRequest(o))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rec.Language != "en" {
		t.Fatalf("language should default to en, got %s", rec.Language)
	}
	if rec.OptionsQuota != 20 {
		t.Fatalf("optionsQuota should default to 20, got %d", rec.OptionsQuota)
	}
	if rec.Nationality != "US" {
		t.Fatalf("nationality should default to US, got %s", rec.Nationality)
	}
}

func TestParseRequest_OptionsQuota(t *testing.T) {
	p := newTestProcessor()

	o := validOpts()
	o.quota = "30"
	rec, err := p.ParseRequest(buildRequest(o))
	if err != nil || rec.OptionsQuota != 30 {
		t.Fatalf("quota 30 should pass through, got %d err %v", rec.OptionsQuota, err)
	}

	o.quota = "50"
	if _, err := p.ParseRequest(buildRequest(o)); err != nil {
		t.Fatalf("quota 50 is the inclusive maximum: %v", err)
	}

	o.quota = "60"
	_, err = p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindInvalidValue, "optionsQuota cannot be greater than 50")
}

func TestParseRequest_LanguageValidation(t *testing.T) {
	p := newTestProcessor()
	for _, lang := range []string{"en", "fr", "de", "es"} {
		o := validOpts()
		o.lang = lang
		rec, err := p.ParseRequest(buildRequest(o))
		if err != nil || rec.Language != lang {
			t.Fatalf("language %s should be accepted, got %v", lang, err)
		}
	}

	o := validOpts()
	o.lang = "xx"
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindInvalidValue, "Invalid language: xx")
}

func TestParseRequest_CurrencyValidation(t *testing.T) {
	p := newTestProcessor()
	for _, cur := range []string{"EUR", "USD", "GBP"} {
		o := validOpts()
		o.currency = cur
		rec, err := p.ParseRequest(buildRequest(o))
		if err != nil || rec.Currency != cur {
			t.Fatalf("currency %s should be accepted, got %v", cur, err)
		}
	}

	o := validOpts()
	o.currency = "XYZ"
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindInvalidValue, "Invalid currency: XYZ")
}

func TestParseRequest_NationalityValidation(t *testing.T) {
	p := newTestProcessor()
	o := validOpts()
	o.nationality = "XX"
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindInvalidValue, "Invalid nationality: XX")
}

func TestParseRequest_Credentials(t *testing.T) {
	p := newTestProcessor()

	o := validOpts()
	o.noParam = true
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindMissingField, "Missing required <Parameter> element")

	for _, attr := range []string{"password", "username", "CompanyID"} {
		o := validOpts()
		o.dropAttr = attr
		_, err := p.ParseRequest(buildRequest(o))
		wantErr(t, err, domain.KindMissingField, "Missing required parameter: "+attr)
	}
}

func TestParseRequest_Occupancy(t *testing.T) {
	p := newTestProcessor()

	cases := []struct {
		name string
		ages []int
		msg  string
	}{
		{"unaccompanied child", []int{4}, "A child must have at least one accompanying adult in the same room"},
		{"too many children", []int{3, 4, 5, 25}, "Exceeded maximum allowed children per room"},
		{"too many guests", []int{30, 25, 20, 15, 10}, "Exceeded maximum allowed guests per room"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validOpts()
			o.rooms = [][]int{tc.ages}
			_, err := p.ParseRequest(buildRequest(o))
			wantErr(t, err, domain.KindOccupancy, tc.msg)
		})
	}
}

func TestParseRequest_FirstInvalidRoomWins(t *testing.T) {
	p := newTestProcessor()
	o := validOpts()
	// first room breaks the guest limit, second the child rule; the first
	// room's message must surface
	o.rooms = [][]int{{30, 25, 20, 15, 10}, {4}}
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindOccupancy, "Exceeded maximum allowed guests per room")
}

func TestProcess_NoRoomsSection(t *testing.T) {
	p := newTestProcessor()
	o := validOpts()
	o.rooms = nil
	out, err := p.Process(context.Background(), buildRequest(o))
	if err != nil {
		t.Fatalf("rooms section is optional: %v", err)
	}
	if out[0].Rooms != nil {
		t.Fatalf("rooms key must be absent without occupancy groups: %+v", out[0].Rooms)
	}
}

func TestParseRequest_DateWindow(t *testing.T) {
	p := newTestProcessor()

	o := validOpts()
	o.start = "01/09/2026" // today
	_, err := p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindDateWindow, "StartDate must be at least 2 days from today")

	// boundary: exactly 2 days out is accepted
	o = validOpts()
	o.start, o.end = "03/09/2026", "06/09/2026"
	if _, err := p.ParseRequest(buildRequest(o)); err != nil {
		t.Fatalf("today+2 must be accepted: %v", err)
	}

	// 2 nights is too short, 3 is the inclusive minimum
	o = validOpts()
	o.start, o.end = "04/09/2026", "06/09/2026"
	_, err = p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindDateWindow, "Stay duration must be at least 3 nights")

	o = validOpts()
	o.start, o.end = "04/09/2026", "07/09/2026"
	if _, err := p.ParseRequest(buildRequest(o)); err != nil {
		t.Fatalf("3-night stay must be accepted: %v", err)
	}
}

func TestParseRequest_DateFormat(t *testing.T) {
	p := newTestProcessor()

	o := validOpts()
	o.start = "2026-09-04"
	_, err := p.ParseRequest(buildRequest(o))
	if domain.KindOf(err) != domain.KindStructural {
		t.Fatalf("expected structural error for bad date format, got %v", err)
	}

	o = validOpts()
	o.start = ""
	_, err = p.ParseRequest(buildRequest(o))
	wantErr(t, err, domain.KindMissingField, "Missing required <StartDate> element")
}

func TestParseRequest_Idempotent(t *testing.T) {
	p := newTestProcessor()
	xml := buildRequest(validOpts())

	first, err := p.ParseRequest(xml)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	second, err := p.ParseRequest(xml)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same document twice diverged:\n%+v\n%+v", first, second)
	}
}
