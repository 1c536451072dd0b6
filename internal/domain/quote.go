package domain

// PriceQuote is the priced result for one validated request. Stateless and
// never persisted; the ID is unique per call, not deterministic.
type PriceQuote struct {
	ID           string
	SupplierCode string
	Market       string
	Net          float64
	SellingPrice float64
	Currency     string
	Markup       float64
	ExchangeRate float64
}

// Price is the wire shape of the price block in a quote response.
type Price struct {
	MinimumSellingPrice *float64 `json:"minimumSellingPrice"`
	Currency            string   `json:"currency"`
	Net                 float64  `json:"net"`
	SellingPrice        float64  `json:"selling_price"`
	SellingCurrency     string   `json:"selling_currency"`
	Markup              float64  `json:"markup"`
	ExchangeRate        float64  `json:"exchange_rate"`
}

// QuoteResponse is one element of the response array handed to the serializer.
// Rooms is present only when the request carried occupancy groups.
type QuoteResponse struct {
	ID                string    `json:"id"`
	HotelCodeSupplier string    `json:"hotelCodeSupplier"`
	Market            string    `json:"market"`
	Price             Price     `json:"price"`
	Rooms             [][]Guest `json:"rooms,omitempty"`
}
