package domain

import "time"

// GuestType classifies a guest by the configured child-age cutoff.
type GuestType string

const (
	GuestChild GuestType = "Child"
	GuestAdult GuestType = "Adult"
)

type Guest struct {
	Type GuestType `json:"type"`
	Age  int       `json:"age"`
}

// Room is one occupancy group ("Paxes") from the source document.
type Room struct {
	Guests []Guest
}

// Children counts the guests classified as children.
func (r Room) Children() int {
	n := 0
	for _, g := range r.Guests {
		if g.Type == GuestChild {
			n++
		}
	}
	return n
}

// AllChildren reports whether the room has guests and every one is a child.
func (r Room) AllChildren() bool {
	if len(r.Guests) == 0 {
		return false
	}
	return r.Children() == len(r.Guests)
}

// RequestRecord is the normalized form of an availability request after
// extraction and validation. Immutable once built; consumed once by pricing.
type RequestRecord struct {
	Language     string
	OptionsQuota int
	Currency     string
	Nationality  string
	StartDate    time.Time
	EndDate      time.Time
	Rooms        []Room // empty when the document carries no occupancy groups
	Tag          string // opaque correlation marker, never serialized
}
