package app

import (
	"strconv"

	"github.com/beevik/etree"

	"avail_quote/internal/domain"
)

// Fixed occupancy-rule messages. Exact strings are part of the contract.
const (
	msgTooManyChildren    = "Exceeded maximum allowed children per room"
	msgTooManyGuests      = "Exceeded maximum allowed guests per room"
	msgUnaccompaniedChild = "A child must have at least one accompanying adult in the same room"
)

// extractRooms builds a Room per occupancy group and validates each one as it
// is built. The first invalid room aborts with no partial result; a document
// with no occupancy groups yields a nil slice, which is not an error.
func (p *Processor) extractRooms(doc *etree.Document) ([]domain.Room, error) {
	var rooms []domain.Room
	for _, group := range doc.FindElements("//Paxes") {
		var room domain.Room
		for _, pax := range group.FindElements(".//Pax") {
			age, _ := strconv.Atoi(pax.SelectAttrValue("age", "0"))
			room.Guests = append(room.Guests, classifyGuest(age, p.ref.ChildAgeCutoff))
		}
		if err := p.validateRoom(room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func classifyGuest(age, cutoff int) domain.Guest {
	t := domain.GuestAdult
	if age <= cutoff {
		t = domain.GuestChild
	}
	return domain.Guest{Type: t, Age: age}
}

func (p *Processor) validateRoom(room domain.Room) error {
	if room.Children() > p.ref.MaxChildrenPerRoom {
		return domain.Errf(domain.KindOccupancy, "Paxes", msgTooManyChildren)
	}
	if len(room.Guests) > p.ref.MaxGuestsPerRoom {
		return domain.Errf(domain.KindOccupancy, "Paxes", msgTooManyGuests)
	}
	if room.AllChildren() {
		return domain.Errf(domain.KindOccupancy, "Paxes", msgUnaccompaniedChild)
	}
	return nil
}
