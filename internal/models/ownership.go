package models

// PassengerOwned resolves the passenger who owns a resource. Each of
// the three owned types implements it directly: no runtime attribute
// probing, the set is closed at compile time. Ticket and Payment
// resolve transitively through their booking, which must be loaded.
type PassengerOwned interface {
	OwnerPassengerID() uint
}

func (b Booking) OwnerPassengerID() uint { return b.PassengerID }

func (t Ticket) OwnerPassengerID() uint { return t.Booking.PassengerID }

func (p Payment) OwnerPassengerID() uint { return p.Booking.PassengerID }

// OwnerConductorID marks the conductor who operates a trip for write
// purposes. Reads on trips are open to any authenticated caller.
func (t Trip) OwnerConductorID() uint { return t.ConductorID }
