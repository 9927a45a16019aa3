package domain

// Expert models a human responder with an expertise tag set, an availability
// flag, and a load counter.
//
// CurrentLoad only ever increases: closing or reassigning a ticket does not
// release load. That asymmetry is an accepted limitation of the routing model.
type Expert struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Contact      string   `json:"contact"`
	Expertise    []string `json:"expertise"`
	Availability bool     `json:"availability"`
	CurrentLoad  int      `json:"current_load"`
}
