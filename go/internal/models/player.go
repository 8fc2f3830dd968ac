package models

// PlayerCategory is the playing role a player registers under.
type PlayerCategory string

const (
	CategoryBatsman      PlayerCategory = "Batsman"
	CategoryBowler       PlayerCategory = "Bowler"
	CategoryAllRounder   PlayerCategory = "All-Rounder"
	CategoryWicketKeeper PlayerCategory = "Wicket-Keeper"
)

// PlayerStatus tracks where a player is in the auction lifecycle.
type PlayerStatus string

const (
	StatusUnsold    PlayerStatus = "UNSOLD"
	StatusInAuction PlayerStatus = "IN_AUCTION"
	StatusSold      PlayerStatus = "SOLD"
)

// Availability marks whether a player can be put up for bidding at all.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// Player represents a registered auction player. The server is authoritative;
// the admin panel only ever holds a cached copy.
type Player struct {
	ID           string         `json:"_id"`
	Name         string         `json:"name"`
	Category     PlayerCategory `json:"category"`
	BasePrice    int            `json:"basePrice"`
	Status       PlayerStatus   `json:"status"`
	Availability Availability   `json:"availability,omitempty"`
	Photo        string         `json:"photo,omitempty"`
	SoldTo       *Team          `json:"soldTo,omitempty"`
	SoldPrice    int            `json:"soldPrice,omitempty"`
}
