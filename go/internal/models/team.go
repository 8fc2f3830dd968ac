package models

// Team represents a bidding team and its captain credentials.
// Pin is only ever populated on create/generate responses; list endpoints
// never return it.
type Team struct {
	ID                string `json:"_id"`
	TeamName          string `json:"teamName"`
	CaptainName       string `json:"captainName"`
	TeamID            string `json:"teamId"`
	Pin               string `json:"pin,omitempty"`
	RemainingPoints   int    `json:"remainingPoints"`
	RosterSlotsFilled int    `json:"rosterSlotsFilled"`
	IsOnline          bool   `json:"isOnline"`
	Logo              string `json:"logo,omitempty"`
}
