package models

// BidTeam is the slim team reference carried inside a high bid.
type BidTeam struct {
	TeamName string `json:"teamName"`
}

// HighBid is the current leading bid on the player under the hammer.
type HighBid struct {
	Amount int     `json:"amount"`
	Team   BidTeam `json:"team"`
}

// AuctionState is the server's view of the manual auction. The admin panel
// holds a read-mostly copy that is replaced wholesale on every push, with the
// single exception of CurrentHighBid which bid:new events patch in place.
type AuctionState struct {
	IsActive       bool     `json:"isActive"`
	IsPaused       bool     `json:"isPaused"`
	CurrentPlayer  *Player  `json:"currentPlayer"`
	CurrentHighBid *HighBid `json:"currentHighBid"`
	TimeRemaining  int      `json:"timeRemaining"`
}

// AutoAuctionStatus is a snapshot of server-side queue progress during an
// automatic auction. Queue membership is never computed client-side.
type AutoAuctionStatus struct {
	IsActive       bool `json:"isActive"`
	QueueLength    int  `json:"queueLength"`
	UnsoldCount    int  `json:"unsoldCount"`
	TotalRemaining int  `json:"totalRemaining"`
}

// Stats is the aggregate player breakdown shown in the stats bar. It is
// fetched from the server, never derived locally.
type Stats struct {
	TotalPlayers  int `json:"totalPlayers"`
	SoldPlayers   int `json:"soldPlayers"`
	UnsoldPlayers int `json:"unsoldPlayers"`
}
