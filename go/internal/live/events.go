package live

import (
	"encoding/json"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// ServerEvent is the envelope for every message the auction server pushes
// over the event channel.
type ServerEvent struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EventType names a server-pushed event.
type EventType string

const (
	EventAuthSuccess        EventType = "auth:success"
	EventAuthError          EventType = "auth:error"
	EventAuctionState       EventType = "auction:state"
	EventTeamsStatus        EventType = "teams:status"
	EventPlayerSold         EventType = "player:sold"
	EventAuctionStarted     EventType = "auction:started"
	EventNewBid             EventType = "bid:new"
	EventAutoStarted        EventType = "autoAuction:started"
	EventAutoQueueUpdate    EventType = "autoAuction:queueUpdate"
	EventAutoPlayerUnsold   EventType = "autoAuction:playerUnsold"
	EventAutoUnsoldRound    EventType = "autoAuction:unsoldRound"
	EventAutoCompleted      EventType = "autoAuction:completed"
	EventAutoStopped        EventType = "autoAuction:stopped"
	EventAutoStatus         EventType = "autoAuction:status"
	EventTeamSummaryShowing EventType = "teamSummary:showing"
)

// AuthErrorPayload carries the server's rejection message.
type AuthErrorPayload struct {
	Message string `json:"message"`
}

// AuctionStatePayload is a full auction-state snapshot.
type AuctionStatePayload struct {
	State *models.AuctionState `json:"state"`
}

// TeamsStatusPayload is a full team roster/status snapshot.
type TeamsStatusPayload struct {
	Teams []models.Team `json:"teams"`
}

// AuctionStartedPayload announces the player now under the hammer.
type AuctionStartedPayload struct {
	Player models.Player `json:"player"`
}

// NewBidPayload announces a new leading bid.
type NewBidPayload struct {
	Amount   int    `json:"amount"`
	TeamName string `json:"teamName"`
}

// PlayerSoldPayload announces a completed sale. The panel never patches from
// it; a sale always triggers a full refetch.
type PlayerSoldPayload struct {
	PlayerID  string `json:"playerId"`
	TeamName  string `json:"teamName"`
	SoldPrice int    `json:"soldPrice"`
}

// AutoStartedPayload announces the start of an automatic auction run.
type AutoStartedPayload struct {
	QueueLength  int `json:"queueLength"`
	TotalPlayers int `json:"totalPlayers"`
}

// AutoQueueUpdatePayload reports automatic-auction queue progress.
type AutoQueueUpdatePayload struct {
	QueueLength    int `json:"queueLength"`
	UnsoldCount    int `json:"unsoldCount"`
	TotalRemaining int `json:"totalRemaining"`
}

// AutoPlayerUnsoldPayload reports a player going unsold during the run.
type AutoPlayerUnsoldPayload struct {
	UnsoldCount int `json:"unsoldCount"`
}

// AutoUnsoldRoundPayload announces a batch of unsold players being recycled
// into the queue. Presented to the admin as a blocking acknowledgment.
type AutoUnsoldRoundPayload struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// AutoCompletedPayload announces the end of the automatic auction.
type AutoCompletedPayload struct {
	Message string `json:"message"`
}

// AutoStoppedPayload reports the queue state at the moment the run was
// stopped by the admin.
type AutoStoppedPayload struct {
	RemainingInQueue int `json:"remainingInQueue"`
	UnsoldCount      int `json:"unsoldCount"`
}

// TeamSummaryShowingPayload reports whether the projector view is currently
// showing the team summary.
type TeamSummaryShowingPayload struct {
	IsShowing bool `json:"isShowing"`
}

// ParseEventPayload parses an event's data into the appropriate payload
// struct. Events without a payload (auth:success) and unknown event types
// return nil.
func ParseEventPayload(event ServerEvent) (interface{}, error) {
	switch event.Event {
	case EventAuthError:
		var payload AuthErrorPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAuctionState:
		var payload AuctionStatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTeamsStatus:
		var payload TeamsStatusPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventPlayerSold:
		var payload PlayerSoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAuctionStarted:
		var payload AuctionStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventNewBid:
		var payload NewBidPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoStarted:
		var payload AutoStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoQueueUpdate:
		var payload AutoQueueUpdatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoPlayerUnsold:
		var payload AutoPlayerUnsoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoUnsoldRound:
		var payload AutoUnsoldRoundPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoCompleted:
		var payload AutoCompletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoStopped:
		var payload AutoStoppedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventAutoStatus:
		var payload models.AutoAuctionStatus
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTeamSummaryShowing:
		var payload TeamSummaryShowingPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // auth:success and unknown event types carry no payload
	}
}
