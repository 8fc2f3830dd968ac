package live

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

func TestParseEventPayloadAuctionState(t *testing.T) {
	raw := []byte(`{"state":{"isActive":true,"isPaused":false,"currentPlayer":{"_id":"p1","name":"Rohit"},"currentHighBid":{"amount":50,"team":{"teamName":"Warriors"}},"timeRemaining":22}}`)

	payload, err := ParseEventPayload(ServerEvent{Event: EventAuctionState, Data: raw})
	require.NoError(t, err)

	p, ok := payload.(AuctionStatePayload)
	require.True(t, ok)
	require.True(t, p.State.IsActive)
	require.Equal(t, "p1", p.State.CurrentPlayer.ID)
	require.Equal(t, 50, p.State.CurrentHighBid.Amount)
	require.Equal(t, "Warriors", p.State.CurrentHighBid.Team.TeamName)
}

func TestParseEventPayloadNewBid(t *testing.T) {
	payload, err := ParseEventPayload(ServerEvent{
		Event: EventNewBid,
		Data:  []byte(`{"amount":75,"teamName":"Titans"}`),
	})
	require.NoError(t, err)
	require.Equal(t, NewBidPayload{Amount: 75, TeamName: "Titans"}, payload)
}

func TestParseEventPayloadAutoStatus(t *testing.T) {
	payload, err := ParseEventPayload(ServerEvent{
		Event: EventAutoStatus,
		Data:  []byte(`{"isActive":true,"queueLength":7,"unsoldCount":2,"totalRemaining":9}`),
	})
	require.NoError(t, err)
	require.Equal(t, models.AutoAuctionStatus{
		IsActive:       true,
		QueueLength:    7,
		UnsoldCount:    2,
		TotalRemaining: 9,
	}, payload)
}

func TestParseEventPayloadAuthSuccessHasNone(t *testing.T) {
	payload, err := ParseEventPayload(ServerEvent{Event: EventAuthSuccess})
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestParseEventPayloadUnknownEvent(t *testing.T) {
	payload, err := ParseEventPayload(ServerEvent{Event: "projector:theme", Data: []byte(`{}`)})
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestParseEventPayloadMalformed(t *testing.T) {
	_, err := ParseEventPayload(ServerEvent{Event: EventNewBid, Data: []byte(`{"amount":"high"}`)})
	require.Error(t, err)
}

func TestCommandEnvelopeShape(t *testing.T) {
	data, err := json.Marshal(Command{ID: "c1", Event: CmdStartAuction, Data: playerPayload{PlayerID: "p9"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"c1","event":"admin:startAuction","data":{"playerId":"p9"}}`, string(data))
}

func TestCommandEnvelopeOmitsEmptyData(t *testing.T) {
	data, err := json.Marshal(Command{ID: "c2", Event: CmdPauseAuction})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"c2","event":"admin:pauseAuction"}`, string(data))
}
