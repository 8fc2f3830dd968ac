package live

import (
	"sync"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// Snapshot is the panel's local copy of server state. Every field is
// server-derived; entries are replaced wholesale per the event policies in
// StateManager, never merged.
type Snapshot struct {
	AuctionState       *models.AuctionState
	Players            []models.Player
	Teams              []models.Team
	Stats              models.Stats
	AutoAuction        models.AutoAuctionStatus
	TeamSummaryShowing bool
}

// StateManager holds the snapshot and applies the per-event reconciliation
// policies. It also owns the optimistic pause override: pause/resume flips a
// local flag immediately, and the next authoritative auction-state push wins.
type StateManager struct {
	mu             sync.RWMutex
	snap           Snapshot
	pausedOverride *bool
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

// Snapshot returns a copy of the current snapshot. Slices are copied so
// callers can iterate without racing subsequent updates.
func (m *StateManager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snap
	if m.snap.AuctionState != nil {
		stateCopy := *m.snap.AuctionState
		snap.AuctionState = &stateCopy
	}
	snap.Players = append([]models.Player(nil), m.snap.Players...)
	snap.Teams = append([]models.Team(nil), m.snap.Teams...)
	return snap
}

// Paused reports the effective paused flag: the local override when one is
// pending, otherwise the server's value.
func (m *StateManager) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pausedOverride != nil {
		return *m.pausedOverride
	}
	return m.snap.AuctionState != nil && m.snap.AuctionState.IsPaused
}

// SetPausedOverride records the optimistic local paused flag. It holds until
// the next authoritative auction-state push clears it.
func (m *StateManager) SetPausedOverride(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pausedOverride = &paused
}

// SetAuctionState replaces the auction-state copy wholesale and drops any
// pending pause override; the server's pushed value is the source of truth.
func (m *StateManager) SetAuctionState(state *models.AuctionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AuctionState = state
	m.pausedOverride = nil
}

// SetHighBid patches only CurrentHighBid on the cached auction state.
// CurrentPlayer and the timer are left untouched. A bid with no auction
// state cached is dropped.
func (m *StateManager) SetHighBid(amount int, teamName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.AuctionState == nil {
		return
	}
	m.snap.AuctionState.CurrentHighBid = &models.HighBid{
		Amount: amount,
		Team:   models.BidTeam{TeamName: teamName},
	}
}

// ReplaceTeams replaces the team list wholesale.
func (m *StateManager) ReplaceTeams(teams []models.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Teams = teams
}

// ApplyRefetch installs the result of a full refetch. All three lists are
// swapped under one lock so readers never observe a partially applied fetch.
func (m *StateManager) ApplyRefetch(players []models.Player, teams []models.Team, stats models.Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Players = players
	m.snap.Teams = teams
	m.snap.Stats = stats
}

// MarkPlayerInAuction patches only the named player's status to IN_AUCTION,
// leaving every other player untouched.
func (m *StateManager) MarkPlayerInAuction(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Players {
		if m.snap.Players[i].ID == playerID {
			m.snap.Players[i].Status = models.StatusInAuction
			return
		}
	}
}

// AutoAuctionStarted marks the run active with its initial queue shape.
// UnsoldCount is preserved from the previous status.
func (m *StateManager) AutoAuctionStarted(queueLength, totalPlayers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction.IsActive = true
	m.snap.AutoAuction.QueueLength = queueLength
	m.snap.AutoAuction.TotalRemaining = totalPlayers
}

// AutoAuctionQueueUpdate replaces the queue-progress fields.
func (m *StateManager) AutoAuctionQueueUpdate(queueLength, unsoldCount, totalRemaining int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction.QueueLength = queueLength
	m.snap.AutoAuction.UnsoldCount = unsoldCount
	m.snap.AutoAuction.TotalRemaining = totalRemaining
}

// AutoAuctionPlayerUnsold bumps only the unsold counter.
func (m *StateManager) AutoAuctionPlayerUnsold(unsoldCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction.UnsoldCount = unsoldCount
}

// AutoAuctionStopped marks the run inactive, keeping the server-reported
// leftover queue so the admin can see what was cut short.
func (m *StateManager) AutoAuctionStopped(remainingInQueue, unsoldCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction = models.AutoAuctionStatus{
		IsActive:       false,
		QueueLength:    remainingInQueue,
		UnsoldCount:    unsoldCount,
		TotalRemaining: remainingInQueue + unsoldCount,
	}
}

// SetAutoAuctionStatus replaces the automatic-auction status wholesale.
func (m *StateManager) SetAutoAuctionStatus(status models.AutoAuctionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction = status
}

// ResetAutoAuction returns the automatic-auction status to its idle default.
func (m *StateManager) ResetAutoAuction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AutoAuction = models.AutoAuctionStatus{}
}

// SetTeamSummaryShowing records whether the projector is on the team summary.
func (m *StateManager) SetTeamSummaryShowing(showing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.TeamSummaryShowing = showing
}
