package live

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/session"
)

const dialTimeout = 10 * time.Second

// ConnState is the connection lifecycle state of the live client.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	// StateConnected means the transport is up but the session is not
	// authenticated yet.
	StateConnected
	StateAuthenticated
	StateReconnecting
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// API is the read surface the client refetches authoritative state from.
type API interface {
	GetPlayers(ctx context.Context) ([]models.Player, error)
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetStats(ctx context.Context) (models.Stats, error)
}

// Options configures the live client.
type Options struct {
	SocketURL string

	ReconnectDelay    time.Duration
	ReconnectAttempts int
	ResyncInterval    time.Duration
	UndoRefetchDelay  time.Duration
	RefetchTimeout    time.Duration

	// Clock drives the resync ticker, reconnect backoff and delayed
	// refetches. Tests inject a fake clock.
	Clock clockwork.Clock

	// Confirmer gates destructive commands. A nil Confirmer auto-confirms.
	Confirmer Confirmer
	// Notifier surfaces blocking server messages. A nil Notifier logs them.
	Notifier Notifier
}

// Client owns the live connection to the auction server: it authenticates
// the admin session, reconciles pushed events into the StateManager, corrects
// drift with periodic full refetches, and sends admin commands.
type Client struct {
	api      API
	sessions session.Store
	state    *StateManager
	opts     Options
	clock    clockwork.Clock

	mu            sync.Mutex
	tr            *transport
	connState     ConnState
	password      string
	everConnected bool

	refetchGroup singleflight.Group
	done         chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
}

// New creates a live client. Zero option fields get production defaults.
func New(api API, sessions session.Store, state *StateManager, opts Options) *Client {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = time.Second
	}
	if opts.ReconnectAttempts <= 0 {
		opts.ReconnectAttempts = 10
	}
	if opts.ResyncInterval <= 0 {
		opts.ResyncInterval = 10 * time.Second
	}
	if opts.UndoRefetchDelay <= 0 {
		opts.UndoRefetchDelay = 500 * time.Millisecond
	}
	if opts.RefetchTimeout <= 0 {
		opts.RefetchTimeout = 15 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(message string) {
			log.Info().Msg(message)
		})
	}

	return &Client{
		api:      api,
		sessions: sessions,
		state:    state,
		opts:     opts,
		clock:    opts.Clock,
		done:     make(chan struct{}),
	}
}

// Start launches the connection loop and the periodic resync loop. Both run
// until Close.
func (c *Client) Start() {
	c.wg.Add(2)
	go c.run()
	go c.resyncLoop()
}

// Close releases the transport and stops all background activity. No state
// updates happen after Close returns.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		tr := c.tr
		c.tr = nil
		c.mu.Unlock()
		if tr != nil {
			tr.close()
		}
		c.wg.Wait()
		c.setConnState(StateDisconnected)
		log.Info().Msg("live client closed")
	})
}

// ConnState returns the current connection lifecycle state.
func (c *Client) ConnState() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connState
}

func (c *Client) setConnState(state ConnState) {
	c.mu.Lock()
	changed := c.connState != state
	c.connState = state
	c.mu.Unlock()

	if changed {
		log.Info().Str("state", state.String()).Msg("connection state changed")
	}
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// run is the connection loop: dial, replay the stored session, read events
// until the transport drops, then reconnect with a fixed delay and a bounded
// number of consecutive failures.
func (c *Client) run() {
	defer c.wg.Done()

	failures := 0
	for {
		if c.closed() {
			return
		}

		c.mu.Lock()
		reconnecting := c.everConnected
		c.mu.Unlock()
		if reconnecting {
			c.setConnState(StateReconnecting)
		} else {
			c.setConnState(StateConnecting)
		}

		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		tr, err := dialTransport(ctx, c.opts.SocketURL)
		cancel()
		if err != nil {
			failures++
			if failures > c.opts.ReconnectAttempts {
				log.Error().Err(err).Int("attempts", failures).Msg("giving up on reconnection")
				c.setConnState(StateDisconnected)
				return
			}
			log.Warn().Err(err).Int("attempt", failures).Msg("dial failed, retrying")
			if !c.sleep(c.opts.ReconnectDelay) {
				return
			}
			continue
		}
		failures = 0

		c.mu.Lock()
		c.tr = tr
		c.everConnected = true
		c.mu.Unlock()
		c.setConnState(StateConnected)
		log.Info().Str("url", c.opts.SocketURL).Msg("connected to auction server")

		// Optimistic re-authentication with the stored credential. When a
		// credential is replayed the mandatory post-reconnect refetch rides
		// on auth:success, so reconnection triggers exactly one refetch;
		// without a credential we refetch immediately to correct drift.
		replayed := c.replaySession()
		if reconnecting && !replayed {
			c.refetchAsync()
		}

		c.readLoop(tr)

		tr.close()
		c.mu.Lock()
		if c.tr == tr {
			c.tr = nil
		}
		c.mu.Unlock()

		if c.closed() {
			return
		}
		log.Warn().Msg("connection lost")
		if !c.sleep(c.opts.ReconnectDelay) {
			return
		}
	}
}

// replaySession emits a login with the persisted credential, if one exists.
func (c *Client) replaySession() bool {
	sess, err := c.sessions.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load stored session")
		return false
	}
	if !sess.Valid() {
		return false
	}

	c.mu.Lock()
	c.password = sess.Password
	c.mu.Unlock()

	if res := c.send(CmdLogin, loginPayload{Password: sess.Password}); res != CommandOK {
		log.Warn().Str("result", res.String()).Msg("session replay login not sent")
		return false
	}
	return true
}

// readLoop consumes pushed events until the transport fails. A keepalive
// ping runs alongside it.
func (c *Client) readLoop(tr *transport) {
	pingDone := make(chan struct{})
	defer close(pingDone)

	go func() {
		ticker := c.clock.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingDone:
				return
			case <-c.done:
				return
			case <-ticker.Chan():
				if err := tr.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		event, err := tr.readEvent()
		if err != nil {
			if !c.closed() {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		c.handleEvent(event)
	}
}

// handleEvent applies exactly one reconciliation policy per inbound event.
func (c *Client) handleEvent(event ServerEvent) {
	payload, err := ParseEventPayload(event)
	if err != nil {
		log.Error().Err(err).Str("event", string(event.Event)).Msg("failed to parse event payload")
		return
	}

	switch event.Event {
	case EventAuthSuccess:
		c.setConnState(StateAuthenticated)
		c.mu.Lock()
		password := c.password
		c.mu.Unlock()
		if password != "" {
			if err := c.sessions.Save(session.Session{Authenticated: true, Password: password}); err != nil {
				log.Warn().Err(err).Msg("failed to persist session")
			}
		}
		c.refetchAsync()

	case EventAuthError:
		p := payload.(AuthErrorPayload)
		c.opts.Notifier.Notify(p.Message)
		if err := c.sessions.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear stored session")
		}
		c.setConnState(StateConnected)

	case EventAuctionState:
		c.state.SetAuctionState(payload.(AuctionStatePayload).State)

	case EventTeamsStatus:
		c.state.ReplaceTeams(payload.(TeamsStatusPayload).Teams)

	case EventPlayerSold:
		// No incremental patch; the sale touches player status, team purse
		// and stats at once, so refetch everything.
		c.refetchAsync()

	case EventAuctionStarted:
		c.state.MarkPlayerInAuction(payload.(AuctionStartedPayload).Player.ID)

	case EventNewBid:
		p := payload.(NewBidPayload)
		c.state.SetHighBid(p.Amount, p.TeamName)

	case EventAutoStarted:
		p := payload.(AutoStartedPayload)
		c.state.AutoAuctionStarted(p.QueueLength, p.TotalPlayers)

	case EventAutoQueueUpdate:
		p := payload.(AutoQueueUpdatePayload)
		c.state.AutoAuctionQueueUpdate(p.QueueLength, p.UnsoldCount, p.TotalRemaining)

	case EventAutoPlayerUnsold:
		c.state.AutoAuctionPlayerUnsold(payload.(AutoPlayerUnsoldPayload).UnsoldCount)

	case EventAutoUnsoldRound:
		p := payload.(AutoUnsoldRoundPayload)
		c.opts.Notifier.Notify(fmt.Sprintf("%s (%d players)", p.Message, p.Count))

	case EventAutoCompleted:
		p := payload.(AutoCompletedPayload)
		c.opts.Notifier.Notify(p.Message)
		c.state.ResetAutoAuction()
		c.refetchAsync()

	case EventAutoStopped:
		p := payload.(AutoStoppedPayload)
		c.state.AutoAuctionStopped(p.RemainingInQueue, p.UnsoldCount)

	case EventAutoStatus:
		c.state.SetAutoAuctionStatus(payload.(models.AutoAuctionStatus))

	case EventTeamSummaryShowing:
		c.state.SetTeamSummaryShowing(payload.(TeamSummaryShowingPayload).IsShowing)

	default:
		log.Debug().Str("event", string(event.Event)).Msg("ignoring unknown event")
	}
}

// resyncLoop refetches on a fixed interval while authenticated, as a drift
// safety net against missed events.
func (c *Client) resyncLoop() {
	defer c.wg.Done()

	ticker := c.clock.NewTicker(c.opts.ResyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.Chan():
			if c.ConnState() == StateAuthenticated {
				c.Refetch()
			}
		}
	}
}

// Refetch fetches players, teams and stats concurrently and applies them
// atomically. Overlapping triggers coalesce into one in-flight fan-out. If
// any call fails the whole refetch is abandoned and the previous snapshot is
// kept: stale-but-consistent beats partially updated.
func (c *Client) Refetch() error {
	_, err, _ := c.refetchGroup.Do("refetch", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.RefetchTimeout)
		defer cancel()

		var (
			players []models.Player
			teams   []models.Team
			stats   models.Stats
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			players, err = c.api.GetPlayers(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			teams, err = c.api.GetTeams(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			stats, err = c.api.GetStats(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			log.Warn().Err(err).Msg("refetch abandoned, keeping previous snapshot")
			return nil, err
		}

		// Serialized with Close: a refetch resolving late either lands
		// before Close returns or not at all.
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed() {
			return nil, nil
		}
		c.state.ApplyRefetch(players, teams, stats)
		log.Debug().
			Int("players", len(players)).
			Int("teams", len(teams)).
			Msg("snapshot refetched")
		return nil, nil
	})
	return err
}

func (c *Client) refetchAsync() {
	go func() {
		_ = c.Refetch()
	}()
}

// scheduleRefetch runs one refetch after the given delay, unless the client
// closes first. The Add is serialized with Close under the mutex so it can
// never race the WaitGroup's Wait.
func (c *Client) scheduleRefetch(delay time.Duration) {
	c.mu.Lock()
	if c.closed() {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()
	go func() {
		defer c.wg.Done()
		if !c.sleep(delay) {
			return
		}
		c.Refetch()
	}()
}

// sleep waits for d on the injected clock. It returns false if the client
// closed while waiting.
func (c *Client) sleep(d time.Duration) bool {
	timer := c.clock.NewTimer(d)
	select {
	case <-timer.Chan():
		return true
	case <-c.done:
		stopAndDrainTimer(timer)
		return false
	}
}

// stopAndDrainTimer stops a timer and drains its channel so no goroutine
// leaks a pending tick.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}

func (c *Client) confirm(prompt string) bool {
	if c.opts.Confirmer == nil {
		return true
	}
	return c.opts.Confirmer.Confirm(prompt)
}

// send writes one command to the transport. Commands are fire-and-forget:
// there is no retry and no queueing while disconnected.
func (c *Client) send(cmd CommandType, data interface{}) CommandResult {
	c.mu.Lock()
	tr := c.tr
	c.mu.Unlock()
	if tr == nil {
		log.Warn().Str("command", string(cmd)).Msg("not connected, command dropped")
		return CommandRejected
	}

	msg := Command{ID: uuid.NewString(), Event: cmd, Data: data}
	if err := tr.writeJSON(msg); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Error().Err(err).Str("command", string(cmd)).Msg("command write timed out")
			return CommandTimedOut
		}
		log.Error().Err(err).Str("command", string(cmd)).Msg("command write failed")
		return CommandRejected
	}

	log.Debug().Str("command", string(cmd)).Msg("command sent")
	return CommandOK
}

// Login authenticates the session with the given password. On auth:success
// the credential is persisted for silent re-login.
func (c *Client) Login(password string) CommandResult {
	c.mu.Lock()
	c.password = password
	c.mu.Unlock()
	return c.send(CmdLogin, loginPayload{Password: password})
}

// Logout clears the persisted credential so the next start requires a
// manual login. The server session stays open until the connection drops.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.password = ""
	c.mu.Unlock()
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	if c.ConnState() == StateAuthenticated {
		c.setConnState(StateConnected)
	}
	return nil
}

// StartAuction puts one player up for manual bidding.
func (c *Client) StartAuction(playerID string) CommandResult {
	return c.send(CmdStartAuction, playerPayload{PlayerID: playerID})
}

// PauseAuction pauses the running auction. The local paused flag flips
// immediately so the control reacts without waiting on the round trip.
func (c *Client) PauseAuction() CommandResult {
	c.state.SetPausedOverride(true)
	return c.send(CmdPauseAuction, nil)
}

// ResumeAuction resumes a paused auction, with the same optimistic flip.
func (c *Client) ResumeAuction() CommandResult {
	c.state.SetPausedOverride(false)
	return c.send(CmdResumeAuction, nil)
}

// ResetAuction clears all bids and restores budgets. Destructive; requires
// confirmation.
func (c *Client) ResetAuction() CommandResult {
	if !c.confirm("Reset the entire auction? All bids will be cleared and budgets restored. This cannot be undone.") {
		return CommandRejected
	}
	return c.send(CmdResetAuction, nil)
}

// StartAutoAuction begins the server-driven automatic auction run.
func (c *Client) StartAutoAuction() CommandResult {
	if !c.confirm("Start automatic auction for all available players? Players are auctioned from highest to lowest base price; unsold players return to the queue.") {
		return CommandRejected
	}
	return c.send(CmdStartAutoAuction, nil)
}

// StopAutoAuction stops the automatic auction run. Destructive; requires
// confirmation.
func (c *Client) StopAutoAuction() CommandResult {
	if !c.confirm("Stop the automatic auction?") {
		return CommandRejected
	}
	return c.send(CmdStopAutoAuction, nil)
}

// UndoSale reverses one sale. The server pushes no dedicated event for the
// reversal, so a delayed refetch papers over its processing latency.
func (c *Client) UndoSale(playerID string) CommandResult {
	if !c.confirm("Undo this sale?") {
		return CommandRejected
	}
	res := c.send(CmdUndoSale, playerPayload{PlayerID: playerID})
	if res == CommandOK {
		c.scheduleRefetch(c.opts.UndoRefetchDelay)
	}
	return res
}

// RemoveFromAuction withdraws the player currently under the hammer.
func (c *Client) RemoveFromAuction(playerID string) CommandResult {
	return c.send(CmdRemoveFromAuction, playerPayload{PlayerID: playerID})
}
