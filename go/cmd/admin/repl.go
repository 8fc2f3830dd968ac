package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/clients/auctionapi"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/live"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

const credentialsFile = "team-credentials.txt"

const apiCallTimeout = 30 * time.Second

// REPL is the interactive console. It owns stdin, so it also serves as the
// live client's Confirmer; server alerts are rendered as prominent prints
// because a second stdin reader would race the command loop.
type REPL struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewREPL(in io.Reader, out io.Writer) *REPL {
	return &REPL{in: bufio.NewScanner(in), out: out}
}

// Confirm implements live.Confirmer with a synchronous y/N prompt.
func (r *REPL) Confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s [y/N]: ", prompt)
	if !r.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(r.in.Text()))
	return answer == "y" || answer == "yes"
}

// Notify implements live.Notifier.
func (r *REPL) Notify(message string) {
	fmt.Fprintf(r.out, "\n*** %s\n", message)
}

// Run processes console commands until quit or EOF.
func (r *REPL) Run(client *live.Client, api *auctionapi.Client, state *live.StateManager) {
	fmt.Fprintln(r.out, `BPL admin console. Type "help" for commands.`)

	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "help":
			r.printHelp()

		case "quit", "exit":
			return

		case "status":
			r.printStatus(client, state)

		case "players":
			r.printPlayers(state.Snapshot().Players, models.PlayerStatus(strings.ToUpper(rest)))

		case "teams":
			r.printTeams(state.Snapshot().Teams)

		case "stats":
			s := state.Snapshot().Stats
			fmt.Fprintf(r.out, "total=%d sold=%d unsold=%d\n", s.TotalPlayers, s.SoldPlayers, s.UnsoldPlayers)

		case "login":
			if rest == "" {
				fmt.Fprintln(r.out, "usage: login <password>")
				continue
			}
			r.report(client.Login(rest))

		case "logout":
			if err := client.Logout(); err != nil {
				fmt.Fprintf(r.out, "logout failed: %v\n", err)
			} else {
				fmt.Fprintln(r.out, "session cleared")
			}

		case "start":
			if rest == "" {
				fmt.Fprintln(r.out, "usage: start <playerId>")
				continue
			}
			r.report(client.StartAuction(rest))

		case "pause":
			r.report(client.PauseAuction())

		case "resume":
			r.report(client.ResumeAuction())

		case "reset":
			r.report(client.ResetAuction())

		case "auto-start":
			r.report(client.StartAutoAuction())

		case "auto-stop":
			r.report(client.StopAutoAuction())

		case "undo":
			if rest == "" {
				fmt.Fprintln(r.out, "usage: undo <playerId>")
				continue
			}
			r.report(client.UndoSale(rest))

		case "remove":
			if rest == "" {
				fmt.Fprintln(r.out, "usage: remove <playerId>")
				continue
			}
			r.report(client.RemoveFromAuction(rest))

		case "refetch":
			if err := client.Refetch(); err != nil {
				fmt.Fprintf(r.out, "refetch failed: %v\n", err)
			} else {
				fmt.Fprintln(r.out, "snapshot refreshed")
			}

		case "register":
			r.runAPI(r.registerPlayer(api, rest))

		case "upload":
			r.runAPI(r.bulkUpload(api, rest))

		case "update-player":
			r.runAPI(r.updatePlayer(api, rest))

		case "delete-player":
			r.runAPI(r.deletePlayer(api, rest))

		case "update-team":
			r.runAPI(r.updateTeam(api, rest))

		case "delete-team":
			r.runAPI(r.deleteTeam(api, rest))

		case "create-captain":
			r.runAPI(r.createCaptain(api, rest))

		case "generate-teams":
			ctx, cancel := context.WithTimeout(context.Background(), apiCallTimeout)
			if err := r.generateTeams(ctx, api, credentialsFile); err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			cancel()

		case "reset-data":
			r.runAPI(r.resetData(api))

		case "clear-all":
			r.runAPI(r.clearAll(api))

		default:
			fmt.Fprintf(r.out, "unknown command %q, try help\n", cmd)
		}
	}
}

func (r *REPL) report(res live.CommandResult) {
	fmt.Fprintln(r.out, res.String())
}

// runAPI executes one REST action with a bounded context and prints the
// outcome. Failures are terminal for that one action; the admin retries by
// repeating the command.
func (r *REPL) runAPI(action func(ctx context.Context) error) {
	if action == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), apiCallTimeout)
	defer cancel()
	if err := action(ctx); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `auction:
  status                         connection and auction overview
  players [status]               cached player list, optionally filtered
  teams                          cached team list with purses
  stats                          aggregate player stats
  start <playerId>               put a player up for manual bidding
  pause | resume                 pause/resume the running auction
  reset                          reset the auction (confirmed)
  auto-start | auto-stop         control the automatic auction (confirmed)
  undo <playerId>                undo a sale (confirmed)
  remove <playerId>              withdraw the player under the hammer
  refetch                        force a full snapshot refetch
session:
  login <password> | logout
management (fields separated by |):
  register <name|category|basePrice[|photoPath]>
  upload <players.csv>
  update-player <id|name|category|basePrice>
  delete-player <id>
  update-team <id|teamName|captainName|teamId[|pin]>
  delete-team <id>
  create-captain <teamName|captainName|teamId|pin[|logoPath]>
  generate-teams                 create 20 teams, download credentials
  reset-data                     reset auction over REST (double confirm)
  clear-all                      wipe everything (double confirm)
quit
`)
}

func (r *REPL) printStatus(client *live.Client, state *live.StateManager) {
	snap := state.Snapshot()
	fmt.Fprintf(r.out, "connection: %s\n", client.ConnState())

	if snap.AuctionState == nil || !snap.AuctionState.IsActive {
		fmt.Fprintln(r.out, "manual auction: inactive")
	} else {
		status := "active"
		if state.Paused() {
			status = "paused"
		}
		name := "none"
		if snap.AuctionState.CurrentPlayer != nil {
			name = snap.AuctionState.CurrentPlayer.Name
		}
		bid := "no bids"
		if hb := snap.AuctionState.CurrentHighBid; hb != nil {
			bid = fmt.Sprintf("%d by %s", hb.Amount, hb.Team.TeamName)
		}
		fmt.Fprintf(r.out, "manual auction: %s, player %s, high bid %s, %ds left\n",
			status, name, bid, snap.AuctionState.TimeRemaining)
	}

	if snap.AutoAuction.IsActive {
		fmt.Fprintf(r.out, "auto auction: running, queue=%d retry=%d remaining=%d\n",
			snap.AutoAuction.QueueLength, snap.AutoAuction.UnsoldCount, snap.AutoAuction.TotalRemaining)
	} else {
		fmt.Fprintln(r.out, "auto auction: idle")
	}
	if snap.TeamSummaryShowing {
		fmt.Fprintln(r.out, "projector: showing team summary")
	}
}

func (r *REPL) printPlayers(players []models.Player, filter models.PlayerStatus) {
	n := 0
	for _, p := range players {
		if filter != "" && p.Status != filter {
			continue
		}
		line := fmt.Sprintf("%s  %-20s %-13s base=%d  %s", p.ID, p.Name, p.Category, p.BasePrice, p.Status)
		if p.Status == models.StatusSold && p.SoldTo != nil {
			line += fmt.Sprintf(" to %s for %d", p.SoldTo.TeamName, p.SoldPrice)
		}
		fmt.Fprintln(r.out, line)
		n++
	}
	fmt.Fprintf(r.out, "%d players\n", n)
}

func (r *REPL) printTeams(teams []models.Team) {
	for _, t := range teams {
		online := " "
		if t.IsOnline {
			online = "*"
		}
		fmt.Fprintf(r.out, "%s %s %-20s captain=%-15s purse=%d slots=%d\n",
			online, t.ID, t.TeamName, t.CaptainName, t.RemainingPoints, t.RosterSlotsFilled)
	}
	fmt.Fprintf(r.out, "%d teams\n", len(teams))
}

func (r *REPL) registerPlayer(api *auctionapi.Client, rest string) func(context.Context) error {
	parts := strings.Split(rest, "|")
	if len(parts) < 3 {
		fmt.Fprintln(r.out, "usage: register <name|category|basePrice[|photoPath]>")
		return nil
	}
	basePrice, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		fmt.Fprintln(r.out, "basePrice must be a number")
		return nil
	}

	req := auctionapi.RegisterPlayerRequest{
		Name:      strings.TrimSpace(parts[0]),
		Category:  models.PlayerCategory(strings.TrimSpace(parts[1])),
		BasePrice: basePrice,
	}

	return func(ctx context.Context) error {
		if len(parts) > 3 {
			photo, err := os.Open(strings.TrimSpace(parts[3]))
			if err != nil {
				return err
			}
			defer photo.Close()
			req.Photo = photo
			req.PhotoName = photo.Name()
		}
		if err := api.RegisterPlayer(ctx, req); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "player registered")
		return nil
	}
}

func (r *REPL) bulkUpload(api *auctionapi.Client, path string) func(context.Context) error {
	if path == "" {
		fmt.Fprintln(r.out, "usage: upload <players.csv>")
		return nil
	}
	return func(ctx context.Context) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		message, err := api.BulkUploadPlayers(ctx, f.Name(), f)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, message)
		return nil
	}
}

func (r *REPL) updatePlayer(api *auctionapi.Client, rest string) func(context.Context) error {
	parts := strings.Split(rest, "|")
	if len(parts) != 4 {
		fmt.Fprintln(r.out, "usage: update-player <id|name|category|basePrice>")
		return nil
	}
	basePrice, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		fmt.Fprintln(r.out, "basePrice must be a number")
		return nil
	}
	return func(ctx context.Context) error {
		err := api.UpdatePlayer(ctx, strings.TrimSpace(parts[0]), auctionapi.UpdatePlayerRequest{
			Name:      strings.TrimSpace(parts[1]),
			Category:  models.PlayerCategory(strings.TrimSpace(parts[2])),
			BasePrice: basePrice,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, "player updated")
		return nil
	}
}

func (r *REPL) deletePlayer(api *auctionapi.Client, id string) func(context.Context) error {
	if id == "" {
		fmt.Fprintln(r.out, "usage: delete-player <id>")
		return nil
	}
	if !r.Confirm("Delete this player?") {
		return nil
	}
	return func(ctx context.Context) error {
		if err := api.DeletePlayer(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "player deleted")
		return nil
	}
}

func (r *REPL) updateTeam(api *auctionapi.Client, rest string) func(context.Context) error {
	parts := strings.Split(rest, "|")
	if len(parts) < 4 {
		fmt.Fprintln(r.out, "usage: update-team <id|teamName|captainName|teamId[|pin]>")
		return nil
	}
	req := auctionapi.UpdateTeamRequest{
		TeamName:    strings.TrimSpace(parts[1]),
		CaptainName: strings.TrimSpace(parts[2]),
		TeamID:      strings.TrimSpace(parts[3]),
	}
	if len(parts) > 4 {
		req.Pin = strings.TrimSpace(parts[4])
	}
	return func(ctx context.Context) error {
		if err := api.UpdateTeam(ctx, strings.TrimSpace(parts[0]), req); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "team updated")
		return nil
	}
}

func (r *REPL) deleteTeam(api *auctionapi.Client, id string) func(context.Context) error {
	if id == "" {
		fmt.Fprintln(r.out, "usage: delete-team <id>")
		return nil
	}
	if !r.Confirm("Delete this team?") {
		return nil
	}
	return func(ctx context.Context) error {
		if err := api.DeleteTeam(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "team deleted")
		return nil
	}
}

func (r *REPL) createCaptain(api *auctionapi.Client, rest string) func(context.Context) error {
	parts := strings.Split(rest, "|")
	if len(parts) < 4 {
		fmt.Fprintln(r.out, "usage: create-captain <teamName|captainName|teamId|pin[|logoPath]>")
		return nil
	}
	req := auctionapi.CreateCaptainRequest{
		TeamName:    strings.TrimSpace(parts[0]),
		CaptainName: strings.TrimSpace(parts[1]),
		TeamID:      strings.TrimSpace(parts[2]),
		Pin:         strings.TrimSpace(parts[3]),
	}
	return func(ctx context.Context) error {
		if len(parts) > 4 {
			logo, err := os.Open(strings.TrimSpace(parts[4]))
			if err != nil {
				return err
			}
			defer logo.Close()
			req.Logo = logo
			req.LogoName = logo.Name()
		}
		team, err := api.CreateCaptain(ctx, req)
		if err != nil {
			return err
		}
		if team != nil {
			fmt.Fprintf(r.out, "team %s created (id %s)\n", team.TeamName, team.TeamID)
		} else {
			fmt.Fprintln(r.out, "team created")
		}
		return nil
	}
}

// teamGenerator is the slice of the API that generateTeams needs.
type teamGenerator interface {
	GenerateTeams(ctx context.Context, count int) ([]models.Team, error)
}

// generateTeams creates 20 teams and writes their one-time credentials to
// outPath. If the write fails the credentials are printed instead; they are
// never silently dropped.
func (r *REPL) generateTeams(ctx context.Context, gen teamGenerator, outPath string) error {
	if !r.Confirm("Generate 20 teams with random credentials? PINs are shown only once.") {
		return nil
	}

	teams, err := gen.GenerateTeams(ctx, 20)
	if err != nil {
		return err
	}

	creds := formatCredentials(teams)
	if err := os.WriteFile(outPath, []byte(creds), 0o600); err != nil {
		fmt.Fprintf(r.out, "failed to write %s: %v\ncredentials follow:\n%s", outPath, err, creds)
		return nil
	}

	fmt.Fprintf(r.out, "%d teams created, credentials written to %s\n", len(teams), outPath)
	return nil
}

func formatCredentials(teams []models.Team) string {
	var b strings.Builder
	for _, t := range teams {
		fmt.Fprintf(&b, "Team ID: %s | Team Name: %s | Captain: %s | PIN: %s\n",
			t.TeamID, t.TeamName, t.CaptainName, t.Pin)
	}
	return b.String()
}

func (r *REPL) resetData(api *auctionapi.Client) func(context.Context) error {
	if !r.Confirm("Reset the entire auction? Bids are cleared, rosters emptied, budgets restored.") {
		return nil
	}
	if !r.Confirm("FINAL WARNING: this cannot be undone. Continue?") {
		return nil
	}
	return func(ctx context.Context) error {
		if err := api.ResetAuction(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "auction reset")
		return nil
	}
}

func (r *REPL) clearAll(api *auctionapi.Client) func(context.Context) error {
	if !r.Confirm("Clear ALL data? Players, teams, bids and auction state will be deleted.") {
		return nil
	}
	if !r.Confirm("FINAL WARNING: this permanently deletes everything. Continue?") {
		return nil
	}
	return func(ctx context.Context) error {
		if err := api.ClearAllData(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "all data cleared")
		return nil
	}
}
