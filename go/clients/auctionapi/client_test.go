package auctionapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// newTestClient points a Client at a handler and records every request.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recorded) {
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		rec.body = body
		rec.request = r
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL), rec
}

type recorded struct {
	method      string
	path        string
	contentType string
	body        []byte
	request     *http.Request
}

func ok(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	}
}

func fail(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, `{"success":false,"message":"`+message+`"}`)
	}
}

func TestGetPlayers(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"players":[{"_id":"p1","name":"Rohit","category":"Batsman","basePrice":100,"status":"UNSOLD"}]}`))

	players, err := c.GetPlayers(context.Background())
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/players", rec.path)
	require.Len(t, players, 1)
	require.Equal(t, "p1", players[0].ID)
	require.Equal(t, models.CategoryBatsman, players[0].Category)
}

func TestGetTeams(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"teams":[{"_id":"t1","teamName":"Titans","remainingPoints":800}]}`))

	teams, err := c.GetTeams(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/teams", rec.path)
	require.Len(t, teams, 1)
	require.Equal(t, 800, teams[0].RemainingPoints)
}

func TestGetStats(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"stats":{"totalPlayers":50,"soldPlayers":12,"unsoldPlayers":38}}`))

	stats, err := c.GetStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/auction/stats", rec.path)
	require.Equal(t, models.Stats{TotalPlayers: 50, SoldPlayers: 12, UnsoldPlayers: 38}, stats)
}

func TestServerMessageSurfacesInError(t *testing.T) {
	c, _ := newTestClient(t, fail(http.StatusBadRequest, "Cannot delete a sold player"))

	err := c.DeletePlayer(context.Background(), "p1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Cannot delete a sold player")
}

func TestErrorWithoutMessageFallsBackToStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	})

	_, err := c.GetPlayers(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestUpdatePlayer(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true}`))

	err := c.UpdatePlayer(context.Background(), "p1", UpdatePlayerRequest{
		Name:      "Rohit",
		Category:  models.CategoryBatsman,
		BasePrice: 120,
	})
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/players/p1", rec.path)
	require.JSONEq(t, `{"name":"Rohit","category":"Batsman","basePrice":120}`, string(rec.body))
}

func TestRegisterPlayerMultipart(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true}`))

	err := c.RegisterPlayer(context.Background(), RegisterPlayerRequest{
		Name:      "Bumrah",
		Category:  models.CategoryBowler,
		BasePrice: 150,
		PhotoName: "bumrah.jpg",
		Photo:     strings.NewReader("jpegbytes"),
	})
	require.NoError(t, err)

	require.Equal(t, "/players/register", rec.path)
	require.Contains(t, rec.contentType, "multipart/form-data")

	rec.request.Body = io.NopCloser(strings.NewReader(string(rec.body)))
	require.NoError(t, rec.request.ParseMultipartForm(1<<20))
	require.Equal(t, "Bumrah", rec.request.FormValue("name"))
	require.Equal(t, "Bowler", rec.request.FormValue("category"))
	require.Equal(t, "150", rec.request.FormValue("basePrice"))

	_, header, err := rec.request.FormFile("photo")
	require.NoError(t, err)
	require.Equal(t, "bumrah.jpg", header.Filename)
}

func TestRegisterPlayerWithoutPhotoOmitsFilePart(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true}`))

	err := c.RegisterPlayer(context.Background(), RegisterPlayerRequest{
		Name:      "Jadeja",
		Category:  models.CategoryAllRounder,
		BasePrice: 90,
	})
	require.NoError(t, err)

	rec.request.Body = io.NopCloser(strings.NewReader(string(rec.body)))
	require.NoError(t, rec.request.ParseMultipartForm(1<<20))
	_, _, err = rec.request.FormFile("photo")
	require.Error(t, err)
}

func TestBulkUploadPlayers(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"message":"12 players imported"}`))

	msg, err := c.BulkUploadPlayers(context.Background(), "players.csv", strings.NewReader("name,category,basePrice\n"))
	require.NoError(t, err)
	require.Equal(t, "12 players imported", msg)

	require.Equal(t, "/players/bulk-upload", rec.path)
	rec.request.Body = io.NopCloser(strings.NewReader(string(rec.body)))
	require.NoError(t, rec.request.ParseMultipartForm(1<<20))
	_, header, err := rec.request.FormFile("csvFile")
	require.NoError(t, err)
	require.Equal(t, "players.csv", header.Filename)
}

func TestUpdateTeamOmitsEmptyPin(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true}`))

	err := c.UpdateTeam(context.Background(), "t1", UpdateTeamRequest{
		TeamName:    "Titans",
		CaptainName: "Dhoni",
		TeamID:      "TT",
	})
	require.NoError(t, err)

	require.Equal(t, "/teams/t1", rec.path)
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.NotContains(t, sent, "pin")
}

func TestUpdateTeamSendsNewPin(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true}`))

	err := c.UpdateTeam(context.Background(), "t1", UpdateTeamRequest{
		TeamName: "Titans",
		TeamID:   "TT",
		Pin:      "4321",
	})
	require.NoError(t, err)
	require.Contains(t, string(rec.body), `"pin":"4321"`)
}

func TestGenerateTeams(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"teams":[{"_id":"t1","teamName":"Team 1","teamId":"T1","pin":"1234"}]}`))

	teams, err := c.GenerateTeams(context.Background(), 20)
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/admin/generate-teams", rec.path)
	require.JSONEq(t, `{"count":20}`, string(rec.body))
	require.Len(t, teams, 1)
	require.Equal(t, "1234", teams[0].Pin)
}

func TestCreateCaptain(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"team":{"_id":"t2","teamName":"Warriors","teamId":"WR"}}`))

	team, err := c.CreateCaptain(context.Background(), CreateCaptainRequest{
		TeamName:    "Warriors",
		CaptainName: "Kohli",
		TeamID:      "WR",
		Pin:         "9999",
		LogoName:    "logo.png",
		Logo:        strings.NewReader("pngbytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "Warriors", team.TeamName)

	require.Equal(t, "/admin/create-captain", rec.path)
	rec.request.Body = io.NopCloser(strings.NewReader(string(rec.body)))
	require.NoError(t, rec.request.ParseMultipartForm(1<<20))
	require.Equal(t, "Kohli", rec.request.FormValue("captainName"))
	require.Equal(t, "9999", rec.request.FormValue("pin"))
	_, header, err := rec.request.FormFile("logo")
	require.NoError(t, err)
	require.Equal(t, "logo.png", header.Filename)
}

func TestResetAuction(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"message":"Auction reset"}`))

	require.NoError(t, c.ResetAuction(context.Background()))
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/admin/reset", rec.path)
}

func TestClearAllData(t *testing.T) {
	c, rec := newTestClient(t, ok(`{"success":true,"message":"All data cleared"}`))

	require.NoError(t, c.ClearAllData(context.Background()))
	require.Equal(t, "/admin/clear-all-data", rec.path)
}

func TestMalformedResponseBody(t *testing.T) {
	c, _ := newTestClient(t, ok(`not json at all`))

	_, err := c.GetPlayers(context.Background())
	require.Error(t, err)
}
