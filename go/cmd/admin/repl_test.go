package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

type fakeGenerator struct {
	count int
	teams []models.Team
	err   error
}

func (f *fakeGenerator) GenerateTeams(ctx context.Context, count int) ([]models.Team, error) {
	f.count = count
	return f.teams, f.err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func requireNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func sampleTeams() []models.Team {
	return []models.Team{
		{TeamID: "T1", TeamName: "Team 1", CaptainName: "Captain 1", Pin: "1234"},
		{TeamID: "T2", TeamName: "Team 2", CaptainName: "Captain 2", Pin: "5678"},
	}
}

func TestConfirmAcceptsYes(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewREPL(strings.NewReader("y\nyes\nn\n\n"), out)

	require.True(t, r.Confirm("sure?"))
	require.True(t, r.Confirm("sure?"))
	require.False(t, r.Confirm("sure?"))
	require.False(t, r.Confirm("sure?"))
	require.Contains(t, out.String(), "sure? [y/N]:")
}

func TestConfirmEOFIsNo(t *testing.T) {
	r := NewREPL(strings.NewReader(""), &bytes.Buffer{})
	require.False(t, r.Confirm("sure?"))
}

func TestGenerateTeamsWritesCredentialsFile(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewREPL(strings.NewReader("y\n"), out)
	gen := &fakeGenerator{teams: sampleTeams()}
	path := filepath.Join(t.TempDir(), "creds.txt")

	require.NoError(t, r.generateTeams(context.Background(), gen, path))

	require.Equal(t, 20, gen.count)

	data := readFile(t, path)
	require.Contains(t, data, "Team ID: T1")
	require.Contains(t, data, "PIN: 1234")
	require.Contains(t, data, "PIN: 5678")
	require.Contains(t, out.String(), "credentials written to")
}

func TestGenerateTeamsDeclinedDoesNothing(t *testing.T) {
	r := NewREPL(strings.NewReader("n\n"), &bytes.Buffer{})
	gen := &fakeGenerator{teams: sampleTeams()}
	path := filepath.Join(t.TempDir(), "creds.txt")

	require.NoError(t, r.generateTeams(context.Background(), gen, path))
	require.Zero(t, gen.count)
	requireNoFile(t, path)
}

func TestGenerateTeamsWriteFailurePrintsCredentials(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewREPL(strings.NewReader("y\n"), out)
	gen := &fakeGenerator{teams: sampleTeams()}

	// A directory path makes the write fail.
	require.NoError(t, r.generateTeams(context.Background(), gen, t.TempDir()))

	require.Contains(t, out.String(), "failed to write")
	require.Contains(t, out.String(), "PIN: 1234")
	require.Contains(t, out.String(), "PIN: 5678")
}

func TestGenerateTeamsAPIErrorSurfaced(t *testing.T) {
	r := NewREPL(strings.NewReader("y\n"), &bytes.Buffer{})
	gen := &fakeGenerator{err: errors.New("server busy")}
	path := filepath.Join(t.TempDir(), "creds.txt")

	err := r.generateTeams(context.Background(), gen, path)
	require.ErrorContains(t, err, "server busy")
	requireNoFile(t, path)
}

func TestFormatCredentials(t *testing.T) {
	got := formatCredentials(sampleTeams())
	require.Equal(t,
		"Team ID: T1 | Team Name: Team 1 | Captain: Captain 1 | PIN: 1234\n"+
			"Team ID: T2 | Team Name: Team 2 | Captain: Captain 2 | PIN: 5678\n",
		got)
}

func TestPrintPlayersFiltersByStatus(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewREPL(strings.NewReader(""), out)

	r.printPlayers([]models.Player{
		{ID: "p1", Name: "Rohit", Status: models.StatusUnsold},
		{ID: "p2", Name: "Bumrah", Status: models.StatusSold, SoldPrice: 150, SoldTo: &models.Team{TeamName: "Titans"}},
	}, models.StatusSold)

	require.NotContains(t, out.String(), "Rohit")
	require.Contains(t, out.String(), "Bumrah")
	require.Contains(t, out.String(), "to Titans for 150")
	require.Contains(t, out.String(), "1 players")
}

func TestNotifyIsProminent(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewREPL(strings.NewReader(""), out)

	r.Notify("Round complete: 3 players unsold")
	require.Contains(t, out.String(), "*** Round complete: 3 players unsold")
}
