package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func TestExporterRow(t *testing.T) {
	dob := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	e := Exporter{Location: time.UTC}

	row := e.Row(domain.Account{
		Identifier:  "alice",
		Password:    "p1",
		Email:       strPtr("a@x.com"),
		TwoFASecret: strPtr(testSecret),
		DOB:         &dob,
		Group:       &domain.GroupRef{ID: 1, Name: "Main"},
		Tags:        "x, y",
		CreatedAt:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	require.Equal(t, "alice|p1|a@x.com||JBSWY3DPEHPK3PXP|02/01/2000|Main|x, y|05/03/2024, 10:00:00|", row)
}

func TestExporterTimestampsUseLocation(t *testing.T) {
	sydney := time.FixedZone("AEDT", 11*60*60)
	e := Exporter{Location: sydney}

	row := e.Row(domain.Account{
		Identifier: "bob",
		Password:   "p2",
		CreatedAt:  time.Date(2024, 3, 5, 20, 30, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 3, 5, 20, 30, 1, 0, time.UTC),
	})
	require.Equal(t, "bob|p2|||||||06/03/2024, 07:30:00|06/03/2024, 07:30:01", row)
}

func TestExporterText(t *testing.T) {
	e := Exporter{Location: time.UTC}

	require.Equal(t, ExportHeader, e.Text(nil))

	out := e.Text([]domain.Account{
		{Identifier: "a", Password: "1"},
		{Identifier: "b", Password: "2"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, ExportHeader, lines[0])
	require.Equal(t, "a|1||||||||", lines[1])
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestExporterJSON(t *testing.T) {
	e := Exporter{Location: time.UTC}

	empty, err := e.Encode(nil, ExportJSON)
	require.NoError(t, err)
	require.Equal(t, "[]", string(empty))

	out, err := e.Encode([]domain.Account{{ID: 1, Identifier: "alice", Password: "p1"}}, ExportJSON)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "[\n  {\n    \"id\": 1,"))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "alice", decoded[0]["userId"])

	_, err = e.Encode(nil, "xml")
	require.ErrorIs(t, err, ErrUnknownExportFormat)
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": ExportText, "TEXT": ExportText, " json ": ExportJSON} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseExportFormat("csv")
	require.ErrorIs(t, err, ErrUnknownExportFormat)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "accounts-2024-03-05.txt", ExportFileName(ExportText, now))
	require.Equal(t, "accounts-2024-03-05.json", ExportFileName(ExportJSON, now))
}

func TestAccountExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, name := range []string{"first", "second"} {
		_, err := f.accounts.Create(ctx, domain.Account{Identifier: name, Password: "pw"})
		require.NoError(t, err)
	}

	out, err := f.accounts.Export(ctx, ExportText, OrderDisplay)
	require.NoError(t, err)
	lines := strings.Split(string(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "first|pw|"))
	require.True(t, strings.HasPrefix(lines[2], "second|pw|"))
}

func TestAccountExportKeepsSecretAsEntered(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1", TwoFASecret: strPtr(" jbsw y3dp ehpk 3pxp ")})
	require.NoError(t, err)

	out, err := f.accounts.Export(ctx, ExportText, OrderDisplay)
	require.NoError(t, err)
	lines := strings.Split(string(out), "\n")
	require.True(t, strings.HasPrefix(lines[1], "alice|p1|||jbsw y3dp ehpk 3pxp|"), lines[1])
}
