package kontrol_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/kontrolhq/kontrol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog routes diagnostics into a buffer for the duration of the test
// and returns a function decoding the records written so far.
func captureLog(t *testing.T) func() []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	kontrol.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { kontrol.SetLogger(nil) })
	return func() []map[string]any {
		var records []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			var r map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &r))
			records = append(records, r)
		}
		buf.Reset()
		return records
	}
}

func TestCreateLogsWarning(t *testing.T) {
	records := captureLog(t)

	kontrol.Create(kontrol.Args{s("bogus"), s("id1"), s("Name")})
	got := records()
	require.Len(t, got, 1)
	assert.Equal(t, "WARN", got[0]["level"])
	assert.Equal(t, "id1", got[0]["id"])
	assert.Equal(t, `parameter type not found: "bogus"`, got[0]["err"])

	kontrol.Create(kontrol.Args{s("float"), s("x"), s("X")})
	got = records()
	require.Len(t, got, 1)
	assert.Equal(t, "WARN", got[0]["level"])
	assert.Equal(t, "x", got[0]["id"])
	assert.Equal(t, "x: missing min", got[0]["err"])

	kontrol.Create(kontrol.Args{s("bool"), s("x"), s("X"), f(1)})
	assert.Empty(t, records(), "valid parameters are created silently")
}

func TestDumpLogsAtDebug(t *testing.T) {
	records := captureLog(t)
	p := newFloat(t, "freq", 20, 20000, 1000)
	p.Dump()
	got := records()
	require.Len(t, got, 1)
	assert.Equal(t, "DEBUG", got[0]["level"])
	assert.Equal(t, "cutoff : 1000.000000 [F]", got[0]["msg"])
	assert.Equal(t, "cutoff", got[0]["id"])
	assert.Equal(t, "freq", got[0]["kind"])
	assert.Equal(t, "1000", got[0]["value"])
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	kontrol.SetLogger(l)
	assert.Same(t, l, kontrol.Logger())
	kontrol.SetLogger(nil)
	assert.Same(t, slog.Default(), kontrol.Logger())
}

func TestNewParamsLogsSkipped(t *testing.T) {
	records := captureLog(t)
	a := kontrol.Create(kontrol.Args{s("bool"), s("a"), s("A"), f(0)})
	dup := kontrol.Create(kontrol.Args{s("bool"), s("a"), s("A"), f(1)})

	params := kontrol.NewParams(a, nil, dup)
	assert.Equal(t, 1, params.Len())
	got := records()
	require.Len(t, got, 2)
	assert.Equal(t, float64(1), got[0]["index"])
	assert.Equal(t, "invalid parameter", got[0]["err"])
	assert.Equal(t, float64(2), got[1]["index"])
	assert.Equal(t, "duplicate parameter id: a", got[1]["err"])
}

func TestParseParamsLogsEachSkipped(t *testing.T) {
	records := captureLog(t)
	_, err := kontrol.ParseParams([]kontrol.Args{
		{s("bogus"), s("b"), s("B")},
		{s("float"), s("c"), s("C")},
	})
	require.Error(t, err)
	got := records()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0]["id"])
	assert.Equal(t, "c", got[1]["id"])
}

func TestLoadParamsStopsAtFirstError(t *testing.T) {
	records := captureLog(t)
	_, err := kontrol.LoadParams(strings.NewReader("- [knob, a, A]\n- [float, b, B]\n"))
	assert.ErrorIs(t, err, kontrol.ErrUnknownType)
	assert.NotErrorIs(t, err, kontrol.ErrMissingField)
	assert.Contains(t, err.Error(), "line 1")
	assert.Empty(t, records())
}
