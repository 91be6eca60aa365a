package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tabled struct{ rows [][]string }

func (t tabled) Tables() []Data {
	return []Data{{Title: "first", Headers: []string{"a"}, Rows: t.rows}, {Title: "second"}}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": "", "JSON": FormatJSON, "yaml": FormatYAML, "Table": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatters(t *testing.T) {
	data := map[string]any{"name": "ROOM.csv", "rows": 2}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, data))
	assert.JSONEq(t, `{"name":"ROOM.csv","rows":2}`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, data))
	assert.Contains(t, buf.String(), "name: ROOM.csv")
	assert.Contains(t, buf.String(), "rows: 2")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.JSONEq(t, `{"name":"ROOM.csv","rows":2}`, buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&buf, Data{
		Headers: []string{"Field", "Column"},
		Rows:    [][]string{{"RoomCode", "Code"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RoomCode")
	assert.Contains(t, buf.String(), "Code")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, tabled{rows: [][]string{{"x1"}}}))
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "x1")
	assert.Contains(t, buf.String(), "second")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Total Rows", Title("totalRows"))
	assert.Equal(t, "Row Rotation", Title("row_rotation"))
	assert.Equal(t, "Rooms", Title("rooms"))
}
