package datatable

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSV(t *testing.T) {
	columns := []Column{{Key: "name", Label: "Name"}, {Key: "age", Label: "Age", Type: TypeNumber}}
	rows := []Row{
		NewRow("1", map[string]interface{}{"name": "Bob", "age": 30}),
		NewRow("2", map[string]interface{}{"name": "Ann", "age": 25.5}),
	}
	assert.Equal(t, "Name,Age\nBob,30\nAnn,25.5", ToCSV(columns, rows))
}

func TestToCSVHeaderOnly(t *testing.T) {
	assert.Equal(t, "Name", ToCSV([]Column{{Key: "name", Label: "Name"}}, nil))
}

func TestToCSVMissingValuesAreEmpty(t *testing.T) {
	columns := []Column{{Key: "a"}, {Key: "b"}}
	rows := []Row{NewRow("1", map[string]interface{}{"b": "x"})}
	assert.Equal(t, "a,b\n,x", ToCSV(columns, rows))
}

func TestToCSVQuotesSpecialCharacters(t *testing.T) {
	columns := []Column{{Key: "note", Label: "Note, long"}, {Key: "n", Label: "N"}}
	tricky := "He said \"hi\", then left\nfor good"
	rows := []Row{NewRow("1", map[string]interface{}{"note": tricky, "n": 1})}

	out := ToCSV(columns, rows)
	assert.True(t, strings.HasPrefix(out, "\"Note, long\",N\n"))
	assert.Contains(t, out, `"He said ""hi"", then left`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Note, long", "N"}, records[0])
	assert.Equal(t, []string{tricky, "1"}, records[1])
}

func TestWriteCSVUsesModelOrder(t *testing.T) {
	store := newPeopleStore(t)
	m := NewTableModel(store, DefaultConfig())
	m.SetQuery("example.org")
	m.SetSort("name")
	m.SetSort("name")

	var buf bytes.Buffer
	columns, rows := m.ExportRows()
	require.NoError(t, WriteCSV(&buf, columns, rows))

	want := "Name,Age,Email,Status,Note\n" +
		"Eve,25,eve@example.org,active,\n" +
		"Cid,30,cid@example.org,active,\n"
	assert.Equal(t, want, buf.String())
}

func TestToCSVSingleColumnKeepsEmptyRows(t *testing.T) {
	columns := []Column{{Key: "note", Label: "Note"}}
	rows := []Row{
		NewRow("1", map[string]interface{}{"note": "x"}),
		NewRow("2", map[string]interface{}{"note": nil}),
		NewRow("3", map[string]interface{}{"note": "y"}),
		NewRow("4", map[string]interface{}{"note": ""}),
	}

	out := ToCSV(columns, rows)
	assert.Equal(t, "Note\nx\n\"\"\ny\n\"\"", out)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Note"}, {"x"}, {""}, {"y"}, {""}}, records)
}
