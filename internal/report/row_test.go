package report_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-reports/internal/report"
)

func TestRow_MarshalKeepsColumnOrder(t *testing.T) {
	row := report.Row{
		Columns: []string{"platform_name", "2023", "2022", "total_revenue"},
		Values:  []any{"PC", int64(5), 2.5, "12345678901234567890"},
	}

	out, err := json.Marshal(row)
	require.NoError(t, err)

	assert.Equal(t, `{"platform_name":"PC","2023":5,"2022":2.5,"total_revenue":"12345678901234567890"}`, string(out))
}

func TestRow_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal([]report.Row{{}})
	require.NoError(t, err)
	assert.Equal(t, `[{}]`, string(out))
}

func TestRow_Get(t *testing.T) {
	row := report.Row{Columns: []string{"a", "b"}, Values: []any{1, nil}}

	v, ok := row.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = row.Get("b")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = row.Get("c")
	assert.False(t, ok)
}

func TestColumn(t *testing.T) {
	rows := []report.Row{
		{Columns: []string{"genre_name"}, Values: []any{"Action"}},
		{Columns: []string{"genre_name"}, Values: []any{"RPG"}},
	}

	assert.Equal(t, []any{"Action", "RPG"}, report.Column(rows, "genre_name"))
	assert.Equal(t, []any{}, report.Column(nil, "genre_name"))
}
