package report

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Row is one result row. Columns keep the order the engine returned them in,
// and that order is preserved when the row is encoded.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value of a column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Column projects one column out of every row.
func Column(rows []Row, column string) []any {
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		v, _ := row.Get(column)
		out = append(out, v)
	}
	return out
}
