package report

import (
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Kind tells the normalizer how to present a column.
type Kind int

const (
	// Auto keeps text as text and native numbers as numbers.
	Auto Kind = iota
	// Numeric converts numeric strings to JSON numbers.
	Numeric
	// Decimal renders numbers as decimal strings.
	Decimal
	// Rounded converts to a JSON number rounded to two decimal places.
	Rounded
	// Text renders any scalar as a string.
	Text
)

const (
	// maxSafeInteger is the largest integer a JSON consumer using IEEE-754
	// doubles can represent exactly.
	maxSafeInteger = 1<<53 - 1
	// maxFloatDigits is the number of significant digits a float64 holds
	// without loss.
	maxFloatDigits = 15
	roundedPlaces  = 2
)

var roundingContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(40)
	ctx.Rounding = apd.RoundHalfUp
	return ctx
}()

// Policy maps column names to kinds. Unlisted columns use Auto.
type Policy map[string]Kind

// Columns returns a policy assigning kind to every listed column.
func Columns(kind Kind, columns ...string) Policy {
	p := make(Policy, len(columns))
	for _, c := range columns {
		p[c] = kind
	}
	return p
}

// With returns a copy of p with kind assigned to columns.
func (p Policy) With(kind Kind, columns ...string) Policy {
	out := make(Policy, len(p)+len(columns))
	for c, k := range p {
		out[c] = k
	}
	for _, c := range columns {
		out[c] = kind
	}
	return out
}

// Normalize converts every value in rows in place and returns rows.
func (p Policy) Normalize(rows []Row) []Row {
	for _, row := range rows {
		for i, c := range row.Columns {
			row.Values[i] = normalizeValue(row.Values[i], p[c])
		}
	}
	return rows
}

func normalizeValue(v any, kind Kind) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return normalizeString(string(x), kind)
	case string:
		return normalizeString(x, kind)
	case int64:
		return normalizeInt(x, kind)
	case int32:
		return normalizeInt(int64(x), kind)
	case int16:
		return normalizeInt(int64(x), kind)
	case int8:
		return normalizeInt(int64(x), kind)
	case int:
		return normalizeInt(int64(x), kind)
	case float64:
		return normalizeFloat(x, kind)
	case float32:
		return normalizeFloat(float64(x), kind)
	case bool:
		if kind == Text {
			return strconv.FormatBool(x)
		}
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return x
	}
}

func normalizeInt(i int64, kind Kind) any {
	if kind == Text || kind == Decimal {
		return strconv.FormatInt(i, 10)
	}
	if i > maxSafeInteger || i < -maxSafeInteger {
		return strconv.FormatInt(i, 10)
	}
	return i
}

func normalizeFloat(f float64, kind Kind) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	switch kind {
	case Text, Decimal:
		return strconv.FormatFloat(f, 'f', -1, 64)
	case Rounded:
		return math.Round(f*100) / 100
	default:
		return f
	}
}

func normalizeString(s string, kind Kind) any {
	switch kind {
	case Numeric, Rounded, Decimal:
	default:
		return s
	}

	d, _, err := apd.NewFromString(s)
	if err != nil {
		// not a number; leave the text alone
		return s
	}
	if d.Form != apd.Finite {
		return nil
	}

	switch kind {
	case Decimal:
		return d.Text('f')
	case Rounded:
		var r apd.Decimal
		if _, err := roundingContext.Quantize(&r, d, -roundedPlaces); err != nil {
			return d.Text('f')
		}
		return decimalNumber(&r)
	default:
		return decimalNumber(d)
	}
}

// decimalNumber returns d as int64 or float64 when that is lossless for a
// JSON consumer, and as a decimal string otherwise.
func decimalNumber(d *apd.Decimal) any {
	if d.Exponent >= 0 {
		i, err := d.Int64()
		if err == nil && i <= maxSafeInteger && i >= -maxSafeInteger {
			return i
		}
		return d.Text('f')
	}
	if d.NumDigits() > maxFloatDigits {
		return d.Text('f')
	}
	f, err := d.Float64()
	if err != nil {
		return d.Text('f')
	}
	return f
}
