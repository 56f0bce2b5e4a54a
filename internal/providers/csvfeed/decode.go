package csvfeed

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// ErrMissingHeader is returned for a feed without a header row.
var ErrMissingHeader = errors.New("csv feed has no header row")

// DecodeReport summarizes what Decode saw in the feed.
type DecodeReport struct {
	Rows int
	// MissingColumns are known columns absent from the header; every row lacks them.
	MissingColumns []string
	// UnknownColumns are header names that were ignored.
	UnknownColumns []string
	// InvalidCells counts numeric cells that could not be parsed and were dropped.
	InvalidCells    int
	InvalidByColumn map[string]int
}

type cellSetter func(row *players.Row, raw string) bool

var setters = map[string]cellSetter{
	players.ColFirstName:         stringSetter(func(r *players.Row) **string { return &r.FirstName }),
	players.ColLastName:          stringSetter(func(r *players.Row) **string { return &r.LastName }),
	players.ColAdjustedFirstName: stringSetter(func(r *players.Row) **string { return &r.AdjustedFirstName }),
	players.ColAdjustedLastName:  stringSetter(func(r *players.Row) **string { return &r.AdjustedLastName }),
	players.ColTeam:              stringSetter(func(r *players.Row) **string { return &r.Team }),
	players.ColPosition:          stringSetter(func(r *players.Row) **string { return &r.Position }),
	players.ColNationality:       stringSetter(func(r *players.Row) **string { return &r.Nationality }),
	players.ColBirthdate:         stringSetter(func(r *players.Row) **string { return &r.Birthdate }),
	players.ColSeason:            setSeason,
	players.ColHeight:            floatSetter(func(r *players.Row) **float64 { return &r.Height }),
	players.ColWeight:            floatSetter(func(r *players.Row) **float64 { return &r.Weight }),
}

type boundColumn struct {
	name  string
	index int
	set   cellSetter
}

// Decode reads a CSV feed whose header names the columns. Column order does not matter,
// unknown columns are ignored and NA tokens become absent values.
func Decode(r io.Reader) (players.Dataset, DecodeReport, error) {
	report := DecodeReport{InvalidByColumn: make(map[string]int)}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, ErrMissingHeader
	}
	if err != nil {
		return nil, report, errors.Wrap(err, "read csv header")
	}

	bound := bindHeader(header, &report)
	if len(bound) == 0 {
		return nil, report, errors.Wrapf(ErrMissingHeader, "no known columns in %q", strings.Join(header, ","))
	}

	ds := make(players.Dataset, 0, 256)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, report, errors.Wrapf(err, "read csv row %d", len(ds)+1)
		}

		var row players.Row
		for _, col := range bound {
			if col.index >= len(record) {
				continue
			}
			raw := record[col.index]
			if isNA(raw) {
				continue
			}
			if !col.set(&row, raw) {
				report.InvalidCells++
				report.InvalidByColumn[col.name]++
			}
		}
		ds = append(ds, row)
	}

	report.Rows = len(ds)
	return ds, report, nil
}

func bindHeader(header []string, report *DecodeReport) []boundColumn {
	seen := make(map[string]bool, len(header))
	bound := make([]boundColumn, 0, len(players.Columns))
	for i, name := range header {
		name = normalizeHeader(name, i)
		set, ok := setters[name]
		if !ok {
			report.UnknownColumns = append(report.UnknownColumns, name)
			continue
		}
		if seen[name] {
			// first occurrence wins
			continue
		}
		seen[name] = true
		bound = append(bound, boundColumn{name: name, index: i, set: set})
	}
	for _, col := range players.Columns {
		if !seen[col] {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	return bound
}

func normalizeHeader(name string, index int) string {
	if index == 0 {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.TrimSpace(name)
}

func isNA(raw string) bool {
	_, ok := naTokens[raw]
	return ok
}

func stringSetter(field func(*players.Row) **string) cellSetter {
	return func(row *players.Row, raw string) bool {
		v := raw
		*field(row) = &v
		return true
	}
}

func floatSetter(field func(*players.Row) **float64) cellSetter {
	return func(row *players.Row, raw string) bool {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false
		}
		*field(row) = &v
		return true
	}
}

// setSeason accepts integers and integral floats such as "2023.0".
func setSeason(row *players.Row, raw string) bool {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		row.Season = &v
		return true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return false
	}
	v := int(f)
	row.Season = &v
	return true
}
