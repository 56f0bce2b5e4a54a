package query

import (
	"bytes"
	"encoding/json"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

type aggKind int

const (
	aggDistinct aggKind = iota
	aggCount
	aggFirst
)

// keyField names one component of a group key in the output record.
type keyField struct {
	name   string
	source column
}

// rollup declares one aggregated output field. source is unused for aggCount.
type rollup struct {
	name   string
	kind   aggKind
	source column
}

// strategy is a grouping mode: which columns form the key and what each group rolls up.
type strategy struct {
	keys    []keyField
	rollups []rollup
}

const maxKeyFields = 4

type groupKey [maxKeyFields]cell

var strategies = map[GroupMode]strategy{
	GroupPlayer: {
		keys: []keyField{
			{name: players.ColFirstName, source: colFirstName},
			{name: players.ColLastName, source: colLastName},
			{name: players.ColAdjustedFirstName, source: colAdjustedFirstName},
			{name: players.ColAdjustedLastName, source: colAdjustedLastName},
		},
		rollups: []rollup{
			{name: "teams", kind: aggDistinct, source: colTeam},
			{name: "seasons", kind: aggDistinct, source: colSeason},
			{name: "positions", kind: aggDistinct, source: colPosition},
			{name: "height", kind: aggFirst, source: colHeight},
			{name: "weight", kind: aggFirst, source: colWeight},
			{name: "nationality", kind: aggFirst, source: colNationality},
			{name: "birthdate", kind: aggFirst, source: colBirthdate},
		},
	},
	GroupTeam: {
		keys: []keyField{{name: "team", source: colTeam}},
		rollups: []rollup{
			{name: "totalPlayers", kind: aggCount},
			{name: "seasons", kind: aggDistinct, source: colSeason},
			{name: "positions", kind: aggDistinct, source: colPosition},
			{name: "nationalities", kind: aggDistinct, source: colNationality},
		},
	},
	GroupSeason: {
		keys: []keyField{{name: "season", source: colSeason}},
		rollups: []rollup{
			{name: "totalPlayers", kind: aggCount},
			{name: "teams", kind: aggDistinct, source: colTeam},
			{name: "positions", kind: aggDistinct, source: colPosition},
			{name: "nationalities", kind: aggDistinct, source: colNationality},
		},
	},
}

// ApplyGroup collapses rows into one record per distinct key, in order of first appearance.
// GroupNone and unknown modes return nil.
func ApplyGroup(ds players.Dataset, mode GroupMode) []GroupRecord {
	s, ok := strategies[mode]
	if !ok {
		return nil
	}
	return s.apply(ds)
}

func (s strategy) apply(ds players.Dataset) []GroupRecord {
	index := make(map[groupKey]*accumulator)
	var order []*accumulator

	for _, row := range ds {
		k := s.keyOf(row)
		acc, ok := index[k]
		if !ok {
			acc = newAccumulator(k, len(s.rollups))
			index[k] = acc
			order = append(order, acc)
		}
		acc.add(row, s.rollups)
	}

	records := make([]GroupRecord, 0, len(order))
	for _, acc := range order {
		records = append(records, s.record(acc))
	}
	return records
}

func (s strategy) keyOf(row players.Row) groupKey {
	var k groupKey
	for i, kf := range s.keys {
		k[i] = read(kf.source, row)
	}
	return k
}

func (s strategy) record(acc *accumulator) GroupRecord {
	fields := make([]Field, 0, len(s.keys)+len(s.rollups))
	for i, kf := range s.keys {
		fields = append(fields, Field{Name: kf.name, Value: acc.key[i].jsonValue()})
	}
	for i, ru := range s.rollups {
		var v any
		switch ru.kind {
		case aggCount:
			v = acc.count
		case aggFirst:
			v = acc.first[i].jsonValue()
		case aggDistinct:
			v = acc.sets[i].values
		}
		fields = append(fields, Field{Name: ru.name, Value: v})
	}
	return GroupRecord{Fields: fields}
}

type accumulator struct {
	key   groupKey
	count int
	first []cell
	sets  []*distinctSet
}

func newAccumulator(k groupKey, n int) *accumulator {
	return &accumulator{
		key:   k,
		first: make([]cell, n),
		sets:  make([]*distinctSet, n),
	}
}

func (a *accumulator) add(row players.Row, rollups []rollup) {
	a.count++
	for i, ru := range rollups {
		switch ru.kind {
		case aggFirst:
			// first row wins, even when its value is absent
			if a.count == 1 {
				a.first[i] = read(ru.source, row)
			}
		case aggDistinct:
			if a.sets[i] == nil {
				a.sets[i] = newDistinctSet()
			}
			if v, ok := ru.source(row); ok {
				a.sets[i].add(v)
			}
		}
	}
}

// distinctSet keeps values in first-seen order without duplicates.
type distinctSet struct {
	seen   map[any]struct{}
	values []any
}

func newDistinctSet() *distinctSet {
	return &distinctSet{seen: make(map[any]struct{}), values: []any{}}
}

func (d *distinctSet) add(v any) {
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
}

// Field is one named value of a GroupRecord.
type Field struct {
	Name  string
	Value any
}

// GroupRecord is the summary of one group. Fields encode as a JSON object in declaration order.
type GroupRecord struct {
	Fields []Field
}

// Get returns the value of the named field.
func (g GroupRecord) Get(name string) (any, bool) {
	for _, f := range g.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the fields in order.
func (g GroupRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range g.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
