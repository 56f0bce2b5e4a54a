package query

import (
	"encoding/json"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// Request bundles the specs of a single query.
type Request struct {
	Filter FilterSpec
	Group  GroupSpec
	Page   PageSpec
}

// Result is the output of one query. It encodes as a bare array of records,
// or as {"data": [...], "stats": {...}} when Stats is set.
type Result struct {
	Mode    GroupMode
	Records []FlatRecord
	Groups  []GroupRecord
	Page    PageInfo
	Stats   *Stats

	// UnsupportedGroupBy holds a group_by selector that was ignored.
	UnsupportedGroupBy string
}

// Data returns the records of the page: flat records or group records depending on Mode.
func (r Result) Data() any {
	if r.Mode == GroupNone {
		if r.Records == nil {
			return []FlatRecord{}
		}
		return r.Records
	}
	if r.Groups == nil {
		return []GroupRecord{}
	}
	return r.Groups
}

// Len returns how many records the page holds.
func (r Result) Len() int {
	if r.Mode == GroupNone {
		return len(r.Records)
	}
	return len(r.Groups)
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Stats == nil {
		return json.Marshal(r.Data())
	}
	return json.Marshal(struct {
		Data  any    `json:"data"`
		Stats *Stats `json:"stats"`
	}{Data: r.Data(), Stats: r.Stats})
}

// Execute runs a query over ds: filter, group or pass through, sanitize, paginate, attach stats.
// It keeps no state and never fails for well-typed input.
func Execute(ds players.Dataset, filter FilterSpec, group GroupSpec, page PageSpec) Result {
	mode, ok := ParseGroupMode(group.By)
	result := Result{Mode: mode}
	if !ok {
		result.UnsupportedGroupBy = group.By
	}

	filtered := ApplyFilter(ds, filter)

	var info PageInfo
	if mode == GroupNone {
		// rows are sanitized per page; the result is the same as sanitizing first
		p := Paginate(filtered, page)
		result.Records = flatRecords(p.Items)
		info = p.PageInfo
	} else {
		p := Paginate(ApplyGroup(filtered, mode), page)
		result.Groups = p.Items
		info = p.PageInfo
	}
	result.Page = info

	if group.IncludeStats {
		stats := Report(filtered, len(ds), filter, group, info)
		result.Stats = &stats
	}
	return result
}

// Run is Execute for a bundled Request.
func Run(ds players.Dataset, req Request) Result {
	return Execute(ds, req.Filter, req.Group, req.Page)
}
