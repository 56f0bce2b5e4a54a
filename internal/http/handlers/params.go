package handlers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/player-records-service/internal/config"
	"github.com/preston-bernstein/player-records-service/internal/query"
)

// paramError reports a query parameter that could not be used.
type paramError struct {
	Param  string
	Reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// parseQueryRequest turns /players query parameters into a query.Request.
// Empty values count as unset.
func parseQueryRequest(values url.Values) (query.Request, error) {
	req := query.Request{Page: query.DefaultPageSpec()}

	var err error
	if req.Page.Page, err = intParam(values, "page", query.DefaultPage); err != nil {
		return query.Request{}, err
	}
	if req.Page.Limit, err = intParam(values, "limit", query.DefaultLimit); err != nil {
		return query.Request{}, err
	}
	if req.Page.Page < 1 {
		return query.Request{}, &paramError{Param: "page", Reason: "must be >= 1"}
	}
	if req.Page.Limit < 1 || req.Page.Limit > query.MaxLimit {
		return query.Request{}, &paramError{Param: "limit", Reason: fmt.Sprintf("must be between 1 and %d", query.MaxLimit)}
	}

	f := &req.Filter
	f.Team = stringParam(values, "team")
	f.Position = stringParam(values, "position")
	f.Nationality = stringParam(values, "nationality")
	f.FirstName = stringParam(values, "first_name")
	f.LastName = stringParam(values, "last_name")
	f.Birthdate = stringParam(values, "birthdate")

	if f.Season, err = optionalIntParam(values, "season"); err != nil {
		return query.Request{}, err
	}
	if f.Height, err = floatParam(values, "height"); err != nil {
		return query.Request{}, err
	}
	if f.Weight, err = floatParam(values, "weight"); err != nil {
		return query.Request{}, err
	}

	if by := stringParam(values, "group_by"); by != nil {
		req.Group.By = *by
	}
	if raw := stringParam(values, "include_stats"); raw != nil {
		v, ok := config.ParseBool(*raw)
		if !ok {
			return query.Request{}, &paramError{Param: "include_stats", Reason: "must be a boolean"}
		}
		req.Group.IncludeStats = v
	}
	return req, nil
}

func stringParam(values url.Values, name string) *string {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func intParam(values url.Values, name string, fallback int) (int, error) {
	v, err := optionalIntParam(values, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return fallback, nil
	}
	return *v, nil
}

func optionalIntParam(values url.Values, name string) (*int, error) {
	raw := stringParam(values, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, &paramError{Param: name, Reason: "must be an integer"}
	}
	return &v, nil
}

func floatParam(values url.Values, name string) (*float64, error) {
	raw := stringParam(values, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &paramError{Param: name, Reason: "must be a finite number"}
	}
	return &v, nil
}
