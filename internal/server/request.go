package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// boxRequest is the body accepted by every /api/box endpoint. Options
// default to model.DefaultOptions; the string enum fields shadow the
// integer ones of the embedded options and accept names, aliases or
// numbers.
type boxRequest struct {
	model.BoxOptions

	BoxType     enumValue `json:"box_type,omitempty"`
	TabSymmetry enumValue `json:"tab_symmetry,omitempty"`
	TabType     enumValue `json:"tab_type,omitempty"`
	Layout      enumValue `json:"layout,omitempty"`
	KeyDividers enumValue `json:"key_dividers,omitempty"`

	// G-code only
	Machine *model.MachineSettings `json:"machine,omitempty"`

	// Nesting only
	Stocks       []model.StockPreset `json:"stocks,omitempty"`
	EdgeTrim     float64             `json:"edge_trim,omitempty"`
	WastePercent float64             `json:"waste_percent,omitempty"`
}

// enumValue holds an enum given either as a JSON string or a number.
type enumValue string

func (e *enumValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = enumValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("enum must be a name or a number, got %s", b)
	}
	*e = enumValue(n.String())
	return nil
}

// requestError is reported to the client as {"errors": [...]}.
type requestError struct {
	status int
	errors []string
}

func (e *requestError) Error() string {
	return strings.Join(e.errors, "; ")
}

// decodeBoxRequest parses a request body. An empty body selects the
// default box.
func decodeBoxRequest(body []byte) (boxRequest, error) {
	req := boxRequest{BoxOptions: model.DefaultOptions()}
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &requestError{status: 400, errors: []string{fmt.Sprintf("invalid json: %v", err)}}
	}
	return req, nil
}

// options applies the enum strings and returns the box options, or a 422
// error listing every bad value.
func (r boxRequest) options() (model.BoxOptions, error) {
	o := r.BoxOptions
	var errs []string
	parse := func(v enumValue, apply func(string) error) {
		if v == "" {
			return
		}
		if err := apply(string(v)); err != nil {
			errs = append(errs, err.Error())
		}
	}

	parse(r.BoxType, func(s string) (err error) { o.BoxType, err = model.ParseBoxType(s); return })
	parse(r.TabSymmetry, func(s string) (err error) { o.TabSymmetry, err = model.ParseTabSymmetry(s); return })
	parse(r.TabType, func(s string) (err error) { o.TabType, err = model.ParseTabType(s); return })
	parse(r.Layout, func(s string) (err error) { o.Layout, err = model.ParseLayout(s); return })
	parse(r.KeyDividers, func(s string) (err error) { o.KeyDividers, err = model.ParseDividerKeying(s); return })

	if len(errs) > 0 {
		return o, &requestError{status: 422, errors: errs}
	}
	return o, nil
}
