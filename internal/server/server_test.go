package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/piwi3910/tabbedbox/internal/config"
	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{ReadTimeout: 5, WriteTimeout: 5, MaxBodyKB: 64, CORSOrigins: []string{"*"}}
	machine := model.DefaultMachineSettings()
	machine.HoldingTabs = 0
	h := NewBoxHandler(model.DefaultInventory(), machine)
	return New(cfg, h, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

const smallBoxJSON = `{"length": 80, "width": 100, "height": 40, "thickness": 3, "tab_width": 6`

func TestHealth(t *testing.T) {
	app := newTestApp()
	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, body := do(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(body), "status", path)
	}
}

func TestGenerate_DefaultBox(t *testing.T) {
	resp, body := do(t, newTestApp(), http.MethodPost, "/api/box", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var res model.BoxResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Len(t, res.Pieces, 6)
	assert.Equal(t, 100.0, res.Settings.X)
}

func TestGenerate_EnumNamesAndNumbers(t *testing.T) {
	app := newTestApp()
	for _, bt := range []string{`"one_side_open"`, `"ONE_SIDE_OPEN"`, `2`, `"2"`} {
		resp, body := do(t, app, http.MethodPost, "/api/box", smallBoxJSON+`, "box_type": `+bt+`}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var res model.BoxResult
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Len(t, res.Pieces, 5, bt)
	}
}

func TestGenerate_InvalidEnum(t *testing.T) {
	resp, body := do(t, newTestApp(), http.MethodPost, "/api/box", smallBoxJSON+`, "layout": "spiral"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out struct{ Errors []string }
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "spiral")
}

func TestGenerate_ValidationErrors(t *testing.T) {
	resp, body := do(t, newTestApp(), http.MethodPost, "/api/box", `{"length": 80, "width": 100, "height": 40, "thickness": 20, "tab_width": 6}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out struct{ Errors []string }
	require.NoError(t, json.Unmarshal(body, &out))
	assert.GreaterOrEqual(t, len(out.Errors), 2)
	assert.Contains(t, strings.Join(out.Errors, "\n"), "material too thick")
}

func TestGenerate_InvalidJSON(t *testing.T) {
	resp, _ := do(t, newTestApp(), http.MethodPost, "/api/box", `{"length": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport_Formats(t *testing.T) {
	app := newTestApp()
	tests := []struct {
		format      string
		contentType string
		filename    string
		prefix      string
	}{
		{"svg", "image/svg+xml", "box.svg", "<?xml"},
		{"dxf", "application/dxf", "box.dxf", ""},
		{"pdf", "application/pdf", "box.pdf", "%PDF-"},
		{"labels", "application/pdf", "box.pdf", "%PDF-"},
		{"json", "application/json", "box.json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/api/box/"+tt.format, smallBoxJSON+`}`)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), tt.filename)
			assert.NotEmpty(t, body)
			assert.True(t, strings.HasPrefix(string(body), tt.prefix))
		})
	}
}

func TestExport_DXFHasEntities(t *testing.T) {
	_, body := do(t, newTestApp(), http.MethodPost, "/api/box/dxf", smallBoxJSON+`}`)
	assert.Contains(t, string(body), "LWPOLYLINE")
}

func TestExport_UnknownFormat(t *testing.T) {
	resp, _ := do(t, newTestApp(), http.MethodPost, "/api/box/png", smallBoxJSON+`}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGCode(t *testing.T) {
	resp, body := do(t, newTestApp(), http.MethodPost, "/api/box/gcode", smallBoxJSON+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "0", resp.Header.Get("X-Clamp-Collisions"))

	code := string(body)
	assert.True(t, strings.HasPrefix(code, "; tabbedbox GCode: box 80x100x40 mm"))
	assert.Contains(t, code, "; Profile: Generic")
	assert.Contains(t, code, "G21\n")
}

func TestGCode_MachineOverrideAndClamps(t *testing.T) {
	body := smallBoxJSON + `, "machine": {
		"tool_diameter": 3, "feed_rate": 800, "plunge_rate": 200, "spindle_speed": 10000,
		"safe_z": 5, "pass_depth": 1.5, "gcode_profile": "Mach3",
		"clamp_zones": [{"label": "C1", "x": -20, "y": -20, "width": 2000, "height": 2000}]
	}}`
	resp, out := do(t, newTestApp(), http.MethodPost, "/api/box/gcode", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))
	assert.NotEqual(t, "0", resp.Header.Get("X-Clamp-Collisions"))
	assert.Contains(t, string(out), "( Profile: Mach3)")
}

func TestGCode_BadMachineSettings(t *testing.T) {
	resp, _ := do(t, newTestApp(), http.MethodPost, "/api/box/gcode", smallBoxJSON+`, "machine": {"pass_depth": 0}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestNest(t *testing.T) {
	body := smallBoxJSON + `, "stocks": [{"name": "Sheet", "width": 300, "height": 200, "thickness": 3, "price_per_sheet": 4}], "waste_percent": 10}`
	resp, out := do(t, newTestApp(), http.MethodPost, "/api/box/nest", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))

	var got nestResponse
	require.NoError(t, json.Unmarshal(out, &got))
	require.NotEmpty(t, got.Nest.Sheets)
	assert.Empty(t, got.Nest.Unplaced)
	assert.Equal(t, "Sheet", got.Nest.Sheets[0].Stock.Name)

	placed := 0
	for _, s := range got.Nest.Sheets {
		placed += len(s.Placements)
	}
	assert.Equal(t, 6, placed)

	require.NotNil(t, got.Estimate)
	assert.Equal(t, 6, got.Estimate.PieceCount)
	assert.Equal(t, 10.0, got.Estimate.WastePercent)
}

func TestNest_DefaultInventory(t *testing.T) {
	resp, out := do(t, newTestApp(), http.MethodPost, "/api/box/nest", smallBoxJSON+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))

	var got nestResponse
	require.NoError(t, json.Unmarshal(out, &got))
	require.NotEmpty(t, got.Nest.Sheets)
	assert.Equal(t, 3.0, got.Nest.Sheets[0].Stock.Thickness)
}

func TestEnums(t *testing.T) {
	resp, body := do(t, newTestApp(), http.MethodGet, "/api/enums", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Enums    map[string][]model.EnumChoice `json:"enums"`
		Formats  []string                      `json:"formats"`
		Profiles []string                      `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Enums["boxtype"], 6)
	assert.Contains(t, out.Formats, "gcode")
	assert.Contains(t, out.Profiles, "Grbl")
}
