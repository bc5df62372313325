package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/tabbedbox/internal/engine"
	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallBox is an 80x100x40 box in 3mm stock.
func smallBox() model.BoxOptions {
	o := model.DefaultOptions()
	o.Length, o.Width, o.Height = 80, 100, 40
	o.Thickness = 3
	o.TabWidth = 6
	return o
}

func buildResult(t *testing.T, o model.BoxOptions) model.BoxResult {
	t.Helper()
	s, err := o.Resolve()
	require.NoError(t, err)
	res, err := engine.New(s).Generate(context.Background())
	require.NoError(t, err)
	return res
}

func rackBox() model.BoxOptions {
	o := smallBox()
	sc := model.DefaultSchroffOptions()
	sc.HP = 20
	o.Schroff = &sc
	o.Height = 60
	return o
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"svg", FormatSVG},
		{"SVG", FormatSVG},
		{".dxf", FormatDXF},
		{"labels", FormatLabels},
		{"nc", FormatGCode},
		{"gcode", FormatGCode},
		{" xlsx ", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("png")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/box.STL")
	require.NoError(t, err)
	assert.Equal(t, FormatSTL, f)

	f, err = FormatFromPath("out.tap")
	require.NoError(t, err)
	assert.Equal(t, FormatGCode, f)

	_, err = FormatFromPath("box")
	assert.Error(t, err)
}

func TestWrite_GCodeNotHandled(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FormatGCode, buildResult(t, smallBox()))
	assert.Error(t, err)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	res := buildResult(t, smallBox())
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var back model.BoxResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.Pieces, len(res.Pieces))
	assert.Equal(t, res.Pieces[0].Name, back.Pieces[0].Name)
	assert.Equal(t, res.Pieces[0].Paths[0].Points, back.Pieces[0].Paths[0].Points)
}

func TestWriteFile_AllFormats(t *testing.T) {
	res := buildResult(t, smallBox())
	dir := t.TempDir()

	for _, f := range []Format{FormatSVG, FormatDXF, FormatPDF, FormatLabels, FormatXLSX, FormatJSON} {
		path := filepath.Join(dir, "box."+string(f))
		require.NoError(t, WriteFile(path, f, res), f)

		info, err := os.Stat(path)
		require.NoError(t, err, f)
		assert.Greater(t, info.Size(), int64(0), f)
	}
}

func TestExporters_RejectEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	empty := model.BoxResult{}
	assert.Error(t, WriteSVG(&buf, empty))
	assert.Error(t, WriteDXF(&buf, empty))
	assert.Error(t, ExportPDF(&buf, empty))
	assert.Error(t, ExportLabels(&buf, empty))
	assert.Error(t, ExportCutList(&buf, empty, nil))
	assert.Error(t, ExportSTL(&buf, empty, 10))
}
