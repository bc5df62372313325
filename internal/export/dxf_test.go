package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestSaveDXF_ReadBack(t *testing.T) {
	res := buildResult(t, rackBox())
	path := filepath.Join(t.TempDir(), "box.dxf")
	require.NoError(t, SaveDXF(path, res))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	var polys, circles, wantPolys, wantCircles int
	for _, p := range res.Pieces {
		wantPolys += len(p.Paths)
		wantCircles += len(p.Circles)
	}
	for _, ent := range d.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			polys++
			assert.GreaterOrEqual(t, len(e.Vertices), 4)
		case *entity.Circle:
			circles++
			assert.InDelta(t, 2.5, e.Radius, 1e-9)
		}
	}
	assert.Equal(t, wantPolys, polys)
	assert.Equal(t, wantCircles, circles)
	assert.Greater(t, circles, 0)
}

func TestDXFLayer(t *testing.T) {
	assert.Equal(t, "DividerY_2", dxfLayer("DividerY 2"))
	assert.Equal(t, "Front", dxfLayer("Front"))
}
