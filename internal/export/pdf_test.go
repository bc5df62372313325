package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPDF(t *testing.T) {
	o := smallBox()
	o.DivX = 1
	res := buildResult(t, o)

	var buf bytes.Buffer
	require.NoError(t, ExportPDF(&buf, res))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestLayoutScale(t *testing.T) {
	assert.Equal(t, 1.0, layoutScale(100, 50))
	assert.Equal(t, 1.0, layoutScale(0, 0))

	s := layoutScale(1000, 100)
	assert.InDelta(t, (pageWidth-marginLeft-marginRight)/1000, s, 1e-9)
	assert.Less(t, s, 1.0)
}

func TestLabelFontSize(t *testing.T) {
	assert.Equal(t, 8.0, labelFontSize(100, 50))
	assert.Equal(t, 7.0, labelFontSize(30, 100))
	assert.Equal(t, 6.0, labelFontSize(10, 10))
}
