package export

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// svgCounts parses the document and counts groups and paths.
func svgCounts(t *testing.T, data []byte) (groups, paths int, root xml.StartElement) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	first := true
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if first {
			root = se
			first = false
		}
		switch se.Name.Local {
		case "g":
			groups++
		case "path":
			paths++
		}
	}
	return groups, paths, root
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func TestWriteSVG_WellFormed(t *testing.T) {
	res := buildResult(t, smallBox())
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, res))

	groups, paths, root := svgCounts(t, buf.Bytes())
	assert.Equal(t, "svg", root.Name.Local)
	assert.Equal(t, len(res.Pieces), groups)
	assert.Equal(t, len(res.Pieces), paths)

	w, h := documentSize(res)
	assert.True(t, strings.HasSuffix(attr(root, "width"), "mm"))
	assert.Contains(t, attr(root, "viewBox"), "0 0 ")
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)
}

func TestWriteSVG_Circles(t *testing.T) {
	res := buildResult(t, rackBox())
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, res))

	circles, drawn := 0, 0
	for _, p := range res.Pieces {
		circles += len(p.Circles)
		drawn += len(p.Paths)
	}
	require.Greater(t, circles, 0)

	_, paths, _ := svgCounts(t, buf.Bytes())
	assert.Equal(t, drawn+circles, paths)
	assert.Contains(t, buf.String(), " A 2.5 2.5 0 1 0 ")
}

func TestWriteSVG_Deterministic(t *testing.T) {
	res := buildResult(t, smallBox())
	var a, b bytes.Buffer
	require.NoError(t, WriteSVG(&a, res))
	require.NoError(t, WriteSVG(&b, res))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteSVG_Stroke(t *testing.T) {
	o := smallBox()
	o.LineColor = "red"
	o.Hairline = true
	res := buildResult(t, o)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, res))
	assert.Contains(t, buf.String(), "stroke:#FF0000")
	assert.Contains(t, buf.String(), "vector-effect:non-scaling-stroke")

	o.Hairline = false
	o.LineThickness = 0.2
	buf.Reset()
	require.NoError(t, WriteSVG(&buf, buildResult(t, o)))
	assert.Contains(t, buf.String(), "stroke-width:0.2")
	assert.NotContains(t, buf.String(), "vector-effect")
}

func TestElementID(t *testing.T) {
	id := ElementID("DividerX 1", 3)
	assert.True(t, strings.HasPrefix(id, "DividerX1-"))
	assert.Len(t, id, len("DividerX1-")+8)
	assert.Equal(t, id, ElementID("DividerX 1", 3))
	assert.NotEqual(t, id, ElementID("DividerX 1", 4))
}
