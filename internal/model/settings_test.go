package model

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_OutsideDimensions(t *testing.T) {
	o := DefaultOptions()
	o.Length, o.Width, o.Height = 80, 100, 40
	o.Thickness = 3
	o.TabWidth = 6

	s, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 80.0, s.X)
	assert.Equal(t, 74.0, s.InsideX)
	assert.Equal(t, 94.0, s.InsideY)
	assert.Equal(t, 34.0, s.InsideZ)
	assert.Len(t, s.PieceTypes, 6)
}

func TestResolve_InsideDimensionsCountPresentFaces(t *testing.T) {
	o := DefaultOptions()
	o.Length, o.Width, o.Height = 80, 100, 40
	o.Thickness = 3
	o.TabWidth = 6
	o.Inside = true
	o.BoxType = BoxOneSideOpen

	s, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 86.0, s.X)
	assert.Equal(t, 106.0, s.Y)
	assert.Equal(t, 43.0, s.Z, "only the bottom adds a thickness")
	assert.Equal(t, 40.0, s.InsideZ)
}

func TestResolve_Schroff(t *testing.T) {
	o := DefaultOptions()
	o.Inside = true
	sc := DefaultSchroffOptions()
	sc.HP = 10
	sc.Rows = 2
	o.Schroff = &sc

	s, err := o.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 50.8, s.X, 1e-9)
	assert.InDelta(t, 2*(122.5+10)+10, s.Y, 1e-9)
	assert.InDelta(t, s.X-2*s.Thickness, s.InsideX, 1e-9, "schroff dimensions are outside")
	require.NotNil(t, s.Schroff)
	assert.Equal(t, 2, s.Schroff.Rows)
	assert.Equal(t, SchroffRailMountRadius, s.Schroff.RailMountRadius)
}

func TestResolve_CollectsAllProblems(t *testing.T) {
	o := DefaultOptions()
	o.Unit = "furlong"
	o.Thickness = 0
	o.LineColor = "purple"

	_, err := o.Resolve()
	require.Error(t, err)

	var verr ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr), 3)
	joined := strings.Join(verr, "\n")
	assert.Contains(t, joined, "invalid unit: furlong")
	assert.Contains(t, joined, "thickness is zero")
	assert.Contains(t, joined, "invalid line color: purple")
}

func TestValidate_Messages(t *testing.T) {
	base := func() BoxSettings {
		o := DefaultOptions()
		s, err := o.Resolve()
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		modify func(*BoxSettings)
		want   string
		not    string
	}{
		{"tab too large", func(s *BoxSettings) { s.TabWidth = 40 }, "tab size too large", ""},
		{"tab too small", func(s *BoxSettings) { s.TabWidth = 2 }, "tab size too small", ""},
		{"too thick", func(s *BoxSettings) { s.Thickness = 40; s.TabWidth = 40 }, "material too thick", ""},
		{"kerf too large", func(s *BoxSettings) { s.Kerf = 40; s.Spacing = 40 }, "kerf too large", ""},
		{"negative kerf", func(s *BoxSettings) { s.Kerf = -0.1 }, "kerf must not be negative", ""},
		{"spacing too small", func(s *BoxSettings) { s.Kerf = 1; s.Spacing = 0.5 }, "spacing too small", ""},
		{"spacing too large", func(s *BoxSettings) { s.Spacing = 2000 }, "spacing too large", ""},
		{"zero dimension", func(s *BoxSettings) { s.Z = 0 }, "dimensions must be positive", "tab size too large"},
		{"negative length", func(s *BoxSettings) { s.X = -100 }, "dimensions must be positive", "tab size too large"},
		{"inside collapsed", func(s *BoxSettings) { s.InsideY = 0 }, "inside dimensions must be positive", ""},
		{"negative thickness", func(s *BoxSettings) { s.Thickness = -3 }, "thickness must be positive", "thickness is zero"},
		{"zero tab", func(s *BoxSettings) { s.TabWidth = 0 }, "tab width must be positive", "tab size too small"},
		{"negative tab", func(s *BoxSettings) { s.TabWidth = -5 }, "tab width must be positive", "tab size too small"},
		{"NaN thickness", func(s *BoxSettings) { s.Thickness = math.NaN() }, "thickness must be a finite number", "material too thick"},
		{"infinite length", func(s *BoxSettings) { s.X = math.Inf(1) }, "length must be a finite number", "spacing too large"},
		{"infinite kerf", func(s *BoxSettings) { s.Kerf = math.Inf(1) }, "kerf must be a finite number", "spacing too small"},
		{"NaN spacing", func(s *BoxSettings) { s.Spacing = math.NaN() }, "spacing must be a finite number", ""},
		{"NaN tab", func(s *BoxSettings) { s.TabWidth = math.NaN() }, "tab width must be a finite number", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.modify(&s)
			errs := s.Validate()
			require.NotEmpty(t, errs)
			assert.Contains(t, errs.Error(), tt.want)
			if tt.not != "" {
				assert.NotContains(t, errs.Error(), tt.not)
			}
		})
	}

	assert.Empty(t, base().Validate())
}

func TestResolve_RejectsNegativeInsideLength(t *testing.T) {
	o := DefaultOptions()
	o.Inside = true
	o.Length = -1

	_, err := o.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inside dimensions must be positive")
	assert.NotContains(t, err.Error(), "tab size too large")
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "one", ValidationErrors{"one"}.Error())
	assert.Equal(t, "2 problems: one; two", ValidationErrors{"one", "two"}.Error())
}

func TestParseDividerSpacing(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		got, err := ParseDividerSpacing("", 94, 3, 1, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{45.5, 45.5}, got)
	})

	t.Run("partial list fills the rest", func(t *testing.T) {
		got, err := ParseDividerSpacing("20; 30", 100, 2, 3, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{20, 30, 22, 22}, got)
	})

	t.Run("reversed", func(t *testing.T) {
		got, err := ParseDividerSpacing("10;20", 42, 4, 2, true)
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 20, 10}, got)
	})

	t.Run("no dividers", func(t *testing.T) {
		got, err := ParseDividerSpacing("1;2;3", 50, 3, 0, false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("too many values", func(t *testing.T) {
		_, err := ParseDividerSpacing("1;2;3", 50, 3, 1, false)
		assert.ErrorContains(t, err, "too many divider spacing values")
	})

	t.Run("exceeds space", func(t *testing.T) {
		_, err := ParseDividerSpacing("60", 50, 3, 1, false)
		assert.ErrorContains(t, err, "exceed available space")
	})

	t.Run("short of space", func(t *testing.T) {
		_, err := ParseDividerSpacing("10;10", 50, 3, 1, false)
		assert.ErrorContains(t, err, "less than available space")
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := ParseDividerSpacing("ten", 50, 3, 1, false)
		assert.ErrorContains(t, err, "invalid divider spacing")
	})

	t.Run("even split absorbs rounding", func(t *testing.T) {
		const thickness = 3
		for inside := 20.0; inside <= 400; inside += 0.5 {
			for n := 1; n <= 6; n++ {
				available := inside - float64(n)*thickness
				if available <= 0 {
					continue
				}
				got, err := ParseDividerSpacing("", inside, thickness, n, true)
				require.NoError(t, err, "inside %g, %d dividers", inside, n)
				require.Len(t, got, n+1)
				var sum float64
				for _, v := range got {
					assert.Greater(t, v, 0.0)
					sum += v
				}
				assert.InDelta(t, available, sum, 1e-9, "inside %g, %d dividers", inside, n)
			}
		}
	})

	t.Run("listed widths within rounding", func(t *testing.T) {
		got, err := ParseDividerSpacing("0.1;0.2", 3.3, 3, 1, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2}, got)
	})
}

func TestResolve_DividerSpacingErrorsAreValidationErrors(t *testing.T) {
	o := DefaultOptions()
	o.DivX = 1
	o.DivXSpacing = "500"
	_, err := o.Resolve()

	var verr ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.True(t, strings.HasPrefix(verr[0], "divider X spacing: "))
}
