package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BoxType selects which faces of the box are generated.
type BoxType int

const (
	BoxFullyEnclosed    BoxType = 1 // All six faces
	BoxOneSideOpen      BoxType = 2 // No top
	BoxTwoSidesOpen     BoxType = 3 // No top, no back
	BoxThreeSidesOpen   BoxType = 4 // No top, back or right
	BoxOppositeEndsOpen BoxType = 5 // No top or bottom
	BoxTwoPanelsOnly    BoxType = 6 // Left and bottom only
)

func (b BoxType) String() string {
	switch b {
	case BoxFullyEnclosed:
		return "FULLY_ENCLOSED"
	case BoxOneSideOpen:
		return "ONE_SIDE_OPEN"
	case BoxTwoSidesOpen:
		return "TWO_SIDES_OPEN"
	case BoxThreeSidesOpen:
		return "THREE_SIDES_OPEN"
	case BoxOppositeEndsOpen:
		return "OPPOSITE_ENDS_OPEN"
	case BoxTwoPanelsOnly:
		return "TWO_PANELS_ONLY"
	default:
		return fmt.Sprintf("BoxType(%d)", int(b))
	}
}

// PieceTypes returns the faces generated for the box type, in the order
// they are listed for that type.
func (b BoxType) PieceTypes() []PieceType {
	switch b {
	case BoxOneSideOpen:
		return []PieceType{PieceBottom, PieceFront, PieceBack, PieceLeft, PieceRight}
	case BoxTwoSidesOpen:
		return []PieceType{PieceBottom, PieceFront, PieceLeft, PieceRight}
	case BoxThreeSidesOpen:
		return []PieceType{PieceBottom, PieceFront, PieceLeft}
	case BoxOppositeEndsOpen:
		return []PieceType{PieceBack, PieceLeft, PieceRight, PieceFront}
	case BoxTwoPanelsOnly:
		return []PieceType{PieceLeft, PieceBottom}
	default:
		return []PieceType{PieceBack, PieceLeft, PieceBottom, PieceRight, PieceTop, PieceFront}
	}
}

// TabSymmetry controls how tabs mirror across a panel.
type TabSymmetry int

const (
	SymmetryXY            TabSymmetry = 0 // Each panel symmetric about both axes
	SymmetryRotate        TabSymmetry = 1 // Rotationally symmetric (waffle blocks)
	SymmetryAntisymmetric TabSymmetry = 2 // Deprecated
)

func (s TabSymmetry) String() string {
	switch s {
	case SymmetryXY:
		return "XY_SYMMETRIC"
	case SymmetryRotate:
		return "ROTATE_SYMMETRIC"
	case SymmetryAntisymmetric:
		return "ANTISYMMETRIC"
	default:
		return fmt.Sprintf("TabSymmetry(%d)", int(s))
	}
}

// TabType selects plain tabs or dogbone relief for milled corners.
type TabType int

const (
	TabRegular TabType = 0 // Laser cutting
	TabDogbone TabType = 1 // Milling
)

func (t TabType) String() string {
	switch t {
	case TabRegular:
		return "REGULAR"
	case TabDogbone:
		return "DOGBONE"
	default:
		return fmt.Sprintf("TabType(%d)", int(t))
	}
}

// Layout selects how the pieces are placed on the output sheet.
type Layout int

const (
	LayoutDiagrammatic  Layout = 1
	LayoutThreePiece    Layout = 2
	LayoutInlineCompact Layout = 3
)

func (l Layout) String() string {
	switch l {
	case LayoutDiagrammatic:
		return "DIAGRAMMATIC"
	case LayoutThreePiece:
		return "THREE_PIECE"
	case LayoutInlineCompact:
		return "INLINE_COMPACT"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// DividerKeying selects which faces divider tabs key into.
type DividerKeying int

const (
	KeyAllSides     DividerKeying = 0
	KeyFloorCeiling DividerKeying = 1
	KeyWalls        DividerKeying = 2
	KeyNone         DividerKeying = 3
)

func (k DividerKeying) String() string {
	switch k {
	case KeyAllSides:
		return "ALL_SIDES"
	case KeyFloorCeiling:
		return "FLOOR_CEILING"
	case KeyWalls:
		return "WALLS"
	case KeyNone:
		return "NONE"
	default:
		return fmt.Sprintf("DividerKeying(%d)", int(k))
	}
}

// Walls reports whether dividers key into the side walls.
func (k DividerKeying) Walls() bool { return k == KeyAllSides || k == KeyWalls }

// Floor reports whether dividers key into the floor and ceiling.
func (k DividerKeying) Floor() bool { return k == KeyAllSides || k == KeyFloorCeiling }

// PieceType identifies a face of the box or a divider.
type PieceType int

const (
	PieceTop PieceType = iota
	PieceBottom
	PieceFront
	PieceBack
	PieceLeft
	PieceRight
	PieceDividerX
	PieceDividerY
)

func (p PieceType) String() string {
	switch p {
	case PieceTop:
		return "Top"
	case PieceBottom:
		return "Bottom"
	case PieceFront:
		return "Front"
	case PieceBack:
		return "Back"
	case PieceLeft:
		return "Left"
	case PieceRight:
		return "Right"
	case PieceDividerX:
		return "DividerX"
	case PieceDividerY:
		return "DividerY"
	default:
		return fmt.Sprintf("PieceType(%d)", int(p))
	}
}

func (p PieceType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PieceType) UnmarshalText(b []byte) error {
	for t := PieceTop; t <= PieceDividerY; t++ {
		if strings.EqualFold(t.String(), string(b)) {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", string(b))
}

// IsDivider reports whether the piece is an internal divider.
func (p PieceType) IsDivider() bool { return p == PieceDividerX || p == PieceDividerY }

// SideName identifies an edge of a piece. Edges are walked clockwise
// starting at the top.
type SideName int

const (
	SideA SideName = iota // top
	SideB                 // right
	SideC                 // bottom
	SideD                 // left
)

func (s SideName) String() string {
	if s < SideA || s > SideD {
		return fmt.Sprintf("SideName(%d)", int(s))
	}
	return string(rune('A' + int(s)))
}

// enumAliases lists the lower-case names accepted for each enum value.
var (
	boxTypeAliases = map[string]BoxType{
		"fully_enclosed":     BoxFullyEnclosed,
		"one_side_open":      BoxOneSideOpen,
		"two_sides_open":     BoxTwoSidesOpen,
		"three_sides_open":   BoxThreeSidesOpen,
		"opposite_ends_open": BoxOppositeEndsOpen,
		"two_panels_only":    BoxTwoPanelsOnly,
	}
	symmetryAliases = map[string]TabSymmetry{
		"xy_symmetric":     SymmetryXY,
		"rotate_symmetric": SymmetryRotate,
		"antisymmetric":    SymmetryAntisymmetric,
	}
	tabTypeAliases = map[string]TabType{
		"regular": TabRegular,
		"laser":   TabRegular,
		"dogbone": TabDogbone,
		"mill":    TabDogbone,
	}
	layoutAliases = map[string]Layout{
		"diagrammatic":   LayoutDiagrammatic,
		"three_piece":    LayoutThreePiece,
		"inline_compact": LayoutInlineCompact,
		"inline":         LayoutInlineCompact,
		"compact":        LayoutInlineCompact,
	}
	keyingAliases = map[string]DividerKeying{
		"all_sides":     KeyAllSides,
		"floor_ceiling": KeyFloorCeiling,
		"walls":         KeyWalls,
		"none":          KeyNone,
	}
)

// parseEnum resolves an enum from its number, its upper-case name or a
// lower-case alias. Spaces and dashes are treated as underscores.
func parseEnum[T ~int](kind, s string, aliases map[string]T, valid func(T) bool) (T, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if valid(T(n)) {
			return T(n), nil
		}
		return 0, fmt.Errorf("invalid %s value %d", kind, n)
	}
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// ParseBoxType parses "1", "FULLY_ENCLOSED" or "fully-enclosed".
func ParseBoxType(s string) (BoxType, error) {
	return parseEnum("box type", s, boxTypeAliases, func(b BoxType) bool {
		return b >= BoxFullyEnclosed && b <= BoxTwoPanelsOnly
	})
}

func ParseTabSymmetry(s string) (TabSymmetry, error) {
	return parseEnum("tab symmetry", s, symmetryAliases, func(v TabSymmetry) bool {
		return v >= SymmetryXY && v <= SymmetryAntisymmetric
	})
}

func ParseTabType(s string) (TabType, error) {
	return parseEnum("tab type", s, tabTypeAliases, func(v TabType) bool {
		return v == TabRegular || v == TabDogbone
	})
}

func ParseLayout(s string) (Layout, error) {
	return parseEnum("layout", s, layoutAliases, func(v Layout) bool {
		return v >= LayoutDiagrammatic && v <= LayoutInlineCompact
	})
}

func ParseDividerKeying(s string) (DividerKeying, error) {
	return parseEnum("divider keying", s, keyingAliases, func(v DividerKeying) bool {
		return v >= KeyAllSides && v <= KeyNone
	})
}

// EnumChoice describes one accepted value of an option.
type EnumChoice struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// EnumChoices lists the accepted values of every enumerated option,
// keyed by option name.
func EnumChoices() map[string][]EnumChoice {
	out := map[string][]EnumChoice{}
	for b := BoxFullyEnclosed; b <= BoxTwoPanelsOnly; b++ {
		out["boxtype"] = append(out["boxtype"], EnumChoice{int(b), b.String()})
	}
	for s := SymmetryXY; s <= SymmetryAntisymmetric; s++ {
		out["tabsymmetry"] = append(out["tabsymmetry"], EnumChoice{int(s), s.String()})
	}
	for t := TabRegular; t <= TabDogbone; t++ {
		out["tabtype"] = append(out["tabtype"], EnumChoice{int(t), t.String()})
	}
	for l := LayoutDiagrammatic; l <= LayoutInlineCompact; l++ {
		out["layout"] = append(out["layout"], EnumChoice{int(l), l.String()})
	}
	for k := KeyAllSides; k <= KeyNone; k++ {
		out["keydiv"] = append(out["keydiv"], EnumChoice{int(k), k.String()})
	}
	return out
}
