package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies a parsed motion command.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0 traverse
	MoveFeed                    // G1 cutting move
	MovePlunge                  // G1 straight down
	MoveRetract                 // Straight up, or any G0 that rises
	MoveArc                     // G2/G3
)

func (m MoveType) String() string {
	switch m {
	case MoveRapid:
		return "rapid"
	case MoveFeed:
		return "feed"
	case MovePlunge:
		return "plunge"
	case MoveRetract:
		return "retract"
	case MoveArc:
		return "arc"
	}
	return "unknown"
}

// GCodeMove is one motion command with the position it started from.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64

	// Arc centre offset from the start point and direction, set for MoveArc
	I, J      float64
	Clockwise bool
}

var wordRe = regexp.MustCompile(`([XYZFIJ])(-?\d*\.?\d+)`)

// motionCodes maps the G words this parser follows to their motion.
var motionCodes = map[string]MoveType{
	"G0": MoveRapid, "G00": MoveRapid,
	"G1": MoveFeed, "G01": MoveFeed,
	"G2": MoveArc, "G02": MoveArc,
	"G3": MoveArc, "G03": MoveArc,
}

// plungeTolerance ignores Z jitter when telling plunges and retracts from
// feed moves.
const plungeTolerance = 0.001

// ParseGCode extracts the motion commands of a program in absolute
// coordinates. Comments in either syntax and non-motion lines are skipped.
// Coordinates and feed rate are modal.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove
	var x, y, z, feed float64

	for _, raw := range strings.Split(code, "\n") {
		line := strings.ToUpper(stripComments(raw))
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		motion, ok := motionCodes[fields[0]]
		if !ok {
			continue
		}

		m := GCodeMove{FromX: x, FromY: y, FromZ: z, ToX: x, ToY: y, ToZ: z, FeedRate: feed}
		for _, w := range wordRe.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(w[2], 64)
			if err != nil {
				continue
			}
			switch w[1] {
			case "X":
				m.ToX = v
			case "Y":
				m.ToY = v
			case "Z":
				m.ToZ = v
			case "F":
				m.FeedRate = v
			case "I":
				m.I = v
			case "J":
				m.J = v
			}
		}

		if motion == MoveArc {
			m.Type = MoveArc
			m.Clockwise = fields[0] == "G2" || fields[0] == "G02"
		} else {
			m.Type = classifyMove(motion == MoveRapid, m)
		}
		moves = append(moves, m)
		x, y, z, feed = m.ToX, m.ToY, m.ToZ, m.FeedRate
	}
	return moves
}

// stripComments removes a trailing ";" comment and the first "(...)" comment.
func stripComments(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexByte(line, '('); i >= 0 {
		if j := strings.IndexByte(line, ')'); j > i {
			line = line[:i] + line[j+1:]
		}
	}
	return strings.TrimSpace(line)
}

func classifyMove(rapid bool, m GCodeMove) MoveType {
	dz := m.ToZ - m.FromZ
	vertical := m.FromX == m.ToX && m.FromY == m.ToY

	switch {
	case rapid && dz > 0:
		return MoveRetract
	case rapid:
		return MoveRapid
	case vertical && dz < -plungeTolerance:
		return MovePlunge
	case vertical && dz > plungeTolerance:
		return MoveRetract
	}
	return MoveFeed
}
