package board

// CastleDirection names one of the four castling rights.
type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteShort
	CastleDirectionWhiteLong
	CastleDirectionBlackShort
	CastleDirectionBlackLong
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteShort:
		return "White 0-0"
	case CastleDirectionWhiteLong:
		return "White 0-0-0"
	case CastleDirectionBlackShort:
		return "Black 0-0"
	case CastleDirectionBlackLong:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsShort() bool {
	return d == CastleDirectionWhiteShort || d == CastleDirectionBlackShort
}

// maskCastleRights maps each direction to its bit in a CastleRights mask.
var maskCastleRights = [5]CastleRights{
	CastleDirectionWhiteShort: 0b1000,
	CastleDirectionWhiteLong:  0b0100,
	CastleDirectionBlackShort: 0b0010,
	CastleDirectionBlackLong:  0b0001,
}

// CastleRights is the 4-bit {white-short, white-long, black-short,
// black-long} castling rights mask (spec.md §3).
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteShort]|maskCastleRights[CastleDirectionWhiteLong]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackShort]|maskCastleRights[CastleDirectionBlackLong]) != 0
}

// clearSide drops both castling rights for s, returning whether anything
// changed.
func (c *CastleRights) clearSide(s Side) bool {
	before := *c
	if s == SideWhite {
		c.Set(CastleDirectionWhiteShort, false)
		c.Set(CastleDirectionWhiteLong, false)
	} else {
		c.Set(CastleDirectionBlackShort, false)
		c.Set(CastleDirectionBlackLong, false)
	}
	return *c != before
}
