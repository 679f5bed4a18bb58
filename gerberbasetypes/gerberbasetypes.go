// Base types for Gerber parsing and processing
package gerberbasetypes

// Apertures
const GerberApertureDef = "AD"

// lowest and highest D-codes an aperture can be bound to
const (
	MinApertureCode = 10
	MaxApertureCode = 999
)

type GerberApType int

const (
	AptypeCircle GerberApType = iota + 1
	AptypeRectangle
	AptypeObround
	AptypePoly
	AptypeMacro
)

func (ga GerberApType) String() string {
	switch ga {
	case AptypeCircle:
		return "circle aperture"
	case AptypeRectangle:
		return "rectangle aperture"
	case AptypeObround:
		return "obround (oval) aperture"
	case AptypePoly:
		return "polygon aperture"
	case AptypeMacro:
		return "macro aperture"
	default:
	}
	return "Unknown aperture type"
}

type HoleType int

const (
	HoleNone HoleType = iota
	HoleRound
	HoleRect
)

func (h HoleType) String() string {
	switch h {
	case HoleNone:
		return "no hole"
	case HoleRound:
		return "round hole"
	case HoleRect:
		return "rectangular hole"
	default:
	}
	return "Unknown hole"
}

type PolType int

const (
	PolTypeDark PolType = iota + 1
	PolTypeClear
)

func (p PolType) String() string {
	switch p {
	case PolTypeDark:
		return "Polarity: dark"
	case PolTypeClear:
		return "Polarity: clear"
	default:

	}
	return "Unknown polarity"
}

// ActType is the current D-code. OpcodeNone follows a flash.
type ActType int

const (
	OpcodeNone ActType = iota
	OpcodeD01_DRAW
	OpcodeD02_MOVE
	OpcodeD03_FLASH
)

func (act ActType) String() string {
	switch act {
	case OpcodeNone:
		return "Opcode none"
	case OpcodeD01_DRAW:
		return "Opcode D01 (DRAW)"
	case OpcodeD02_MOVE:
		return "Opcode D02 (MOVE)"
	case OpcodeD03_FLASH:
		return "Opcode D03 (FLASH)"
	default:

	}
	return "Unknown OpCode"
}

type QuadMode int

const (
	QuadModeSingle QuadMode = iota + 1
	QuadModeMulti
)

func (q QuadMode) String() string {
	switch q {
	case QuadModeSingle:
		return "QuadMode: Single"
	case QuadModeMulti:
		return "QuadMode: Multi"
	default:

	}
	return "Unknown QuadMode"
}

type IPmode int

const (
	IPModeLinear IPmode = iota + 1
	IPModeCwC
	IPModeCCwC
)

func (ipm IPmode) String() string {
	switch ipm {
	case IPModeLinear:
		return "Linear interpolation"
	case IPModeCwC:
		return "Clockwise interpolation"
	case IPModeCCwC:
		return "Counter-clockwise interpolation"
	default:

	}
	return "Unknown interpolation"
}

type Unit int

const (
	UnitInch Unit = iota + 1
	UnitMM
)

func (u Unit) String() string {
	switch u {
	case UnitInch:
		return "inch"
	case UnitMM:
		return "mm"
	default:
	}
	return "Unknown unit"
}
