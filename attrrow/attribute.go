package attrrow

import (
	"fmt"

	"github.com/hnimtadd/vtrow/color"
	"github.com/hnimtadd/vtrow/internal/utils"
	"github.com/hnimtadd/vtrow/intern"
	"github.com/mitchellh/hashstructure/v2"
)

// ColorType tags where a Color's value comes from.
type ColorType int

const (
	ColorTypeNone ColorType = iota
	ColorTypePalette
	ColorTypeRGB
)

// Color is the render color for one channel (foreground, background,
// or underline) of an Attribute. Adapted from the teacher's
// style.Color.
type Color struct {
	Type    ColorType
	Palette uint8
	RGB     color.RGB
}

func (c Color) String() string {
	switch c.Type {
	case ColorTypeNone:
		return "Color.none"
	case ColorTypePalette:
		return fmt.Sprintf("Color.palette{%d}", c.Palette)
	case ColorTypeRGB:
		return fmt.Sprintf("Color.rgb{%d, %d, %d}", c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return "Color.unknown"
	}
}

// UnderlineType mirrors the handful of SGR underline styles a
// terminal distinguishes.
type UnderlineType int

const (
	UnderlineTypeNone UnderlineType = iota
	UnderlineTypeSingle
	UnderlineTypeDouble
	UnderlineTypeCurly
	UnderlineTypeDotted
	UnderlineTypeDashed
)

// Attribute is the opaque render-attribute token the row engine
// forwards to the AttributeRow without inspecting (spec §6). Adapted
// from the teacher's style.Style, trimmed to the fields a renderer
// actually keys off of per column.
type Attribute struct {
	ForegroundColor Color
	BackgroundColor Color
	UnderlineColor  Color

	Bold          bool
	Italic        bool
	Faint         bool
	Blink         bool
	Inverse       bool
	Invisible     bool
	Strikethrough bool
	Overline      bool
	Underline     UnderlineType
}

// Default is the zero-value attribute: no colors, no flags.
var Default = Attribute{}

func (a Attribute) IsDefault() bool {
	return a == Attribute{}
}

// Hash satisfies intern.Item. Grounded on the teacher's
// style.Style.Hash, which hashes the whole struct with hashstructure
// rather than hand-rolling a combining function — the style/attribute
// struct shape changes often enough during development that a
// reflection-based hash is worth the cost.
func (a Attribute) Hash() uint64 {
	hashed, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash attribute: %v", err))
	return hashed
}

// Equals satisfies intern.Item.
func (a Attribute) Equals(other intern.Item) bool {
	return a.Hash() == other.Hash()
}

// Resolve returns the RGB value a color channel renders as against
// palette. A nil palette falls back to color.DefaultPalette. Grounded
// on the teacher's style.Style.FG/BG/UColor, which resolve a Color the
// same way against a page's live palette; here there is no live page
// palette to vary against a cell's content tag, so this collapses the
// teacher's three near-identical methods into the one Color.Resolve
// every channel shares.
func (c Color) Resolve(palette *color.Palette) (color.RGB, bool) {
	if c.Type == ColorTypeNone {
		return color.RGB{}, false
	}
	if palette == nil {
		palette = (*color.Palette)(&color.DefaultPalette)
	}
	switch c.Type {
	case ColorTypePalette:
		return palette[c.Palette], true
	case ColorTypeRGB:
		return c.RGB, true
	default:
		return color.RGB{}, false
	}
}

// ResolveForeground is Color.Resolve for ForegroundColor, additionally
// applying the classic "bold means bright" treatment the teacher's FG
// applies when boldIsBright is set: a bold attribute with one of the
// eight standard palette colors resolves to its bright counterpart
// instead.
func (a Attribute) ResolveForeground(palette *color.Palette, boldIsBright bool) (color.RGB, bool) {
	fg := a.ForegroundColor
	if boldIsBright && a.Bold && fg.Type == ColorTypePalette && fg.Palette < uint8(color.ColorTypeBrightBlack) {
		fg.Palette += uint8(color.ColorTypeBrightBlack)
	}
	return fg.Resolve(palette)
}
