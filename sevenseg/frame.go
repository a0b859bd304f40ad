package sevenseg

import "fmt"

// SegmentCount is the number of segments in one digit position.
const SegmentCount = 7

// Frame holds the on/off state of the seven segments of one digit
// position, in the fixed order the shift register expects. The zero
// value is a fully blank digit.
type Frame [SegmentCount]bool

// Digit table indexes beyond the numerals 0-9.
const (
	idxBlank = 10
	idxMinus = 11
	idxAnim  = 12

	// AnimationFrames is the length of the idle chase animation.
	AnimationFrames = 6
)

// MinValue and MaxValue bound the numeric display domain.
const (
	MinValue = -99
	MaxValue = 99
)

// digitTable1 maps table indexes to segment frames for position 1
// (the tens digit). The two positions are wired differently, so each
// has its own table. Indexes 0-9 are the numerals, 10 is blank, 11 is
// the minus glyph, 12-17 are the chase animation frames.
var digitTable1 = [idxAnim + AnimationFrames]Frame{
	{true, true, true, true, true, false, true},    // 0
	{false, false, false, false, true, false, true}, // 1
	{true, true, false, true, true, true, false},   // 2
	{true, false, false, true, true, true, true},   // 3
	{false, false, true, false, true, true, true},  // 4
	{true, false, true, true, false, true, true},   // 5
	{true, true, true, true, false, true, true},    // 6
	{false, false, false, true, true, false, true}, // 7
	{true, true, true, true, true, true, true},     // 8
	{true, false, true, true, true, true, true},    // 9
	{},                                             // blank
	{false, false, false, false, false, true, false}, // minus
	{false, false, false, true, false, false, false}, // chase a
	{false, false, false, false, true, false, false}, // chase b
	{false, false, false, false, false, false, true}, // chase c
	{true, false, false, false, false, false, false}, // chase d
	{false, true, false, false, false, false, false}, // chase e
	{false, false, true, false, false, false, false}, // chase f
}

// digitTable2 is the position 2 (ones digit) counterpart of digitTable1.
var digitTable2 = [idxAnim + AnimationFrames]Frame{
	{true, true, true, true, false, true, true},     // 0
	{false, false, false, false, false, true, true}, // 1
	{true, false, true, true, true, true, false},    // 2
	{false, false, true, true, true, true, true},    // 3
	{false, true, false, false, true, true, true},   // 4
	{false, true, true, true, true, false, true},    // 5
	{true, true, true, true, true, false, true},     // 6
	{false, false, true, false, false, true, true},  // 7
	{true, true, true, true, true, true, true},      // 8
	{false, true, true, true, true, true, true},     // 9
	{},                                              // blank
	{false, false, false, false, true, false, false}, // minus
	{false, false, true, false, false, false, false}, // chase a
	{false, false, false, false, false, true, false}, // chase b
	{false, false, false, false, false, false, true}, // chase c
	{false, false, false, true, false, false, false}, // chase d
	{true, false, false, false, false, false, false}, // chase e
	{false, true, false, false, false, false, false}, // chase f
}

// SegmentLayout maps the bit positions of a Frame to the conventional
// segment letters 'a'-'g' of one digit position.
type SegmentLayout [SegmentCount]byte

// Segment wiring of the two digit positions. Position 1 shifts out
// d,e,f,a,b,g,c; position 2 shifts out e,f,a,d,g,b,c.
var (
	Layout1 = SegmentLayout{'d', 'e', 'f', 'a', 'b', 'g', 'c'}
	Layout2 = SegmentLayout{'e', 'f', 'a', 'd', 'g', 'b', 'c'}
)

// Lit returns the conventional letters of the segments lit in f.
func (l SegmentLayout) Lit(f Frame) []byte {
	var lit []byte
	for i, on := range f {
		if on {
			lit = append(lit, l[i])
		}
	}
	return lit
}

type commandKind int

const (
	kindNumber commandKind = iota
	kindBlank
	kindDashes
	kindCode
	kindAnimation
)

// Command is one renderable display state. Construct commands with
// Number, Blank, Dashes, Code or Animation; the zero value is not a
// valid command.
type Command struct {
	kind  commandKind
	value int
	code  string
	frame int
}

// Number displays a signed temperature in [MinValue, MaxValue] with
// the celsius unit lit.
func Number(v int) Command { return Command{kind: kindNumber, value: v} }

// Blank turns every segment and flag off.
func Blank() Command { return Command{kind: kindBlank} }

// Dashes shows the minus glyph in both positions, used while the
// uplink is down.
func Dashes() Command { return Command{kind: kindDashes} }

// Code shows a one or two digit numeric status code without the
// celsius unit. Single digit codes render with a leading zero.
func Code(code string) Command { return Command{kind: kindCode, code: code} }

// Animation shows frame n of the idle chase; n cycles modulo
// AnimationFrames.
func Animation(n int) Command { return Command{kind: kindAnimation, frame: n} }

// String describes the command for logs and the status endpoint.
func (c Command) String() string {
	switch c.kind {
	case kindNumber:
		return fmt.Sprintf("number(%d)", c.value)
	case kindBlank:
		return "blank"
	case kindDashes:
		return "dashes"
	case kindCode:
		return "code(" + c.code + ")"
	case kindAnimation:
		return fmt.Sprintf("animation(%d)", c.frame)
	}
	return "invalid"
}

// Encode translates a command into the two segment frames and the
// minus/celsius flag bits of one 16-bit display update. Encode is
// pure: it has no state and identical commands always produce
// identical output.
//
// Numbers outside [MinValue, MaxValue] are a caller contract
// violation and are rejected, never clamped. A single digit number
// suppresses the leading zero by blanking position 1; the sign of a
// single digit negative is carried solely by the minus flag bit, the
// position 1 glyph stays blank.
func Encode(cmd Command) (frameA, frameB Frame, minus, celsius bool, err error) {
	switch cmd.kind {
	case kindBlank:
		return digitTable1[idxBlank], digitTable2[idxBlank], false, false, nil

	case kindDashes:
		return digitTable1[idxMinus], digitTable2[idxMinus], false, false, nil

	case kindCode:
		tens, ones, cerr := splitCode(cmd.code)
		if cerr != nil {
			return Frame{}, Frame{}, false, false, cerr
		}
		return digitTable1[tens], digitTable2[ones], false, false, nil

	case kindNumber:
		v := cmd.value
		if v < MinValue || v > MaxValue {
			return Frame{}, Frame{}, false, false,
				fmt.Errorf("sevenseg: value %d outside [%d,%d]", v, MinValue, MaxValue)
		}
		minus = v < 0
		if minus {
			v = -v
		}
		tens := v / 10
		ones := v % 10
		if tens == 0 {
			tens = idxBlank // leading zero suppression
		}
		return digitTable1[tens], digitTable2[ones], minus, true, nil

	case kindAnimation:
		n := cmd.frame % AnimationFrames
		if n < 0 {
			n += AnimationFrames
		}
		return digitTable1[idxAnim+n], digitTable2[idxAnim+n], false, false, nil
	}

	return Frame{}, Frame{}, false, false, fmt.Errorf("sevenseg: invalid command")
}

// splitCode validates a numeric status code and returns the table
// indexes of its two positions.
func splitCode(code string) (tens, ones int, err error) {
	if len(code) == 0 || len(code) > 2 {
		return 0, 0, fmt.Errorf("sevenseg: status code %q must be 1 or 2 digits", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("sevenseg: status code %q is not numeric", code)
		}
	}
	ones = int(code[len(code)-1] - '0')
	if len(code) == 2 {
		tens = int(code[0] - '0')
	}
	return tens, ones, nil
}

// LookupDigit recovers the numeral a frame encodes for the given
// position (1 or 2). It reports false for blank, the minus glyph,
// animation frames and unknown patterns.
func LookupDigit(position int, f Frame) (int, bool) {
	table := &digitTable1
	if position == 2 {
		table = &digitTable2
	}
	for d := 0; d <= 9; d++ {
		if table[d] == f {
			return d, true
		}
	}
	return 0, false
}
