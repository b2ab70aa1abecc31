// Package op defines the Befunge instruction set and decodes grid cells into
// instructions.
package op

// Code identifies an operation to execute.
type Code uint8

const (
	Nop Code = iota

	// Literals
	Push

	// Arithmetic and logic
	Add
	Subtract
	Multiply
	Divide
	Modulo
	Not
	Greater

	// Direction
	Right
	Left
	Up
	Down
	Random
	HorizontalIf
	VerticalIf

	// Stack
	Dup
	Swap
	Pop

	// I/O
	OutputInt
	OutputChar
	InputInt
	InputChar

	// Grid
	Put
	Get

	// Control
	StringMode
	Bridge
	End

	codeCount
)

// Instruction is a decoded cell. Value holds the literal for Push and is zero
// for every other code.
type Instruction struct {
	Code  Code
	Value byte
}

// String returns the opcode name, with the literal for Push.
func (i Instruction) String() string {
	if i.Code == Push {
		return i.Code.String() + " " + string(rune('0'+i.Value))
	}
	return i.Code.String()
}

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Symbol byte
	// Pops is the number of stack values the operation consumes when they
	// are all available.
	Pops int
}

// String returns the opcode name, for example "ADD".
func (c Code) String() string {
	return GetInfo(c).Name
}

var (
	infos   [codeCount]Info
	decoded [256]Instruction
)

func init() {
	ops := []Info{
		{Code: Nop, Name: "NOP"},
		{Code: Push, Name: "PUSH"},
		{Code: Add, Name: "ADD", Symbol: '+', Pops: 2},
		{Code: Subtract, Name: "SUBTRACT", Symbol: '-', Pops: 2},
		{Code: Multiply, Name: "MULTIPLY", Symbol: '*', Pops: 2},
		{Code: Divide, Name: "DIVIDE", Symbol: '/', Pops: 2},
		{Code: Modulo, Name: "MODULO", Symbol: '%', Pops: 2},
		{Code: Not, Name: "NOT", Symbol: '!', Pops: 1},
		{Code: Greater, Name: "GREATER", Symbol: '`', Pops: 2},
		{Code: Right, Name: "RIGHT", Symbol: '>'},
		{Code: Left, Name: "LEFT", Symbol: '<'},
		{Code: Up, Name: "UP", Symbol: '^'},
		{Code: Down, Name: "DOWN", Symbol: 'v'},
		{Code: Random, Name: "RANDOM", Symbol: '?'},
		{Code: HorizontalIf, Name: "HORIZONTAL_IF", Symbol: '_', Pops: 1},
		{Code: VerticalIf, Name: "VERTICAL_IF", Symbol: '|', Pops: 1},
		{Code: Dup, Name: "DUP", Symbol: ':'},
		{Code: Swap, Name: "SWAP", Symbol: '\\', Pops: 2},
		{Code: Pop, Name: "POP", Symbol: '$', Pops: 1},
		{Code: OutputInt, Name: "OUTPUT_INT", Symbol: '.', Pops: 1},
		{Code: OutputChar, Name: "OUTPUT_CHAR", Symbol: ',', Pops: 1},
		{Code: InputInt, Name: "INPUT_INT", Symbol: '&'},
		{Code: InputChar, Name: "INPUT_CHAR", Symbol: '~'},
		{Code: Put, Name: "PUT", Symbol: 'p', Pops: 3},
		{Code: Get, Name: "GET", Symbol: 'g', Pops: 2},
		{Code: StringMode, Name: "STRING_MODE", Symbol: '"'},
		{Code: Bridge, Name: "BRIDGE", Symbol: '#'},
		{Code: End, Name: "END", Symbol: '@'},
	}
	for _, o := range ops {
		infos[o.Code] = o
		if o.Symbol != 0 {
			decoded[o.Symbol] = Instruction{Code: o.Code}
		}
	}
	for d := byte(0); d <= 9; d++ {
		decoded['0'+d] = Instruction{Code: Push, Value: d}
	}
}

// GetInfo returns information about the given opcode. Unknown codes return
// the zero Info.
func GetInfo(c Code) Info {
	if c >= codeCount {
		return Info{}
	}
	return infos[c]
}

// Decode maps a cell value to its instruction. Digits decode to Push with the
// digit's value, and any byte without a meaning decodes to Nop.
func Decode(b byte) Instruction {
	return decoded[b]
}
