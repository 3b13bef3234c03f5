package compiler

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// OPCODE_TOTAL_BYTES is the width of the opcode byte itself, preceding any
// operand bytes in an encoded instruction.
const OPCODE_TOTAL_BYTES = 1

// Bytecode is a compiled chunk: an instruction stream paired with the
// constant pool it indexes via LOAD_CONST.
//
// Fields:
//   - Instructions: An array of instructions defined by opcodes and
//     their operands
//   - ConstantsPool: An array containing all the constant values from the source code.
type Bytecode struct {
	Instructions  Instructions
	ConstantsPool []any
}

type Opcode byte

type Instructions []byte

// opcodes
// iota generates a distinct byte for each bytecode.
const (
	NOOP Opcode = iota
	EOF
	POP
	DUP
	SWAP

	LOAD_CONST
	LOAD_VAR
	STORE_VAR

	ADD
	SUB
	MUL
	DIV
	MOD
	NEG
	NOT

	EQ
	NEQ
	LT
	GT
	LTE
	GTE

	AND
	OR

	JUMP
	JUMP_IF_FALSE
	LOOP

	CALL
	RETURN

	NEW_ARRAY
	ARRAY_PUSH
	GET_INDEX

	PRINT
)

// Represents a definition of an opcode.
// Fields:
//   - Name: The human-readable name for the opcode e.g "LOAD_CONST"
//   - OperandWidths: The number of bytes each operand takes up.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

// definitions gives each opcode's mnemonic and operand widths. LOAD_CONST,
// LOAD_VAR, and STORE_VAR address an 8-bit slot/constant index (one byte);
// jumps carry a 16-bit big-endian offset (two bytes); CALL carries a
// function-table index and an argument count, both single bytes.
var definitions = map[Opcode]*OpCodeDefinition{
	NOOP: {Name: "NOOP", OperandWidths: []int{}},
	EOF:  {Name: "EOF", OperandWidths: []int{}},
	POP:  {Name: "POP", OperandWidths: []int{}},
	DUP:  {Name: "DUP", OperandWidths: []int{}},
	SWAP: {Name: "SWAP", OperandWidths: []int{}},

	LOAD_CONST: {Name: "LOAD_CONST", OperandWidths: []int{1}},
	LOAD_VAR:   {Name: "LOAD_VAR", OperandWidths: []int{1}},
	STORE_VAR:  {Name: "STORE_VAR", OperandWidths: []int{1}},

	ADD: {Name: "ADD", OperandWidths: []int{}},
	SUB: {Name: "SUB", OperandWidths: []int{}},
	MUL: {Name: "MUL", OperandWidths: []int{}},
	DIV: {Name: "DIV", OperandWidths: []int{}},
	MOD: {Name: "MOD", OperandWidths: []int{}},
	NEG: {Name: "NEG", OperandWidths: []int{}},
	NOT: {Name: "NOT", OperandWidths: []int{}},

	EQ:  {Name: "EQ", OperandWidths: []int{}},
	NEQ: {Name: "NEQ", OperandWidths: []int{}},
	LT:  {Name: "LT", OperandWidths: []int{}},
	GT:  {Name: "GT", OperandWidths: []int{}},
	LTE: {Name: "LTE", OperandWidths: []int{}},
	GTE: {Name: "GTE", OperandWidths: []int{}},

	AND: {Name: "AND", OperandWidths: []int{}},
	OR:  {Name: "OR", OperandWidths: []int{}},

	JUMP:          {Name: "JUMP", OperandWidths: []int{2}},
	JUMP_IF_FALSE: {Name: "JUMP_IF_FALSE", OperandWidths: []int{2}},
	LOOP:          {Name: "LOOP", OperandWidths: []int{2}},

	CALL:   {Name: "CALL", OperandWidths: []int{1, 1}},
	RETURN: {Name: "RETURN", OperandWidths: []int{}},

	NEW_ARRAY:  {Name: "NEW_ARRAY", OperandWidths: []int{}},
	ARRAY_PUSH: {Name: "ARRAY_PUSH", OperandWidths: []int{}},
	GET_INDEX:  {Name: "GET_INDEX", OperandWidths: []int{}},

	PRINT: {Name: "PRINT", OperandWidths: []int{}},
}

func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode: '%d' undefined", op)
	}
	return def, nil
}

// MakeInstruction constructs a bytecode instruction from an opcode and its
// operands. Operands are encoded in big-endian order, each at the width its
// opcode definition declares (1 byte for constant/slot/call operands, 2
// bytes for jump offsets).
//
// Parameters:
//   - op: The opcode representing the instruction to encode.
//   - operands: A variadic list of integers providing the operand values
//     corresponding to the opcode's expected operand widths.
//
// Returns:
//   - A byte slice containing the encoded instruction. If the opcode is not
//     recognized, an empty slice is returned.
func MakeInstruction(op Opcode, operands ...int) []byte {
	def, err := Get(op)
	if err != nil {
		return []byte{}
	}

	byteOffset := 1
	instructionLength := byteOffset // starts at one for the opcode
	for _, i := range def.OperandWidths {
		instructionLength += i
	}

	instruction := make([]byte, instructionLength)

	// The first byte of the instruction will be the opcode
	instruction[0] = byte(op)

	for i, o := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 1:
			instruction[byteOffset] = byte(o)
		case 2:
			binary.BigEndian.PutUint16(instruction[byteOffset:], uint16(o))
		}
		byteOffset += width
	}
	return instruction
}

// ReadOperands decodes the operands of a single instruction (not including
// its opcode byte) according to def, returning the decoded values and the
// number of bytes consumed.
func ReadOperands(def *OpCodeDefinition, instruction []byte) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0
	for i, width := range def.OperandWidths {
		switch width {
		case 1:
			operands[i] = int(instruction[offset])
		case 2:
			operands[i] = int(binary.BigEndian.Uint16(instruction[offset:]))
		}
		offset += width
	}
	return operands, offset
}

// DisassembleInstruction renders a single instruction (opcode byte plus its
// operand bytes) as a human-readable mnemonic line.
func DisassembleInstruction(instruction []byte) (string, error) {
	if len(instruction) == 0 {
		return "", fmt.Errorf("cannot disassemble an empty instruction")
	}

	op := Opcode(instruction[0])
	def, err := Get(op)
	if err != nil {
		return "", err
	}

	operands, _ := ReadOperands(def, instruction[OPCODE_TOTAL_BYTES:])

	var builder strings.Builder
	builder.WriteString(def.Name)
	for _, operand := range operands {
		builder.WriteString(fmt.Sprintf(" %d", operand))
	}
	return builder.String(), nil
}
