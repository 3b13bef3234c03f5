package compiler

// chunkio implements the on-disk chunk format: a compiled Bytecode's
// instruction stream and constant pool, written and read back byte-exact.

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Constant type tags, written as a single byte ahead of each constant's
// payload.
const (
	constTagNumber  byte = iota // 8-byte IEEE double, host endian
	constTagBoolean             // 1 byte
	constTagNull                // no bytes
	constTagString              // 32-bit LE length, then that many bytes
)

// WriteChunk serializes bytecode to w as:
//  1. 32-bit little-endian code_count
//  2. 32-bit little-endian constants_count
//  3. code_count bytes of raw instructions
//  4. each constant, type-tagged
//
// Constants holding arrays, objects, or functions are not serializable in
// this format and cause WriteChunk to fail.
func WriteChunk(w io.Writer, bytecode Bytecode) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(bytecode.Instructions))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(bytecode.ConstantsPool))); err != nil {
		return err
	}
	if _, err := w.Write(bytecode.Instructions); err != nil {
		return err
	}

	for _, constant := range bytecode.ConstantsPool {
		if err := writeConstant(w, constant); err != nil {
			return err
		}
	}
	return nil
}

func writeConstant(w io.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		_, err := w.Write([]byte{constTagNull})
		return err
	case bool:
		tag := byte(0)
		if v {
			tag = 1
		}
		if _, err := w.Write([]byte{constTagBoolean}); err != nil {
			return err
		}
		_, err := w.Write([]byte{tag})
		return err
	case float64:
		if _, err := w.Write([]byte{constTagNumber}); err != nil {
			return err
		}
		return binary.Write(w, binary.NativeEndian, math.Float64bits(v))
	case string:
		if _, err := w.Write([]byte{constTagString}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(v))); err != nil {
			return err
		}
		_, err := w.Write([]byte(v))
		return err
	default:
		return fmt.Errorf("constant of type %T is not serializable in a chunk", value)
	}
}

// ReadChunk is the exact inverse of WriteChunk.
func ReadChunk(r io.Reader) (Bytecode, error) {
	var codeCount, constantsCount uint32
	if err := binary.Read(r, binary.LittleEndian, &codeCount); err != nil {
		return Bytecode{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &constantsCount); err != nil {
		return Bytecode{}, err
	}

	instructions := make(Instructions, codeCount)
	if _, err := io.ReadFull(r, instructions); err != nil {
		return Bytecode{}, err
	}

	constants := make([]any, 0, constantsCount)
	for i := uint32(0); i < constantsCount; i++ {
		value, err := readConstant(r)
		if err != nil {
			return Bytecode{}, err
		}
		constants = append(constants, value)
	}

	return Bytecode{Instructions: instructions, ConstantsPool: constants}, nil
}

func readConstant(r io.Reader) (any, error) {
	tagBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, tagBuf); err != nil {
		return nil, err
	}

	switch tagBuf[0] {
	case constTagNull:
		return nil, nil
	case constTagBoolean:
		boolBuf := make([]byte, 1)
		if _, err := io.ReadFull(r, boolBuf); err != nil {
			return nil, err
		}
		return boolBuf[0] != 0, nil
	case constTagNumber:
		var bits uint64
		if err := binary.Read(r, binary.NativeEndian, &bits); err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil
	case constTagString:
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		strBuf := make([]byte, length)
		if _, err := io.ReadFull(r, strBuf); err != nil {
			return nil, err
		}
		return string(strBuf), nil
	default:
		return nil, fmt.Errorf("unknown constant tag: %d", tagBuf[0])
	}
}
