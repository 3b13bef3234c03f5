package compiler

import "testing"

func TestMakeInstruction(t *testing.T) {
	tests := []struct {
		op       Opcode
		operands []int
		expected []byte
	}{
		{LOAD_CONST, []int{200}, []byte{byte(LOAD_CONST), 200}},
		{LOAD_VAR, []int{5}, []byte{byte(LOAD_VAR), 5}},
		{STORE_VAR, []int{5}, []byte{byte(STORE_VAR), 5}},
		{CALL, []int{3, 2}, []byte{byte(CALL), 3, 2}},
		{JUMP, []int{300}, []byte{byte(JUMP), 1, 44}},
		{JUMP_IF_FALSE, []int{10}, []byte{byte(JUMP_IF_FALSE), 0, 10}},
		{LOOP, []int{10}, []byte{byte(LOOP), 0, 10}},
		{ADD, []int{}, []byte{byte(ADD)}},
		{SUB, []int{}, []byte{byte(SUB)}},
		{MUL, []int{}, []byte{byte(MUL)}},
		{DIV, []int{}, []byte{byte(DIV)}},
		{MOD, []int{}, []byte{byte(MOD)}},
		{NEG, []int{}, []byte{byte(NEG)}},
		{NOT, []int{}, []byte{byte(NOT)}},
		{EQ, []int{}, []byte{byte(EQ)}},
		{NEQ, []int{}, []byte{byte(NEQ)}},
		{LT, []int{}, []byte{byte(LT)}},
		{GT, []int{}, []byte{byte(GT)}},
		{LTE, []int{}, []byte{byte(LTE)}},
		{GTE, []int{}, []byte{byte(GTE)}},
		{AND, []int{}, []byte{byte(AND)}},
		{OR, []int{}, []byte{byte(OR)}},
		{PRINT, []int{}, []byte{byte(PRINT)}},
		{POP, []int{}, []byte{byte(POP)}},
		{DUP, []int{}, []byte{byte(DUP)}},
		{SWAP, []int{}, []byte{byte(SWAP)}},
		{NEW_ARRAY, []int{}, []byte{byte(NEW_ARRAY)}},
		{ARRAY_PUSH, []int{}, []byte{byte(ARRAY_PUSH)}},
		{GET_INDEX, []int{}, []byte{byte(GET_INDEX)}},
		{RETURN, []int{}, []byte{byte(RETURN)}},
		{EOF, []int{}, []byte{byte(EOF)}},
	}

	for _, tt := range tests {
		instruction := MakeInstruction(tt.op, tt.operands...)
		if len(instruction) != len(tt.expected) {
			t.Errorf("%s: wrong instruction length - got: %v, want: %v", Opcode(tt.op), instruction, tt.expected)
			continue
		}
		for i, b := range tt.expected {
			if instruction[i] != b {
				t.Errorf("%s: wrong byte at index %d - got: %v, want: %v", Opcode(tt.op), i, instruction, tt.expected)
			}
		}
	}
}

func TestDisassembleInstruction(t *testing.T) {
	tests := []struct {
		instruction []byte
		expected    string
	}{
		{[]byte{byte(LOAD_CONST), 5}, "LOAD_CONST 5"},
		{[]byte{byte(LOAD_VAR), 2}, "LOAD_VAR 2"},
		{[]byte{byte(STORE_VAR), 2}, "STORE_VAR 2"},
		{[]byte{byte(CALL), 1, 3}, "CALL 1 3"},
		{[]byte{byte(JUMP), 0, 10}, "JUMP 10"},
		{[]byte{byte(ADD)}, "ADD"},
		{[]byte{byte(PRINT)}, "PRINT"},
		{[]byte{byte(EOF)}, "EOF"},
	}

	for _, tt := range tests {
		result, err := DisassembleInstruction(tt.instruction)
		if err != nil {
			t.Fatalf("disassembly error: %s", err.Error())
		}
		if result != tt.expected {
			t.Errorf("got %q, want %q", result, tt.expected)
		}
	}
}

func TestGetUnknownOpcode(t *testing.T) {
	if _, err := Get(Opcode(255)); err == nil {
		t.Fatalf("expected an error looking up an undefined opcode")
	}
}
