package reti

import (
	"math/rand"
	"testing"
)

func TestGenerateProgramReproducibleFromSeed(t *testing.T) {
	a := GenerateProgram(rand.New(rand.NewSource(42)), 200)
	b := GenerateProgram(rand.New(rand.NewSource(42)), 200)
	assert(t, len(a) == len(b), "length mismatch: %d vs %d", len(a), len(b))
	for i := range a {
		assert(t, a[i] == b[i], "word %d differs between runs: 0x%08x vs 0x%08x", i, a[i], b[i])
	}
}

func TestGenerateProgramDifferentSeeds(t *testing.T) {
	a := GenerateProgram(rand.New(rand.NewSource(1)), 200)
	b := GenerateProgram(rand.New(rand.NewSource(2)), 200)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	assert(t, !same, "expected different seeds to produce different programs")
}

func TestGenerateProgramAllWordsLegal(t *testing.T) {
	words := GenerateProgram(rand.New(rand.NewSource(7)), 500)
	for i, w := range words {
		d := Decode(w)
		assert(t, d.Legal, "word %d (0x%08x) decoded as illegal", i, w)
	}
}

func TestGenerateProgramNoSelfLoopOrOutOfBoundsJump(t *testing.T) {
	words := GenerateProgram(rand.New(rand.NewSource(99)), 1000)
	for i, w := range words {
		d := Decode(w)
		if !d.Op.IsJump() || d.Op == NOP {
			continue
		}
		target := i + int(d.Signed)
		assert(t, target != i, "instruction %d is a self-loop", i)
		assert(t, target >= 0 && target <= len(words), "instruction %d jumps to out-of-bounds target %d", i, target)
	}
}

func TestGenerateProgramUnusedFieldsZeroed(t *testing.T) {
	words := GenerateProgram(rand.New(rand.NewSource(3)), 2000)
	for i, w := range words {
		d := Decode(w)
		info := opByOp[d.Op]
		if !info.hasS {
			assert(t, d.S == 0, "instruction %d (%s): expected S=0, got %v", i, info.name, d.S)
		}
		if !info.hasD {
			assert(t, d.D == 0, "instruction %d (%s): expected D=0, got %v", i, info.name, d.D)
		}
		if d.Op == NOP || d.Op == MOVE {
			assert(t, d.Imm == 0, "instruction %d (%s): expected Imm=0, got 0x%x", i, info.name, d.Imm)
		}
	}
}

func TestGenerateInstructionStandaloneAlwaysLegal(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		w := GenerateInstruction(r)
		d := Decode(w)
		assert(t, d.Legal, "iteration %d: word 0x%08x decoded as illegal", i, w)
	}
}
