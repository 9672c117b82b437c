package reti

import "math/rand"

// LegalOps returns the 26 legal ReTI instructions in table order.
func LegalOps() []Op {
	ops := make([]Op, len(opTable))
	for i, info := range opTable {
		ops[i] = info.op
	}
	return ops
}

// GenerateInstruction produces one random, bitwise-legal instruction
// word, with no program context: jump immediates are sampled as if the
// instruction sat at position 0 of a very long program, since a
// standalone quiz question has no surrounding code to stay in bounds
// of. Unused fields (S for anything but MOVE, D for STORE, the
// immediate for MOVE/NOP) are always zero, the same as GenerateProgram.
func GenerateInstruction(r *rand.Rand) uint32 {
	return generateInstruction(r, 0, 0x7FFFFF)
}

// GenerateProgram produces n random, bitwise-legal instruction words
// forming a self-contained program: every jump target lands strictly
// inside [0, n] and no instruction is a self-loop, so the emulator
// always either runs off the end cleanly or loops through live code.
// r is always the caller-supplied source (never the package-global
// generator), so a run is exactly reproducible from its seed.
func GenerateProgram(r *rand.Rand, n int) []uint32 {
	words := make([]uint32, n)
	for p := 0; p < n; p++ {
		words[p] = generateInstruction(r, p, n)
	}
	return words
}

func generateInstruction(r *rand.Rand, p, n int) uint32 {
	info := &opTable[r.Intn(len(opTable))]

	var s, d Register
	if info.hasS {
		s = Register(r.Intn(4))
	}
	if info.hasD {
		d = Register(r.Intn(4))
	}

	var imm uint32
	switch {
	case info.op == NOP:
		imm = 0
	case info.op.IsJump():
		imm = jumpImmediate(r, p, n)
	case info.hasImm:
		imm = r.Uint32() & ImmMask
	}

	return Encode(info.op, s, d, imm)
}

// jumpImmediate picks a jump target for an instruction at position p in
// a program of length n, per the generator constraints: 50% backward
// (when p > 0), landing in [max(0, p-0x800000), p-1]; otherwise
// forward, landing in [p+1, min(p+0x7FFFFF, n)]. n itself (one past the
// last instruction) is a permitted forward target.
func jumpImmediate(r *rand.Rand, p, n int) uint32 {
	backward := p > 0 && r.Intn(2) == 0

	var target int
	if backward {
		lo := p - 0x800000
		if lo < 0 {
			lo = 0
		}
		target = lo + r.Intn(p-lo)
	} else {
		hi := p + 0x7FFFFF
		if hi > n {
			hi = n
		}
		target = p + 1 + r.Intn(hi-p)
	}

	diff := int32(target - p)
	return uint32(diff) & ImmMask
}
