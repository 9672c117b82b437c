package reti

import (
	"fmt"
	"io"
)

// Registers holds the four architectural registers.
type Registers struct {
	PC, IN1, IN2, ACC uint32
}

func (r Registers) get(reg Register) uint32 {
	switch reg {
	case PC:
		return r.PC
	case IN1:
		return r.IN1
	case IN2:
		return r.IN2
	case ACC:
		return r.ACC
	}
	return 0
}

func (r *Registers) set(reg Register, v uint32) {
	switch reg {
	case PC:
		r.PC = v
	case IN1:
		r.IN1 = v
	case IN2:
		r.IN2 = v
	case ACC:
		r.ACC = v
	}
}

// TerminationReason classifies why a run stopped.
type TerminationReason int

const (
	TermNone TerminationReason = iota
	TermStepLimit
	TermOutOfRange
	TermIllegal
	TermSelfLoop
	TermFatalWrite
)

func (t TerminationReason) String() string {
	switch t {
	case TermNone:
		return "running"
	case TermStepLimit:
		return "step limit reached"
	case TermOutOfRange:
		return "PC beyond code image"
	case TermIllegal:
		return "illegal instruction"
	case TermSelfLoop:
		return "self-loop"
	case TermFatalWrite:
		return "fatal memory write above capacity"
	default:
		return "unknown"
	}
}

// Options configures a single emulator run.
type Options struct {
	// MaxSteps is the configured step limit; 0 means unlimited.
	MaxSteps uint64
	Read     ReadPolicy
	// Trace makes Run pass each step's StepTrace to its onStep callback.
	Trace bool
}

// StepTrace is the structured record of one fetch/decode/execute step.
// Step fills it on every call, including the Mnemonic and Action text,
// whether or not tracing is enabled; only the rendering of the full row
// by FormatRow is left to callers that trace.
type StepTrace struct {
	Steps       uint64
	PC          uint32
	CodeDefined bool
	Code        uint32
	Before      Registers
	Mnemonic    string
	Action      string
}

// FormatRow renders a StepTrace as the
// "STEPS PC CODE IN1 IN2 ACC INSTRUCTION ACTION" row.
func (t StepTrace) FormatRow() string {
	codeCol := "<undefined>"
	if t.CodeDefined {
		codeCol = fmt.Sprintf("%08x", t.Code)
	}
	return fmt.Sprintf("%d %08x %s %08x %08x %08x %s %s",
		t.Steps, t.PC, codeCol, t.Before.IN1, t.Before.IN2, t.Before.ACC, t.Mnemonic, t.Action)
}

// Emulator runs a loaded ReTI program against a code image and a sparse
// data memory.
type Emulator struct {
	Code    []uint32
	Data    *Memory
	Regs    Registers
	Opts    Options
	Steps   uint64
	Warnf   func(format string, args ...any)
	Halted  bool
	Reason  TerminationReason
	haltErr error
}

// NewEmulator constructs an emulator over a code image and an optional
// data image, loaded at address 0. warn receives one newline-terminated
// line per warning diagnostic, prefixed "warning: "; pass nil to discard
// warnings.
func NewEmulator(code []uint32, data []uint32, opts Options, warn io.Writer) *Emulator {
	mem := NewMemory()
	mem.LoadImage(data)

	e := &Emulator{Code: code, Data: mem, Opts: opts}
	if warn != nil {
		e.Warnf = func(format string, args ...any) {
			fmt.Fprintf(warn, "warning: "+format+"\n", args...)
		}
	} else {
		e.Warnf = func(string, ...any) {}
	}
	return e
}

func (e *Emulator) codeLen() uint32 {
	return uint32(len(e.Code))
}

// Step executes exactly one fetch/decode/execute cycle. ok is false once
// the emulator has halted; callers should stop looping. err is non-nil
// only for a fatal runtime condition (illegal instruction, or an
// uninitialized read under ReadStrict); step-limit,
// out-of-range and self-loop terminations are reported via Reason, not err.
func (e *Emulator) Step() (trace StepTrace, ok bool, err error) {
	if e.Halted {
		return StepTrace{}, false, e.haltErr
	}

	if e.Opts.MaxSteps != 0 && e.Steps >= e.Opts.MaxSteps {
		e.Warnf("step limit reached")
		e.halt(TermStepLimit, nil)
		return StepTrace{}, false, nil
	}

	before := e.Regs
	trace.Steps = e.Steps
	trace.PC = before.PC
	trace.Before = before

	if before.PC >= e.codeLen() {
		if before.PC > e.codeLen() {
			e.Warnf("undefined code above 0x%08x", e.codeLen())
		}
		trace.Mnemonic = "<undefined>"
		e.halt(TermOutOfRange, nil)
		return trace, false, nil
	}

	word := e.Code[before.PC]
	trace.CodeDefined = true
	trace.Code = word

	d := Decode(word)
	if !d.Legal {
		rerr := &RuntimeError{PC: before.PC, Reason: "illegal instruction"}
		trace.Mnemonic = "ILLEGAL"
		trace.Action = rerr.Error()
		e.halt(TermIllegal, rerr)
		return trace, false, rerr
	}
	trace.Mnemonic = Disassemble(word)

	pcNext := before.PC + 1
	var destReg Register
	var writeDest, writeMem bool
	var destVal, memAddr, memVal uint32
	action := ""

	switch d.Op {
	case LOAD, LOADIN1, LOADIN2:
		addr := d.Imm
		if d.Op == LOADIN1 {
			addr += before.IN1
		} else if d.Op == LOADIN2 {
			addr += before.IN2
		}
		val := e.readData(addr)
		destReg, destVal, writeDest = d.D, val, true
		action = fmt.Sprintf("%s = M[0x%x] = [0x%08x]", d.D, addr, val)

	case LOADI:
		destReg, destVal, writeDest = d.D, d.Imm, true
		action = fmt.Sprintf("%s = 0x%x = [0x%08x]", d.D, d.Imm, d.Imm)

	case STORE, STOREIN1, STOREIN2:
		addr := d.Imm
		if d.Op == STOREIN1 {
			addr += before.IN1
		} else if d.Op == STOREIN2 {
			addr += before.IN2
		}
		memAddr, memVal, writeMem = addr, before.ACC, true
		action = fmt.Sprintf("M[0x%x] = ACC = [0x%08x]", addr, before.ACC)

	case MOVE:
		val := before.get(d.S)
		destReg, destVal, writeDest = d.D, val, true
		action = fmt.Sprintf("%s = %s = [0x%08x]", d.D, d.S, val)

	case SUBI, ADDI:
		cur := before.get(d.D)
		sym := "-"
		var result uint32
		if d.Op == ADDI {
			sym = "+"
			result = cur + uint32(d.Signed)
		} else {
			result = cur - uint32(d.Signed)
		}
		destReg, destVal, writeDest = d.D, result, true
		action = fmt.Sprintf("%s = %s %s %d = %d %s %d = %d = [0x%08x]",
			d.D, d.D, sym, d.Signed, cur, sym, d.Signed, int32(result), result)

	case OPLUSI, ORI, ANDI:
		cur := before.get(d.D)
		var result uint32
		var sym string
		switch d.Op {
		case OPLUSI:
			result, sym = cur^d.Imm, "^"
		case ORI:
			result, sym = cur|d.Imm, "|"
		case ANDI:
			result, sym = cur&d.Imm, "&"
		}
		destReg, destVal, writeDest = d.D, result, true
		action = fmt.Sprintf("%s = %s %s 0x%x = 0x%x %s 0x%x = 0x%x = [0x%08x]",
			d.D, d.D, sym, d.Imm, cur, sym, d.Imm, result, result)

	case SUB, ADD:
		cur := before.get(d.D)
		mem := e.readData(d.Imm)
		sym := "-"
		var result uint32
		if d.Op == ADD {
			sym = "+"
			result = cur + mem
		} else {
			result = cur - mem
		}
		destReg, destVal, writeDest = d.D, result, true
		action = fmt.Sprintf("%s = %s %s [0x%x] = %d %s %d = %d = [0x%08x]",
			d.D, d.D, sym, d.Imm, cur, sym, mem, int32(result), result)

	case OPLUS, OR, AND:
		cur := before.get(d.D)
		mem := e.readData(d.Imm)
		var result uint32
		var sym string
		switch d.Op {
		case OPLUS:
			result, sym = cur^mem, "^"
		case OR:
			result, sym = cur|mem, "|"
		case AND:
			result, sym = cur&mem, "&"
		}
		destReg, destVal, writeDest = d.D, result, true
		action = fmt.Sprintf("%s = %s %s [0x%x] = 0x%x %s 0x%x = 0x%x = [0x%08x]",
			d.D, d.D, sym, d.Imm, cur, sym, mem, result, result)

	case NOP:
		action = "no-op"

	default: // conditional/unconditional jump class
		taken, cond := evalJump(d.Op, before.ACC)
		if taken {
			pcNext = before.PC + uint32(d.Signed)
			action = fmt.Sprintf("PC = PC + 0x%x = %d + %d = %d = [0x%08x] = %s",
				d.Imm, before.PC, d.Signed, int32(pcNext), pcNext, cond)
		} else {
			action = fmt.Sprintf("no jump = %s", cond)
		}
	}

	trace.Action = action

	if e.Halted {
		// readData hit a ReadStrict uninitialized read; abort before the
		// write that would have used its zero-substituted value.
		trace.Action = e.haltErr.Error()
		return trace, false, e.haltErr
	}

	if writeDest {
		e.Regs.set(destReg, destVal)
		if destReg == PC {
			pcNext = destVal
		}
	}
	if writeMem {
		e.Data.Write(memAddr, memVal)
	}

	if pcNext == before.PC {
		trace.Mnemonic = "<infinite-loop>"
		e.Regs.PC = pcNext
		e.halt(TermSelfLoop, nil)
		return trace, false, nil
	}

	e.Regs.PC = pcNext
	e.Steps++
	return trace, true, nil
}

func (e *Emulator) halt(reason TerminationReason, err error) {
	e.Halted = true
	e.Reason = reason
	e.haltErr = err
}

func (e *Emulator) readData(addr uint32) uint32 {
	val, valid := e.Data.Read(addr)
	if valid {
		return val
	}
	switch e.Opts.Read {
	case ReadDefault:
		e.Warnf("uninitialized read at 0x%08x", addr)
	case ReadQuiet:
		// silent
	case ReadStrict:
		e.halt(TermIllegal, &RuntimeError{PC: e.Regs.PC, Reason: fmt.Sprintf("uninitialized read at 0x%08x", addr)})
	}
	return 0
}

// evalJump reports whether the conditional jump op is taken given the
// current ACC, and a human-readable condition string for the trace.
func evalJump(op Op, acc uint32) (taken bool, cond string) {
	signed := int32(acc)
	switch op {
	case JUMPGT:
		return signed > 0, fmt.Sprintf("ACC > 0 (ACC = %d)", signed)
	case JUMPEQ:
		return acc == 0, fmt.Sprintf("ACC == 0 (ACC = %d)", signed)
	case JUMPGE:
		return signed >= 0, fmt.Sprintf("ACC >= 0 (ACC = %d)", signed)
	case JUMPLT:
		return signed < 0, fmt.Sprintf("ACC < 0 (ACC = %d)", signed)
	case JUMPNE:
		return acc != 0, fmt.Sprintf("ACC != 0 (ACC = %d)", signed)
	case JUMPLE:
		return signed <= 0, fmt.Sprintf("ACC <= 0 (ACC = %d)", signed)
	case JUMP:
		return true, "unconditional"
	}
	return false, ""
}

// Run executes steps until the emulator halts. When Opts.Trace is set,
// each step's trace is passed to onStep; otherwise onStep may be nil.
func (e *Emulator) Run(onStep func(StepTrace)) error {
	for {
		trace, ok, err := e.Step()
		if e.Opts.Trace && onStep != nil && trace.Mnemonic != "" {
			onStep(trace)
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
