package codegen

import (
	"encoding/binary"
	"math"

	"github.com/carbon-lang/carbonc/internal/compiler/errors"
)

// buffer accumulates the emitted byte stream. Forward-patch sites are
// returned to the caller by reserveJumpOperand; the buffer itself does
// not record which of them are still unpatched.
type buffer struct {
	bytes []byte
}

func newBuffer() *buffer {
	return &buffer{bytes: make([]byte, 0, 256)}
}

func (b *buffer) offset() uint64 { return uint64(len(b.bytes)) }

func (b *buffer) emitOp(op OpCode) {
	b.bytes = append(b.bytes, byte(op))
}

func (b *buffer) emitU64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *buffer) emitI64(v int64) {
	b.emitU64(uint64(v))
}

func (b *buffer) emitF64(v float64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *buffer) emitBool(v bool) {
	if v {
		b.bytes = append(b.bytes, 1)
	} else {
		b.bytes = append(b.bytes, 0)
	}
}

// emitString appends a single length byte followed by the string's raw
// bytes. Strings longer than 255 bytes do not fit the one-byte length;
// they are rejected here with ErrStringImmOverflow and nothing is
// appended.
func (b *buffer) emitString(s string) error {
	if len(s) > 255 {
		return errors.NewCodeGenError(errors.ErrStringImmOverflow, "string immediate exceeds 255 bytes: "+s)
	}
	b.bytes = append(b.bytes, byte(len(s)))
	b.bytes = append(b.bytes, s...)
	return nil
}

// reserveJumpOperand emits opcode op followed by 8 zero bytes, returning
// the absolute offset of the reserved operand field for later patching.
func (b *buffer) reserveJumpOperand(op OpCode) uint64 {
	b.emitOp(op)
	site := b.offset()
	b.bytes = append(b.bytes, 0, 0, 0, 0, 0, 0, 0, 0)
	return site
}

// patch overwrites the 8-byte operand field starting at offset site with
// target, encoded big-endian. site must have come from reserveJumpOperand
// on this buffer and must not yet have been patched.
func (b *buffer) patch(site uint64, target uint64) {
	binary.BigEndian.PutUint64(b.bytes[site:site+8], target)
}
