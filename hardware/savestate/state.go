// This file is part of ZXCore.
//
// ZXCore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXCore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXCore.  If not, see <https://www.gnu.org/licenses/>.

package savestate

import (
	"bytes"
	"encoding/binary"

	"github.com/zxcore/zxcore/curated"
)

// FormatError is returned when the state data is malformed.
const FormatError = "savestate: %v"

// Writer accumulates the binary state of a machine.
type Writer struct {
	buf bytes.Buffer
	err error
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) write(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(&w.buf, binary.LittleEndian, v)
}

// Section writes a named marker.
func (w *Writer) Section(name string) {
	w.String(name)
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) {
	w.write(v)
}

// Bool writes a boolean as a single byte.
func (w *Writer) Bool(v bool) {
	w.write(v)
}

// U16 writes a 16 bit value.
func (w *Writer) U16(v uint16) {
	w.write(v)
}

// U32 writes a 32 bit value.
func (w *Writer) U32(v uint32) {
	w.write(v)
}

// U64 writes a 64 bit value.
func (w *Writer) U64(v uint64) {
	w.write(v)
}

// Int writes an int as a 64 bit value.
func (w *Writer) Int(v int) {
	w.write(int64(v))
}

// I16 writes a signed 16 bit value.
func (w *Writer) I16(v int16) {
	w.write(v)
}

// Bytes writes a length-prefixed byte slice.
func (w *Writer) Bytes(b []byte) {
	w.write(uint32(len(b)))
	w.write(b)
}

// Int16s writes a length-prefixed slice of int16 values.
func (w *Writer) Int16s(s []int16) {
	w.write(uint32(len(s)))
	w.write(s)
}

// String writes a length-prefixed string.
func (w *Writer) String(s string) {
	w.Bytes([]byte(s))
}

// Data returns the accumulated state or the first error that occurred.
func (w *Writer) Data() ([]byte, error) {
	if w.err != nil {
		return nil, curated.Errorf(FormatError, w.err)
	}
	return w.buf.Bytes(), nil
}

// Reader decodes state written by a Writer.
type Reader struct {
	r   *bytes.Reader
	err error
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

func (r *Reader) read(v any) {
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.r, binary.LittleEndian, v)
}

// Section checks that the next value in the state is the named marker.
func (r *Reader) Section(name string) {
	s := r.String()
	if r.err == nil && s != name {
		r.err = curated.Errorf("expected section %q but found %q", name, s)
	}
}

// U8 reads a single byte.
func (r *Reader) U8() uint8 {
	var v uint8
	r.read(&v)
	return v
}

// Bool reads a boolean.
func (r *Reader) Bool() bool {
	var v bool
	r.read(&v)
	return v
}

// U16 reads a 16 bit value.
func (r *Reader) U16() uint16 {
	var v uint16
	r.read(&v)
	return v
}

// U32 reads a 32 bit value.
func (r *Reader) U32() uint32 {
	var v uint32
	r.read(&v)
	return v
}

// U64 reads a 64 bit value.
func (r *Reader) U64() uint64 {
	var v uint64
	r.read(&v)
	return v
}

// Int reads an int written with Writer.Int().
func (r *Reader) Int() int {
	var v int64
	r.read(&v)
	return int(v)
}

// I16 reads a signed 16 bit value.
func (r *Reader) I16() int16 {
	var v int16
	r.read(&v)
	return v
}

// the length prefix of a slice is never allowed to exceed the remaining data
func (r *Reader) length(size int) int {
	n := int(r.U32())
	if r.err == nil && n*size > r.r.Len() {
		r.err = curated.Errorf("length (%d) exceeds remaining data", n)
		return 0
	}
	return n
}

// Bytes reads a length-prefixed byte slice.
func (r *Reader) Bytes() []byte {
	n := r.length(1)
	if r.err != nil {
		return nil
	}
	b := make([]byte, n)
	r.read(b)
	return b
}

// BytesInto reads a length-prefixed byte slice into an existing slice. The
// length in the state must match the length of the slice.
func (r *Reader) BytesInto(b []byte) {
	n := r.length(1)
	if r.err != nil {
		return
	}
	if n != len(b) {
		r.err = curated.Errorf("length (%d) does not match expected (%d)", n, len(b))
		return
	}
	r.read(b)
}

// Int16s reads a length-prefixed slice of int16 values.
func (r *Reader) Int16s() []int16 {
	n := r.length(2)
	if r.err != nil {
		return nil
	}
	s := make([]int16, n)
	r.read(s)
	return s
}

// String reads a length-prefixed string.
func (r *Reader) String() string {
	return string(r.Bytes())
}

// Fail sets the sticky error. Used by components that find a value in the
// state that they can not accept.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first error that occurred while reading.
func (r *Reader) Err() error {
	if r.err != nil {
		return curated.Errorf(FormatError, r.err)
	}
	return nil
}

// Finish returns the first error that occurred while reading. It is also an
// error for there to be unread data.
func (r *Reader) Finish() error {
	if r.err == nil && r.r.Len() > 0 {
		r.err = curated.Errorf("%d bytes of unused data", r.r.Len())
	}
	return r.Err()
}
