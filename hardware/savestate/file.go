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
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"

	"github.com/zxcore/zxcore/curated"
)

// the first bytes of every save-state file
const magic = "ZXCS"

// Version of the save-state file format.
const Version = uint16(1)

// Encode adds the file header to the state data and compresses it.
func Encode(w io.Writer, variant string, data []byte) error {
	var hdr bytes.Buffer
	hdr.WriteString(magic)
	binary.Write(&hdr, binary.LittleEndian, Version)
	binary.Write(&hdr, binary.LittleEndian, uint16(len(variant)))
	hdr.WriteString(variant)

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	if err := zw.Close(); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	return nil
}

// Decode checks the file header and returns the variant name and the
// decompressed state data.
func Decode(r io.Reader) (string, []byte, error) {
	hdr := make([]byte, len(magic)+4)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return "", nil, curated.Errorf(FormatError, "missing header")
	}
	if string(hdr[:len(magic)]) != magic {
		return "", nil, curated.Errorf(FormatError, "not a save-state file")
	}

	v := binary.LittleEndian.Uint16(hdr[len(magic):])
	if v != Version {
		return "", nil, curated.Errorf(FormatError, curated.Errorf("unsupported version (%d)", v))
	}

	variant := make([]byte, binary.LittleEndian.Uint16(hdr[len(magic)+2:]))
	if _, err := io.ReadFull(r, variant); err != nil {
		return "", nil, curated.Errorf(FormatError, "truncated header")
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return "", nil, curated.Errorf(FormatError, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, curated.Errorf(FormatError, err)
	}

	return string(variant), data, nil
}

// WriteFile saves state data to the named file.
func WriteFile(filename string, variant string, data []byte) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	defer f.Close()
	return Encode(f, variant, data)
}

// ReadFile loads state data from the named file.
func ReadFile(filename string) (string, []byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", nil, curated.Errorf("savestate: %v", err)
	}
	defer f.Close()
	return Decode(f)
}
