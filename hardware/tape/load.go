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

package tape

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/zxcore/zxcore/curated"
)

// FormatError is returned by Load() when the data can not be decoded.
const FormatError = "tape: %v"

// Load decodes a tape image. The format is detected from the data if
// possible and from the extension of the name otherwise. The clock rate is
// used to convert times in the image into CPU cycles.
func Load(data []byte, name string, clock int) ([]Block, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var blocks []Block
	var err error

	switch {
	case bytes.HasPrefix(data, []byte(tzxSignature)):
		blocks, err = decodeTZX(data, clock)
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		blocks, err = decodeWAV(data, clock)
	case ext == ".mp3" || bytes.HasPrefix(data, []byte("ID3")):
		blocks, err = decodeMP3(data, clock)
	case ext == ".tap" || ext == "":
		blocks, err = decodeTAP(data, clock)
	default:
		return nil, curated.Errorf(FormatError, curated.Errorf("unrecognised tape format (%s)", name))
	}

	if err != nil {
		return nil, curated.Errorf(FormatError, err)
	}

	return blocks, nil
}

// decodeTAP decodes a TAP file. Each block is a two byte length followed by
// the block data.
func decodeTAP(data []byte, clock int) ([]Block, error) {
	bld := newBuilder(clock)

	for len(data) > 0 {
		if len(data) < 2 {
			return nil, curated.Errorf("tap: truncated block length")
		}
		l := int(data[0]) | int(data[1])<<8
		data = data[2:]
		if l == 0 || l > len(data) {
			return nil, curated.Errorf("tap: block length (%d) does not match data", l)
		}
		bld.standard(data[:l], standardPauseMs)
		data = data[l:]
	}

	return bld.blocks, nil
}
