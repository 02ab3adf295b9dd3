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

package hardware

import (
	"crypto/sha1"
	"fmt"

	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/variant"
)

// FirmwareInfo describes one of the ROM images used by the machine. It is
// for display purposes only.
type FirmwareInfo struct {
	Size        int
	Hash        string
	Filename    string
	Description string
}

func (fw FirmwareInfo) String() string {
	return fmt.Sprintf("%s (%d bytes, sha1 %s): %s", fw.Filename, fw.Size, fw.Hash, fw.Description)
}

// firmwareInfo creates the FirmwareInfo for each ROM slot of the variant. The
// hash of a blank slot is the hash of a page of zero bytes.
func firmwareInfo(desc variant.Descriptor, firmware []Media) []FirmwareInfo {
	info := make([]FirmwareInfo, len(desc.Firmware))
	for i, slot := range desc.Firmware {
		data := make([]byte, memory.PageSize)
		filename := slot.Filename
		if i < len(firmware) {
			data = firmware[i].Data
			if firmware[i].Name != "" {
				filename = firmware[i].Name
			}
		}
		info[i] = FirmwareInfo{
			Size:        len(data),
			Hash:        fmt.Sprintf("%x", sha1.Sum(data)),
			Filename:    filename,
			Description: slot.Description,
		}
	}
	return info
}

// Firmware returns information about the ROM images. The returned slice is a
// copy.
func (m *Machine) Firmware() []FirmwareInfo {
	fw := make([]FirmwareInfo, len(m.firmware))
	copy(fw, m.firmware)
	return fw
}
