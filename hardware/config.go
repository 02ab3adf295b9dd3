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
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/joystick"
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/hardware/variant"
)

// Sentinal error patterns returned by NewMachine(). No Machine instance is
// returned with either error.
const (
	ConfigurationError = "machine: configuration error: %v"
	DeviceInitError    = "machine: %s: %v"
)

// Media is a named blob of data. The name is used to help identify the
// format of the data and for logging.
type Media struct {
	Name string
	Data []byte
}

// Config is the information required to construct a Machine.
type Config struct {
	Variant variant.ID
	Border  ula.BorderType

	// tape images. the number of items must be in the range allowed by the
	// variant
	Media []Media

	// one entry for each ROM page of the variant. a nil slice leaves the ROM
	// pages blank
	Firmware []Media

	Joysticks []joystick.Type

	// start the tape deck playing after construction and after every reset
	AutoLoad bool
}

// validate the parts of the configuration that can be checked against the
// descriptor alone
func (cfg Config) validate(desc variant.Descriptor) error {
	if len(cfg.Media) < desc.MinMedia || len(cfg.Media) > desc.MaxMedia {
		return curated.Errorf(ConfigurationError,
			curated.Errorf("%s requires between %d and %d media items (%d given)",
				desc.Name, desc.MinMedia, desc.MaxMedia, len(cfg.Media)))
	}

	for _, m := range cfg.Media {
		if len(m.Data) == 0 {
			return curated.Errorf(ConfigurationError, curated.Errorf("media %q is empty", m.Name))
		}
	}

	if cfg.Firmware != nil {
		if len(cfg.Firmware) != desc.ROMPages {
			return curated.Errorf(ConfigurationError,
				curated.Errorf("%s requires %d ROM images (%d given)", desc.Name, desc.ROMPages, len(cfg.Firmware)))
		}
		for _, f := range cfg.Firmware {
			if len(f.Data) != memory.PageSize {
				return curated.Errorf(ConfigurationError,
					curated.Errorf("ROM image %q is %d bytes and not %d", f.Name, len(f.Data), memory.PageSize))
			}
		}
	}

	var kempston bool
	for _, j := range cfg.Joysticks {
		if j == joystick.Kempston {
			if kempston {
				return curated.Errorf(ConfigurationError, curated.Errorf("only one kempston joystick is allowed"))
			}
			kempston = true
		}
	}

	return nil
}
