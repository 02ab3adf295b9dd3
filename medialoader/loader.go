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

package medialoader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware"
)

// Sentinal error patterns.
const (
	UnexpectedHash    = "medialoader: unexpected hash value"
	UnsupportedScheme = "medialoader: unsupported URL scheme (%s)"
)

// Loader is used to specify a media item or firmware image to use when
// creating a machine.
type Loader struct {
	// filename or URL of the data
	Filename string

	// expected hash of the loaded data. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte

	// does the data consist of sound (PCM) data. the hash in this case is of
	// the original file and not the decoded pulses
	IsSoundData bool
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// Alphabetic characters in file extensions can be in upper or lower case or a
// mixture of both.
func NewLoader(filename string) Loader {
	ld := Loader{
		Filename: filename,
	}

	switch strings.ToUpper(path.Ext(filename)) {
	case ".WAV", ".MP3":
		ld.IsSoundData = true
	}

	return ld
}

// Recognised returns true if the filename extension is in the FileExtensions
// list.
func (ld Loader) Recognised() bool {
	return slices.Contains(FileExtensions[:], strings.ToUpper(path.Ext(ld.Filename)))
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	short := path.Base(filepath.ToSlash(ld.Filename))
	return strings.TrimSuffix(short, path.Ext(short))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the data. Loader filenames with a valid schema will use that method to
// load the data. Currently supported schemes are HTTP and local files.
//
// Calling Load() more than once has no effect.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("medialoader: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("medialoader: %v", resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("medialoader: %v", err)
		}

	case "file":
		data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf("medialoader: %v", err)
		}

	default:
		return curated.Errorf(UnsupportedScheme, scheme)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(UnexpectedHash)
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

// Media returns the loaded data in the form required by the machine
// configuration. The data is loaded if it has not been already.
func (ld *Loader) Media() (hardware.Media, error) {
	err := ld.Load()
	if err != nil {
		return hardware.Media{}, err
	}
	return hardware.Media{
		Name: path.Base(filepath.ToSlash(ld.Filename)),
		Data: ld.Data,
	}, nil
}
