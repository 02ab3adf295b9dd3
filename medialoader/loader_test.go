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

package medialoader_test

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/medialoader"
	"github.com/zxcore/zxcore/test"
)

var data = []byte{0x13, 0x00, 0x00, 0x00, 0x48, 0x45, 0x4c, 0x4c, 0x4f}

func TestNewLoader(t *testing.T) {
	ld := medialoader.NewLoader("tapes/Manic Miner.TZX")
	test.ExpectSuccess(t, ld.Recognised())
	test.ExpectFailure(t, ld.IsSoundData)
	test.ExpectEquality(t, ld.ShortName(), "Manic Miner")
	test.ExpectFailure(t, ld.HasLoaded())

	ld = medialoader.NewLoader("tapes/jetpac.mp3")
	test.ExpectSuccess(t, ld.Recognised())
	test.ExpectSuccess(t, ld.IsSoundData)

	ld = medialoader.NewLoader("notes.txt")
	test.ExpectFailure(t, ld.Recognised())
}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.tap")
	test.DemandSuccess(t, os.WriteFile(fn, data, 0644))

	ld := medialoader.NewLoader(fn)
	test.DemandSuccess(t, ld.Load())
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, ld.Hash, fmt.Sprintf("%x", sha1.Sum(data)))

	m, err := ld.Media()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Name, "test.tap")
	test.ExpectEquality(t, len(m.Data), len(data))

	// hash mismatch
	ld = medialoader.NewLoader(fn)
	ld.Hash = "0000"
	err = ld.Load()
	test.ExpectSuccess(t, curated.Is(err, medialoader.UnexpectedHash))
	test.ExpectFailure(t, ld.HasLoaded())

	// missing file
	ld = medialoader.NewLoader(filepath.Join(t.TempDir(), "missing.tap"))
	test.ExpectFailure(t, ld.Load())
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test.tzx" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	ld := medialoader.NewLoader(srv.URL + "/test.tzx")
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, len(ld.Data), len(data))

	ld = medialoader.NewLoader(srv.URL + "/missing.tzx")
	test.ExpectFailure(t, ld.Load())
}

func TestScheme(t *testing.T) {
	ld := medialoader.NewLoader("ftp://example.com/test.tap")
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, medialoader.UnsupportedScheme))
}
