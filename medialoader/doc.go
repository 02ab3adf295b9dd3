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

// Package medialoader is used to specify the data that is to be attached to
// the emulated machine. Data can be tape images (including sampled audio) or
// firmware images.
//
// When the data is ready to be loaded the Load() function should be used. The
// Load() function handles loading of data from different sources. Currently
// local-files and data over HTTP are supported.
//
// The simplest instance of the Loader type:
//
//	ld := medialoader.Loader{
//		Filename: "tapes/manic.tzx",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the IsSoundData field according to the
// filename extension.
package medialoader
