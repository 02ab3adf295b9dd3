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

// Package paths contains functions to prepare paths to ZXCore resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following will return the
// path to the preferences file.
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// In a development build (the default) the base directory is ".zxcore" in the
// current working directory. With the "release" build tag the base directory
// is "zxcore" in the directory returned by os.UserConfigDir(). Missing
// directories are created.
package paths
