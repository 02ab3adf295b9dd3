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

package rewind

// ComparisonState is returned by GetComparisonState().
type ComparisonState struct {
	State  *State
	Locked bool
}

// GetComparisonState gets a reference to the current comparison point.
func (r *Rewind) GetComparisonState() ComparisonState {
	return ComparisonState{
		State:  r.comparison,
		Locked: r.comparisonLocked,
	}
}

// UpdateComparison points comparison to the current state.
func (r *Rewind) UpdateComparison() error {
	if r.comparisonLocked {
		return nil
	}
	s, err := r.GetCurrentState()
	if err != nil {
		return err
	}
	r.comparison = s
	return nil
}

// SetComparison points comparison to the entry in the history nearest to the
// frame.
func (r *Rewind) SetComparison(frame int) {
	r.comparison = r.GetState(frame)
}

// LockComparison stops the comparison point from being updated by
// UpdateComparison().
func (r *Rewind) LockComparison(locked bool) {
	r.comparisonLocked = locked
}
