// SPDX-License-Identifier: MIT

// Package state - flat mean/covariance buffer.
//
// Layout:
//   - data[0:n]         means
//   - data[n:n+n*n]     covariance, row-major (offset = n + i*n + j), LNA only
//
// Complexity quicksheet:
//   - NewState: O(1); Init*: O(n²); Extend: O(n²); accessors: O(1).

package state

import "fmt"

// State is the numeric vector of one sample.
type State struct {
	size   int       // number of species
	lna    bool      // covariance block present
	inited bool      // Init* called (or produced by Extend/Clone)
	data   []float64 // len == size (+ size*size when lna) once inited
}

// NewState allocates nothing; call exactly one Init* before use.
func NewState(size int, lna bool) (*State, error) {
	if size < 0 {
		return nil, fmt.Errorf("NewState(%d): %w", size, ErrBadShape)
	}
	return &State{size: size, lna: lna}, nil
}

// Size is the number of species.
func (s *State) Size() int { return s.size }

// Lna reports whether a covariance block is carried.
func (s *State) Lna() bool { return s.lna }

// Initialized reports whether an Init* has run.
func (s *State) Initialized() bool { return s.inited }

func (s *State) length() int {
	if s.lna {
		return s.size + s.size*s.size
	}
	return s.size
}

func (s *State) alloc(method string) error {
	if s.inited {
		return fmt.Errorf("State.%s: %w", method, ErrReinitialized)
	}
	s.data = make([]float64, s.length())
	s.inited = true
	return nil
}

// InitZero sets every slot to 0.
func (s *State) InitZero() error { return s.alloc("InitZero") }

// InitMeans sets the means (covariance, if any, starts at 0).
func (s *State) InitMeans(means []float64) error {
	if len(means) != s.size {
		return fmt.Errorf("State.InitMeans: %d means for size %d: %w", len(means), s.size, ErrDimensionMismatch)
	}
	if err := s.alloc("InitMeans"); err != nil {
		return err
	}
	copy(s.data, means)
	return nil
}

// InitAll sets means and the flattened row-major covariance.
func (s *State) InitAll(means, covar []float64) error {
	if !s.lna {
		return fmt.Errorf("State.InitAll: %w", ErrNoCovariance)
	}
	if len(means) != s.size || len(covar) != s.size*s.size {
		return fmt.Errorf("State.InitAll: lengths %d/%d for size %d: %w", len(means), len(covar), s.size, ErrDimensionMismatch)
	}
	if err := s.alloc("InitAll"); err != nil {
		return err
	}
	copy(s.data, means)
	copy(s.data[s.size:], covar)
	return nil
}

// Extend returns a new State with n more species. Old means and covariances
// are copied to the same (i,j); new slots are 0. The receiver is unchanged.
//
// Complexity: O((size+n)²) under LNA, O(size+n) otherwise.
func (s *State) Extend(n int) (*State, error) {
	if !s.inited {
		return nil, fmt.Errorf("State.Extend: %w", ErrNotInitialized)
	}
	if n < 0 {
		return nil, fmt.Errorf("State.Extend(%d): %w", n, ErrBadShape)
	}
	out := &State{size: s.size + n, lna: s.lna, inited: true}
	out.data = make([]float64, out.length())
	copy(out.data, s.data[:s.size])
	if s.lna {
		for i := 0; i < s.size; i++ {
			copy(out.data[out.size+i*out.size:out.size+i*out.size+s.size], s.data[s.size+i*s.size:s.size+(i+1)*s.size])
		}
	}
	return out, nil
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	out := &State{size: s.size, lna: s.lna, inited: s.inited}
	if s.data != nil {
		out.data = append([]float64(nil), s.data...)
	}
	return out
}

// Means returns a copy of the mean vector.
func (s *State) Means() []float64 {
	out := make([]float64, s.size)
	if s.inited {
		copy(out, s.data[:s.size])
	}
	return out
}

// Vector returns the whole buffer (means then covariance). Integrators read
// and write it in place; its length never changes.
func (s *State) Vector() []float64 { return s.data }

func (s *State) checkMean(method string, i int) error {
	if !s.inited {
		return stateErrorf(method, i, i, ErrNotInitialized)
	}
	if i < 0 || i >= s.size {
		return stateErrorf(method, i, i, ErrOutOfRange)
	}
	return nil
}

func (s *State) checkCovar(method string, i, j int) error {
	if !s.lna {
		return stateErrorf(method, i, j, ErrNoCovariance)
	}
	if !s.inited {
		return stateErrorf(method, i, j, ErrNotInitialized)
	}
	if i < 0 || i >= s.size || j < 0 || j >= s.size {
		return stateErrorf(method, i, j, ErrOutOfRange)
	}
	return nil
}

// Mean returns the mean of species i.
func (s *State) Mean(i int) (float64, error) {
	if err := s.checkMean(ctxMean, i); err != nil {
		return 0, err
	}
	return s.data[i], nil
}

// SetMean assigns the mean of species i.
func (s *State) SetMean(i int, v float64) error {
	if err := s.checkMean(ctxSetMean, i); err != nil {
		return err
	}
	s.data[i] = v
	return nil
}

// AddMean accumulates into the mean of species i.
func (s *State) AddMean(i int, v float64) error {
	if err := s.checkMean(ctxAddMean, i); err != nil {
		return err
	}
	s.data[i] += v
	return nil
}

// Covar returns the covariance of species i and j.
func (s *State) Covar(i, j int) (float64, error) {
	if err := s.checkCovar(ctxCovar, i, j); err != nil {
		return 0, err
	}
	return s.data[s.covarAt(i, j)], nil
}

// SetCovar assigns the covariance (i,j) only; callers keep symmetry.
func (s *State) SetCovar(i, j int, v float64) error {
	if err := s.checkCovar(ctxSetCovar, i, j); err != nil {
		return err
	}
	s.data[s.covarAt(i, j)] = v
	return nil
}

// AddCovar accumulates into covariance (i,j).
func (s *State) AddCovar(i, j int, v float64) error {
	if err := s.checkCovar(ctxAddCovar, i, j); err != nil {
		return err
	}
	s.data[s.covarAt(i, j)] += v
	return nil
}

func (s *State) covarAt(i, j int) int { return s.size + i*s.size + j }
