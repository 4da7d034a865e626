package assemble

import (
	"fmt"
	"strings"
	"sync"

	"fragasm-core/overlap"
)

// Matrix holds the overlap of fragment row's tail into fragment col's head at
// [row][col]; the diagonal and non-qualifying pairs hold overlap.None.
type Matrix [][]int

func newMatrix(n int) Matrix {
	cells := make([]int, n*n)
	mx := make(Matrix, n)
	for i := range mx {
		mx[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}
	return mx
}

// Heads returns, in ascending order, the columns with no qualifying overlap.
func (mx Matrix) Heads() []int {
	var heads []int
	for col := range mx {
		empty := true
		for row := range mx {
			if mx[row][col] != overlap.None {
				empty = false
				break
			}
		}
		if empty {
			heads = append(heads, col)
		}
	}
	return heads
}

func (mx Matrix) String() string {
	var b strings.Builder
	for _, row := range mx {
		b.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%2d", v)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// Successor is the link out of a fragment: its overlap index and the fragment
// that follows it.
type Successor struct {
	Overlap int
	Next    string
}

// SuccessorMap is the only structure written by several workers at once.
// A key written twice keeps the last write; unique-overlap input writes each
// key at most once.
type SuccessorMap struct {
	mu sync.RWMutex
	m  map[string]Successor
}

func NewSuccessorMap(sizeHint int) *SuccessorMap {
	return &SuccessorMap{m: make(map[string]Successor, sizeHint)}
}

func (s *SuccessorMap) Put(from string, succ Successor) {
	s.mu.Lock()
	s.m[from] = succ
	s.mu.Unlock()
}

func (s *SuccessorMap) Get(from string) (Successor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	succ, ok := s.m[from]
	return succ, ok
}

func (s *SuccessorMap) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
