package vm

import "math/rand/v2"

// Direction is the heading of the cursor.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Cursor is a position in the grid.
type Cursor struct {
	Row int
	Col int
}

// Advance returns the position one step away in direction d on a torus of the
// given extents. Callers pass the grid's extents at the time of the move since
// the grid may have grown since the last step.
func (c Cursor) Advance(d Direction, rows, cols int) Cursor {
	switch d {
	case Right:
		c.Col++
		if c.Col >= cols {
			c.Col = 0
		}
	case Left:
		c.Col--
		if c.Col < 0 {
			c.Col = cols - 1
		}
	case Up:
		c.Row--
		if c.Row < 0 {
			c.Row = rows - 1
		}
	case Down:
		c.Row++
		if c.Row >= rows {
			c.Row = 0
		}
	}
	return c
}

// Sampler chooses the heading for the random-direction instruction.
type Sampler interface {
	Direction() Direction
}

// RandomSampler picks each of the four directions with equal probability.
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler returns a sampler seeded with seed. Two samplers with the
// same seed produce the same sequence.
func NewRandomSampler(seed uint64) *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Direction returns a uniformly chosen direction.
func (s *RandomSampler) Direction() Direction {
	return Direction(s.rng.IntN(4))
}

// FixedSampler replays a sequence of directions, repeating the last one once
// the sequence is exhausted. An empty FixedSampler always returns Right.
type FixedSampler struct {
	Directions []Direction
	next       int
}

// Direction returns the next direction in the sequence.
func (s *FixedSampler) Direction() Direction {
	if len(s.Directions) == 0 {
		return Right
	}
	d := s.Directions[s.next]
	if s.next < len(s.Directions)-1 {
		s.next++
	}
	return d
}
