// Package track provides the captured-stone counts of a game, move by move.
//
// A track is the small slice of a game record the layout engine needs: for
// every move, how many stones each player has captured so far. Tracks are
// stored as YAML:
//
//	name: demo
//	fingerprint: optional-stable-id
//	moves:
//	  - {black: 0, white: 0}
//	  - {black: 1, white: 0}
package track

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// ErrEmptyTrack is returned when a track has no moves.
var ErrEmptyTrack = errors.New("track: no moves")

// Move holds the cumulative captured counts after one move. Black is the
// number of black stones captured (they go in the black bowl).
type Move struct {
	Black int `yaml:"black"`
	White int `yaml:"white"`
}

// Track is a named sequence of capture counts.
type Track struct {
	Name        string `yaml:"name"`
	Fingerprint string `yaml:"fingerprint,omitempty"`
	Moves       []Move `yaml:"moves"`
}

// Load reads a track file.
func Load(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("track: failed to read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return t, nil
}

// Parse decodes a YAML track. Negative counts clamp to zero. When the file
// does not name a fingerprint one is derived from its content.
func Parse(data []byte) (*Track, error) {
	var t Track
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("track: failed to parse: %w", err)
	}
	if len(t.Moves) == 0 {
		return nil, ErrEmptyTrack
	}
	for i := range t.Moves {
		t.Moves[i].Black = max(t.Moves[i].Black, 0)
		t.Moves[i].White = max(t.Moves[i].White, 0)
	}
	if t.Fingerprint == "" {
		t.Fingerprint = Fingerprint(t.Name, t.Moves)
	}
	return &t, nil
}

// FromCounts builds a track from parallel count slices. The shorter slice is
// padded with its last value.
func FromCounts(name string, black, white []int) *Track {
	n := max(len(black), len(white))
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = Move{Black: at(black, i), White: at(white, i)}
	}
	return &Track{Name: name, Fingerprint: Fingerprint(name, moves), Moves: moves}
}

func at(s []int, i int) int {
	if len(s) == 0 {
		return 0
	}
	return max(s[min(i, len(s)-1)], 0)
}

// Fingerprint derives a stable game identifier from the track content.
func Fingerprint(name string, moves []Move) string {
	data := fmt.Appendf(nil, "%s|%v", name, moves)
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String()
}

// CapturedCount returns the captured count of kind after move. Moves before
// the start read as zero; moves past the end read as the final count.
func (t *Track) CapturedCount(move int, kind core.Kind) int {
	if move < 0 || len(t.Moves) == 0 {
		return 0
	}
	m := t.Moves[min(move, len(t.Moves)-1)]
	if kind == core.White {
		return m.White
	}
	return m.Black
}

// MoveCount returns the number of moves in the track.
func (t *Track) MoveCount() int {
	return len(t.Moves)
}

// Write encodes the track as YAML.
func (t *Track) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("track: failed to encode: %w", err)
	}
	return enc.Close()
}

// Demo returns a synthetic game whose capture counts grow in bursts, the way
// real games do: long quiet stretches, then a group dies.
func Demo(seed uint64) *Track {
	rng := core.NewRNG(seed)
	const moves = 160
	black := make([]int, moves)
	white := make([]int, moves)
	for i := 1; i < moves; i++ {
		black[i], white[i] = black[i-1], white[i-1]
		switch roll := rng.Float64(); {
		case roll < 0.04:
			black[i] += 2 + rng.Intn(6)
		case roll < 0.08:
			white[i] += 2 + rng.Intn(6)
		case roll < 0.22:
			black[i]++
		case roll < 0.36:
			white[i]++
		}
	}
	return FromCounts(fmt.Sprintf("demo-%d", seed), black, white)
}
