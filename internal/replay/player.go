package replay

import (
	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// Navigator tracks the current position in a game of fixed length.
type Navigator struct {
	current int
	length  int
}

// NewNavigator returns a navigator positioned at the first move.
func NewNavigator(length int) *Navigator {
	return &Navigator{length: max(length, 0)}
}

// Current returns the current move index.
func (n *Navigator) Current() int { return n.current }

// Len returns the number of moves.
func (n *Navigator) Len() int { return n.length }

// Seek jumps to move, clamped to the game, and returns the new position.
func (n *Navigator) Seek(move int) int {
	n.current = core.Clamp(move, 0, max(n.length-1, 0))
	return n.current
}

// Forward advances by steps moves.
func (n *Navigator) Forward(steps int) int { return n.Seek(n.current + steps) }

// Back rewinds by steps moves.
func (n *Navigator) Back(steps int) int { return n.Seek(n.current - steps) }

// First jumps to the first move.
func (n *Navigator) First() int { return n.Seek(0) }

// Last jumps to the final move.
func (n *Navigator) Last() int { return n.Seek(n.length - 1) }

// Debouncer keeps only the most recent seek request until it is taken.
type Debouncer struct {
	pending int
	has     bool
}

// Request records a seek, replacing any pending one.
func (d *Debouncer) Request(move int) {
	d.pending, d.has = move, true
}

// Take returns the pending seek, if any, and clears it.
func (d *Debouncer) Take() (int, bool) {
	if !d.has {
		return 0, false
	}
	d.has = false
	return d.pending, true
}

// Pending reports whether a seek is waiting.
func (d *Debouncer) Pending() bool { return d.has }

// Player binds an orchestrator to a capture source. Navigation requests are
// debounced; Flush applies the latest one.
type Player struct {
	orch     *Orchestrator
	src      CaptureSource
	nav      *Navigator
	debounce Debouncer
	frame    Frame
}

// NewPlayer creates a player at the first move. Nothing is computed until
// the first Flush.
func NewPlayer(o *Orchestrator, src CaptureSource) *Player {
	p := &Player{orch: o, src: src, nav: NewNavigator(src.MoveCount())}
	p.debounce.Request(0)
	return p
}

// Orchestrator returns the underlying orchestrator.
func (p *Player) Orchestrator() *Orchestrator { return p.orch }

// Navigator returns the navigation state.
func (p *Player) Navigator() *Navigator { return p.nav }

// Frame returns the most recently flushed frame.
func (p *Player) Frame() Frame { return p.frame }

// Forward queues a seek steps moves ahead.
func (p *Player) Forward(steps int) { p.debounce.Request(p.nav.Forward(steps)) }

// Back queues a seek steps moves back.
func (p *Player) Back(steps int) { p.debounce.Request(p.nav.Back(steps)) }

// Seek queues a seek to move.
func (p *Player) Seek(move int) { p.debounce.Request(p.nav.Seek(move)) }

// First queues a seek to the first move.
func (p *Player) First() { p.debounce.Request(p.nav.First()) }

// Last queues a seek to the final move.
func (p *Player) Last() { p.debounce.Request(p.nav.Last()) }

// Flush applies the pending seek. It reports false when nothing was pending.
func (p *Player) Flush() (Frame, bool) {
	move, ok := p.debounce.Take()
	if !ok {
		return p.frame, false
	}
	p.frame = p.orch.Seek(move, TargetsAt(p.src, move))
	return p.frame, true
}

// Refresh rebuilds the frame from live state, for example after a bowl was
// resized. Nothing is recomputed.
func (p *Player) Refresh() Frame {
	p.frame = p.orch.current()
	return p.frame
}

// SetSelection switches the layout selection. The current move, if one was
// shown, is recomputed under the new selection.
func (p *Player) SetSelection(sel config.Selection) error {
	frame, err := p.orch.SetSelection(sel)
	if err != nil {
		return err
	}
	if _, shown := p.orch.Move(); shown {
		p.frame = frame
	}
	return nil
}

// Load switches to another game.
func (p *Player) Load(src CaptureSource, fingerprint string) {
	p.orch.LoadGame(fingerprint)
	p.src = src
	p.nav = NewNavigator(src.MoveCount())
	p.debounce.Request(0)
	p.frame = Frame{}
}
