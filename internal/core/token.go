package core

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind identifies which player's stones a token represents.
type Kind int

const (
	Black Kind = iota
	White
)

// Kinds lists both kinds in container order.
var Kinds = [...]Kind{Black, White}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "unknown"
	}
}

// Valid reports whether k is Black or White.
func (k Kind) Valid() bool {
	return k == Black || k == White
}

// ParseKind converts "black"/"white" (or "b"/"w") to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "black", "b", "B":
		return Black, true
	case "white", "w", "W":
		return White, true
	}
	return Black, false
}

// ContainerID identifies one of the two bowls.
type ContainerID int

const (
	BlackBowl ContainerID = iota
	WhiteBowl
)

// String returns a human-readable name for the container.
func (c ContainerID) String() string {
	switch c {
	case BlackBowl:
		return "black-bowl"
	case WhiteBowl:
		return "white-bowl"
	default:
		return "unknown-bowl"
	}
}

// ContainerFor returns the bowl that holds tokens of the given kind.
func ContainerFor(k Kind) ContainerID {
	if k == White {
		return WhiteBowl
	}
	return BlackBowl
}

// Token is one captured stone placed inside a bowl.
// Pos is relative to the bowl center, in the same units as the bowl radius.
type Token struct {
	ID        int
	Pos       r2.Vec
	Kind      Kind
	Container ContainerID
}

// Container describes a bowl as supplied by the rendering layer.
type Container struct {
	ID     ContainerID
	Radius float64
	Center r2.Vec
	Target int
}

// Positions extracts token positions in order.
func Positions(tokens []Token) []r2.Vec {
	out := make([]r2.Vec, len(tokens))
	for i, t := range tokens {
		out[i] = t.Pos
	}
	return out
}

// TokensAt builds an ordered token list from positions.
// Token identity is the ordinal, which stays stable while a token lives.
func TokensAt(positions []r2.Vec, kind Kind) []Token {
	out := make([]Token, len(positions))
	c := ContainerFor(kind)
	for i, p := range positions {
		out[i] = Token{ID: i, Pos: p, Kind: kind, Container: c}
	}
	return out
}
