// Package gamecode mints the short human-shareable codes that identify games.
package gamecode

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	// Alphabet deliberately avoids lowercase so codes survive being read
	// aloud or typed from a phone.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Length of every generated code.
	Length = 6
)

// Generator produces random game codes. Uniqueness is not a property of the
// generator; callers negotiate it against the store.
type Generator struct{}

// New creates a code generator.
func New() *Generator {
	return &Generator{}
}

// NewCode returns a fresh random code.
func (*Generator) NewCode() (string, error) {
	return gonanoid.Generate(Alphabet, Length)
}
