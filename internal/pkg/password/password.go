package password

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	pinMin   = 100000
	pinRange = 900000
)

// Generator yields initial numeric passwords for new employee accounts.
type Generator struct {
	rand io.Reader
}

func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorFrom is used by tests with a deterministic reader.
func NewGeneratorFrom(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// SixDigit returns a uniformly chosen number in [100000, 999999] as a string.
func (g *Generator) SixDigit() (string, error) {
	n, err := rand.Int(g.rand, big.NewInt(pinRange))
	if err != nil {
		return "", fmt.Errorf("generate initial password: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+pinMin), nil
}
