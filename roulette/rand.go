package roulette

import (
	crand "crypto/rand"
	"math/big"
)

// Rand supplies the uniform draw for the wheel. Production uses CryptoRand;
// tests supply fixed values.
type Rand interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// CryptoRand draws from crypto/rand.
type CryptoRand struct{}

const randPrecision = 1 << 53

func (CryptoRand) Float64() float64 {
	n, err := crand.Int(crand.Reader, big.NewInt(randPrecision))
	if err != nil {
		// crypto/rand only fails when the host entropy source is broken.
		panic("roulette: crypto/rand unavailable: " + err.Error())
	}
	return float64(n.Int64()) / float64(randPrecision)
}
