package economy

import "math/bits"

// Prng is the game's deterministic generator. Its whole state is two words
// so it can be saved and restored with the rest of the game.
type Prng struct {
	S0, S1 uint32
}

func NewPrng(s0, s1 uint32) *Prng {
	return &Prng{S0: s0, S1: s1}
}

func (p *Prng) Next() uint32 {
	s0, s1 := p.S0, p.S1
	p.S0 += bits.RotateLeft32(s1^0x1234567F, -7)
	p.S1 = bits.RotateLeft32(s0, -3)
	return p.S1
}

// NextN returns a value in 0..high inclusive.
func (p *Prng) NextN(high int32) int32 {
	return p.NextRange(0, high)
}

// NextRange returns a value in low..high inclusive.
func (p *Prng) NextRange(low, high int32) int32 {
	positive := int32(p.Next() & 0x7FFFFFFF)
	return low + positive%(high+1-low)
}
