package fingerprint

import "encoding/binary"

// Palette interns tuples of uint32 into dense color ids starting at 0.
// A Palette is not safe for concurrent use.
type Palette struct {
	ids map[string]uint32
	buf []byte
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{ids: make(map[string]uint32)}
}

// Intern returns the color of key, assigning the next id on first sight.
func (p *Palette) Intern(key ...uint32) uint32 {
	p.buf = p.buf[:0]
	for _, k := range key {
		p.buf = binary.LittleEndian.AppendUint32(p.buf, k)
	}
	if id, ok := p.ids[string(p.buf)]; ok {
		return id
	}
	id := uint32(len(p.ids))
	p.ids[string(p.buf)] = id

	return id
}

// Len is the number of distinct colors handed out.
func (p *Palette) Len() int { return len(p.ids) }

// Combine interns, per element, the tuple of class ids taken from each
// column, for A's elements first and then B's. With no columns every
// element gets color 0.
func Combine(colsA, colsB [][]uint32, na, nb int) (ca, cb []uint32) {
	p := NewPalette()
	key := make([]uint32, len(colsA))
	ca = make([]uint32, na)
	for i := range ca {
		for k, col := range colsA {
			key[k] = col[i]
		}
		ca[i] = p.Intern(key...)
	}
	cb = make([]uint32, nb)
	for i := range cb {
		for k, col := range colsB {
			key[k] = col[i]
		}
		cb[i] = p.Intern(key...)
	}
	return ca, cb
}
