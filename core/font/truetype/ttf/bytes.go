package ttf

import (
	"errors"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data. We use it throughout this package to
// navigate the font's binary data.
//
// There are two flavours of access. The lenient readers (read8, readU16, …) never
// fail: a read at a negative offset or past the end of the segment returns 0.
// Glyph decoding and rendering rely on them exclusively. The strict readers (view,
// u16, u32) return errBufferBounds instead and are used for validation.
type binarySegm []byte

func (b binarySegm) Size() int {
	return len(b)
}

func (b binarySegm) read8(offset int) uint8 {
	if offset < 0 || offset >= len(b) {
		return 0
	}
	return b[offset]
}

func (b binarySegm) readU16(offset int) uint16 {
	if offset < 0 || offset+2 > len(b) {
		return 0
	}
	return u16(b[offset:])
}

func (b binarySegm) readS16(offset int) int16 {
	return int16(b.readU16(offset))
}

func (b binarySegm) readU32(offset int) uint32 {
	if offset < 0 || offset+4 > len(b) {
		return 0
	}
	return u32(b[offset:])
}

func (b binarySegm) readS32(offset int) int32 {
	return int32(b.readU32(offset))
}

// hasTag checks if the 4 bytes at offset spell out tag.
func (b binarySegm) hasTag(offset int, tag Tag) bool {
	if offset < 0 || offset+4 > len(b) {
		return false
	}
	return Tag(u32(b[offset:])) == tag
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Tags ------------------------------------------------------------------

// Tag identifies a table of a font, e.g. 'cmap' or 'GPOS'. It is made of
// four ASCII bytes, packed big-endian.
type Tag uint32

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3]))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}
