// vera_vram.go - 128 KiB video RAM and its bit-depth shadows
//
// Three shadow buffers hold pre-expanded 4bpp/2bpp/1bpp representations of
// the same underlying bytes, at strides of x2/x4/x8, so the renderer can
// index a shadow directly by pixel rather than unpacking bits on every
// sample. Grounded on video_chip.go's framebuffer-byte-slice handling,
// generalized from one buffer to VRAM-plus-shadows.
package vera65c02

const (
	vramSize = 128 * 1024

	palStart    = 0x1FA00
	palEnd      = 0x1FC00
	spriteStart = 0x1FC00
	spriteEnd   = 0x20000
	psgStart    = 0x1F9C0
	psgEnd      = 0x1FA00
)

// VRAM is the 17-bit-addressed video RAM plus its three shadow expansions.
type VRAM struct {
	Bytes []byte

	// Shadow4, Shadow2, Shadow1 hold one nibble/crumb/bit per byte,
	// expanded at 2x/4x/8x stride so the renderer samples a shadow with a
	// plain index instead of bit math.
	Shadow4 []byte
	Shadow2 []byte
	Shadow1 []byte

	// OnWrite is invoked after every committed write, with the address
	// written; vera_layers.go and vera_sprites.go hook this to patch or
	// invalidate their caches.
	OnWrite func(addr uint32)
}

func NewVRAM() *VRAM {
	return &VRAM{
		Bytes:   make([]byte, vramSize),
		Shadow4: make([]byte, vramSize*2),
		Shadow2: make([]byte, vramSize*4),
		Shadow1: make([]byte, vramSize*8),
	}
}

func (v *VRAM) Read(addr uint32) byte {
	return v.Bytes[addr%vramSize]
}

// ReadRange copies length bytes starting at addr into dst, wrapping at
// the end of VRAM. Used by the renderer, which never writes VRAM and
// falls back to this per-byte-safe helper whenever a range might cross
// the VRAM end.
func (v *VRAM) ReadRange(addr uint32, dst []byte) {
	for i := range dst {
		dst[i] = v.Bytes[(addr+uint32(i))%vramSize]
	}
}

// Write stores the byte and refreshes the three shadow expansions before
// notifying OnWrite.
func (v *VRAM) Write(addr uint32, value byte) {
	addr %= vramSize
	v.Bytes[addr] = value

	base4 := addr * 2
	v.Shadow4[base4] = value & 0x0F
	v.Shadow4[base4+1] = value >> 4

	base2 := addr * 4
	v.Shadow2[base2] = value & 0x03
	v.Shadow2[base2+1] = (value >> 2) & 0x03
	v.Shadow2[base2+2] = (value >> 4) & 0x03
	v.Shadow2[base2+3] = (value >> 6) & 0x03

	base1 := addr * 8
	for i := 0; i < 8; i++ {
		v.Shadow1[base1+uint32(i)] = (value >> uint(i)) & 0x01
	}

	if v.OnWrite != nil {
		v.OnWrite(addr)
	}
}

// Shadow returns the shadow buffer (and its stride) for the given color
// depth in bits per pixel.
func (v *VRAM) Shadow(bpp int) ([]byte, int) {
	switch bpp {
	case 1:
		return v.Shadow1, 8
	case 2:
		return v.Shadow2, 4
	case 4:
		return v.Shadow4, 2
	default:
		return v.Bytes, 1
	}
}
