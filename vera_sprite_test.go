package vera65c02

import "testing"

// TestSpriteZOrder verifies testable property 8: with layer-0, layer-1,
// and a z=3 sprite all covering pixel x, the composited output is the
// sprite colour; with z=1 and layer-1 present, the output is the layer-1
// colour.
func TestSpriteZOrder(t *testing.T) {
	r := &Renderer{}

	r.spriteColor[0] = 0x55
	r.spriteZ[0] = 3
	if got := r.blend(0, true, true, 0x11, 0x22); got != 0x55 {
		t.Fatalf("z=3 blend = %#x, want sprite colour 0x55", got)
	}

	r.spriteZ[0] = 1
	if got := r.blend(0, true, true, 0x11, 0x22); got != 0x22 {
		t.Fatalf("z=1 blend with layer-1 present = %#x, want layer-1 colour 0x22", got)
	}
}

// TestSpriteZOrderBetweenLayers checks z=2's documented ordering: layer-1
// wins over the sprite, and the sprite wins over layer-0.
func TestSpriteZOrderBetweenLayers(t *testing.T) {
	r := &Renderer{}
	r.spriteColor[0] = 0x55
	r.spriteZ[0] = 2

	if got := r.blend(0, true, true, 0x11, 0x22); got != 0x22 {
		t.Fatalf("z=2 with layer-1 opaque = %#x, want layer-1 colour 0x22 (layer-1 wins)", got)
	}
	if got := r.blend(0, true, false, 0x11, 0); got != 0x55 {
		t.Fatalf("z=2 with layer-1 absent = %#x, want sprite colour 0x55 (sprite wins over layer-0)", got)
	}
}

// TestSpriteDisabledAtZZero confirms z=0 means "disabled": decodeSpriteProps
// marks it invalid and it never reaches the scratch arrays.
func TestSpriteDisabledAtZZero(t *testing.T) {
	attr := make([]byte, spriteAttrStride)
	attr[6] = 0x00 // z bits (2-3) are 0
	s := decodeSpriteProps(attr)
	if s.Valid {
		t.Fatalf("sprite with z=0 decoded as Valid")
	}
}

// TestSpriteCollision verifies S6: two z=3 sprites with overlapping
// collision masks latch the combined mask when they overlap on screen.
func TestSpriteCollision(t *testing.T) {
	v := NewVERA()

	writeSprite := func(index int, x, y int, mask byte) {
		base := spriteStart + uint32(index*spriteAttrStride)
		v.VRAM.Write(base+0, 0x00) // bitmap addr low (unused bits for this test)
		v.VRAM.Write(base+1, 0x00)
		v.VRAM.Write(base+2, byte(x))
		v.VRAM.Write(base+3, byte((x>>8)&0x03))
		v.VRAM.Write(base+4, byte(y))
		v.VRAM.Write(base+5, byte((y>>8)&0x03))
		v.VRAM.Write(base+6, 0x0C|mask<<4) // z=3 (bits2-3=11), collision mask in bits4-7
		v.VRAM.Write(base+7, 0x00)         // 8x8, bpp=4, palette 0
	}

	// Sprite bitmap data: a solid non-transparent 8x8 block so every pixel
	// in range is opaque (palette index != 0).
	fillBitmap := func() {
		for i := uint32(0); i < 32; i++ { // 8x8 at 4bpp = 32 bytes
			v.VRAM.Write(uint32(0)+i, 0x11)
		}
	}
	fillBitmap()

	writeSprite(0, 10, 10, 0x01)
	writeSprite(1, 12, 10, 0x02) // overlaps sprite 0 in columns 12-17

	v.WriteRegister(0x09, 0x40)          // composer mode = sprites-only
	v.WriteRegister(0x06, isrCollision) // enable collision IRQ

	for line := 0; line < screenHeight+1; line++ {
		v.Renderer.endOfLine()
	}

	if v.isr&isrCollision == 0 {
		t.Fatalf("collision status bit not set after overlapping z=3 sprites")
	}
	gotMask := v.isr >> 4
	if gotMask != 0x03 {
		t.Fatalf("collision mask = %#x, want 0x03 (0x01|0x02)", gotMask)
	}
}
