// vera.go - VERA register file and address-cursor engine
//
// The 32 CPU-visible video registers ($9F20-$9F3F) and the two
// auto-incrementing 17-bit address cursors into video space. Modelled on
// video_chip.go's HandleRead/HandleWrite register switch, generalized from
// one flat register file to VERA's cursor/composer/layer/sprite register
// groups.
package vera65c02

// incrementMagnitudes is the 16 magnitudes spec.md §4.3's 32-entry
// auto-increment table pairs up: 5-bit code 2n/2n+1 share magnitude
// incrementMagnitudes[n], with the odd code of the pair negated (code 0
// and 1 both mean "no movement").
var incrementMagnitudes = [16]int32{
	0, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 40, 80, 160, 320, 640,
}

func incrementStep(code byte) int32 {
	mag := incrementMagnitudes[(code&0x1F)>>1]
	if code&0x01 != 0 {
		return -mag
	}
	return mag
}

type addrCursor struct {
	addr    uint32 // 17-bit
	incCode byte   // 5-bit
	latch   byte   // pre-latched byte, returned by the next $03/$04 read
}

func (cur *addrCursor) loadLatch(vram *VRAM) {
	cur.latch = vram.Read(cur.addr)
}

func (cur *addrCursor) advance() {
	cur.addr = uint32(int64(cur.addr)+int64(incrementStep(cur.incCode))) & 0x1FFFF
}

// VERA is the video coprocessor's register/address-cursor front end. The
// scanline renderer (vera_render.go) and the layer/sprite caches
// (vera_layers.go, vera_sprites.go) are driven by the state this struct
// owns.
type VERA struct {
	VRAM *VRAM

	cursors [2]addrCursor
	addrSel byte
	dcSel   byte

	ien byte
	isr byte

	rasterCompare uint16 // 9 bits: reg08 low 8 + reg06 bit7

	composer  [2][4]byte
	layerRegs [2][7]byte
	pcm       [3]byte
	spi       [2]byte

	layerCache layerPropertyCache
	layerProps [2]*LayerProps
	layerDirty [2]bool

	sprites *spriteCache

	Renderer *Renderer
}

// NewVERA builds a VERA with a fresh 128 KiB VRAM and wires its write
// notifications into the layer/sprite invalidation logic (spec.md §4.5).
func NewVERA() *VERA {
	v := &VERA{
		VRAM:       NewVRAM(),
		sprites:    newSpriteCache(),
		layerDirty: [2]bool{true, true},
	}
	v.VRAM.OnWrite = v.onVRAMWrite
	v.Renderer = NewRenderer(v)
	return v
}

// Reset implements the full video reset triggered by writing $80 to
// register $05: all register state returns to power-on defaults. VRAM
// contents are untouched.
func (v *VERA) Reset() {
	v.cursors = [2]addrCursor{}
	v.addrSel = 0
	v.dcSel = 0
	v.ien = 0
	v.isr = 0
	v.rasterCompare = 0
	v.composer = [2][4]byte{}
	v.layerRegs = [2][7]byte{}
	v.pcm = [3]byte{}
	v.spi = [2]byte{}
	v.layerCache = layerPropertyCache{}
	v.layerProps = [2]*LayerProps{}
	v.layerDirty = [2]bool{true, true}
	v.sprites = newSpriteCache()
	v.Renderer.reset()
}

func (v *VERA) onVRAMWrite(addr uint32) {
	for layer := 0; layer < 2; layer++ {
		if v.layerProps[layer] == nil {
			continue
		}
		v.invalidateLayerBackBuffer(layer, addr)
	}
	v.sprites.onVRAMWrite(addr)
}

// ReadRegister and WriteRegister take an offset already relative to the
// video register base ($9F20).
func (v *VERA) ReadRegister(off uint16) byte {
	switch off {
	case 0x00:
		return byte(v.activeCursor().addr)
	case 0x01:
		return byte(v.activeCursor().addr >> 8)
	case 0x02:
		cur := v.activeCursor()
		hi := byte(cur.addr>>16) & 0x01
		return hi | cur.incCode<<3
	case 0x03, 0x04:
		cur := v.activeCursor()
		b := cur.latch
		cur.advance()
		cur.loadLatch(v.VRAM)
		return b
	case 0x05:
		return v.addrSel | v.dcSel<<1
	case 0x06:
		hi := byte(0)
		if v.rasterCompare&0x100 != 0 {
			hi = 0x80
		}
		return v.ien | hi
	case 0x07:
		return v.isr
	case 0x08:
		return byte(v.rasterCompare)
	case 0x09, 0x0A, 0x0B, 0x0C:
		return v.composer[v.dcSel][off-0x09]
	case 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13:
		return v.layerRegs[0][off-0x0D]
	case 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1A:
		return v.layerRegs[1][off-0x14]
	case 0x1B, 0x1C, 0x1D:
		return v.pcm[off-0x1B]
	case 0x1E, 0x1F:
		return v.spi[off-0x1E]
	default:
		return 0
	}
}

func (v *VERA) WriteRegister(off uint16, val byte) {
	switch off {
	case 0x00:
		cur := v.activeCursor()
		cur.addr = cur.addr&^0xFF | uint32(val)
	case 0x01:
		cur := v.activeCursor()
		cur.addr = cur.addr&^0xFF00 | uint32(val)<<8
	case 0x02:
		cur := v.activeCursor()
		cur.addr = cur.addr&^0x10000 | uint32(val&0x01)<<16
		cur.incCode = (val >> 3) & 0x1F
		cur.loadLatch(v.VRAM)
	case 0x03, 0x04:
		cur := v.activeCursor()
		v.VRAM.Write(cur.addr, val)
		cur.advance()
		cur.loadLatch(v.VRAM)
	case 0x05:
		if val == 0x80 {
			v.Reset()
			return
		}
		v.addrSel = val & 0x01
		v.dcSel = (val >> 1) & 0x01
	case 0x06:
		v.ien = val & 0x0F
		v.rasterCompare = v.rasterCompare&0x0FF | uint16(val&0x80)<<1
	case 0x07:
		v.isr &^= val
	case 0x08:
		v.rasterCompare = v.rasterCompare&0x100 | uint16(val)
	case 0x09, 0x0A, 0x0B, 0x0C:
		v.composer[v.dcSel][off-0x09] = val
	case 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13:
		v.writeLayerReg(0, int(off-0x0D), val)
	case 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1A:
		v.writeLayerReg(1, int(off-0x14), val)
	case 0x1B, 0x1C, 0x1D:
		v.pcm[off-0x1B] = val
	case 0x1E, 0x1F:
		v.spi[off-0x1E] = val
	}
}

func (v *VERA) activeCursor() *addrCursor {
	return &v.cursors[v.addrSel]
}

// Composer returns logical composer register index i, i in [0,8): indices
// 0-3 are dcsel-bank-0 (mode/enable, hscale, vscale, border colour),
// indices 4-7 are dcsel-bank-1 (hstart, hstop, vstart, vstop).
func (v *VERA) Composer(i int) byte {
	return v.composer[i/4][i%4]
}

// writeLayerReg updates a layer register and applies spec.md §4.5's
// invalidation rule: registers 0-2 (config, map base, tile base) define
// the signature, so a change there either hits the LRU or forces a
// rebuild; registers 3-6 (scroll) update in place without invalidating.
func (v *VERA) writeLayerReg(layer, reg int, val byte) {
	if v.layerRegs[layer][reg] == val {
		return
	}
	v.layerRegs[layer][reg] = val
	if reg <= 2 {
		v.invalidateLayerSignature(layer)
	} else if v.layerProps[layer] != nil {
		r := v.layerRegs[layer]
		v.layerProps[layer].applyScroll(r[3], r[4], r[5], r[6])
	}
}

// invalidateLayerSignature marks the layer dirty so the renderer rebuilds
// (or fetches from the LRU) its derived record before the next composed
// line.
func (v *VERA) invalidateLayerSignature(layer int) {
	v.layerDirty[layer] = true
}

// ensureLayerProps retrieves-or-builds the derived record for layer,
// following spec.md §4.5: reuse from the 16-slot LRU on a signature hit,
// otherwise decode fresh from the raw registers.
func (v *VERA) ensureLayerProps(layer int) *LayerProps {
	if !v.layerDirty[layer] && v.layerProps[layer] != nil {
		return v.layerProps[layer]
	}
	r := v.layerRegs[layer]
	sig := layerSignature(r[0], r[1], r[2])

	if cached := v.layerCache.lookup(sig); cached != nil {
		cached.applyScroll(r[3], r[4], r[5], r[6])
		v.layerProps[layer] = cached
		v.layerDirty[layer] = false
		return cached
	}

	if old := v.layerProps[layer]; old != nil {
		v.layerCache.store(old.Signature, old)
	}
	fresh := decodeLayerProps(r[0], r[1], r[2], r[3], r[4], r[5], r[6], v.VRAM)
	v.layerProps[layer] = fresh
	v.layerDirty[layer] = false
	return fresh
}

// invalidateLayerBackBuffer releases layer's rendered back buffer when a
// VRAM write falls in its tile-map or tile-data range (spec.md §4.5); it
// never patches the buffer in place.
func (v *VERA) invalidateLayerBackBuffer(layer int, addr uint32) {
	p := v.layerProps[layer]
	if p == nil || p.BackBuffer == nil {
		return
	}
	mapBytes := uint32(p.MapWidth() * p.MapHeight())
	if addr >= p.MapBase && addr < p.MapBase+mapBytes*2 {
		// Tile map entry changed: the affected tile can't be patched
		// without re-walking the map, so the whole back buffer is
		// released and composeLine samples the tile data directly.
		p.BackBuffer = nil
		return
	}
	tileBytes := uint32(p.TileW * p.TileH * p.Depth / 8)
	if tileBytes == 0 {
		return
	}
	if addr >= p.TileBase {
		tileIndex := (addr - p.TileBase) / tileBytes
		_ = tileIndex // a real patch would blit just this tile; conservative fallback below
		p.BackBuffer = nil
	}
}
