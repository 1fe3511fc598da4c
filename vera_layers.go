// vera_layers.go - per-layer derived property cache
//
// Implements spec.md §4.5/§9's REDESIGN FLAG directly: a fixed 16-slot
// array with a generation counter stands in for the source's intrusive
// doubly-linked LRU. Behaviour is observationally identical — the record
// most recently used for a given layer is always retained — without the
// pointer-splicing. Invalidation shape grounded on video_chip.go's
// markRegionDirty/initialiseDirtyGrid ("invalidate coarsely, rebuild
// lazily") idiom, applied here to a signature-keyed cache rather than a
// screen grid.
package vera65c02

const layerCacheSlots = 16

// LayerProps is the derived, signature-keyed record for one layer. It is
// rebuilt (or retrieved from the LRU) whenever a register write changes
// the layer's signature, and is otherwise mutated in place for scroll-only
// updates.
type LayerProps struct {
	Signature uint32 // 24-bit, from the layer's first three registers

	Depth      int // bits per pixel: 1, 2, 4, or 8
	BitmapMode bool
	TextMode   bool

	MapBase  uint32
	TileBase uint32

	ScrollX, ScrollY int

	MapWidthLog2, MapHeightLog2 byte
	TileW, TileH                int

	// TileShadow/TileStride are the read-only view into the VRAM shadow
	// selected by Depth (spec.md's "tile back buffer").
	TileShadow []byte
	TileStride int

	// BackBuffer is the optional rendered-once, read-many pixel-domain
	// image of the full map (spec.md's "layer back buffer"). The renderer
	// samples it when it is set, and a VRAM write that might invalidate it
	// releases it; nothing in this package builds it, so it stays nil and
	// the renderer composes from the tile/bitmap data directly.
	BackBuffer       []byte
	BackBufferWidth  int
	BackBufferHeight int
}

// MapWidth and MapHeight return the layer's map dimensions in tiles.
func (p *LayerProps) MapWidth() int  { return 32 << p.MapWidthLog2 }
func (p *LayerProps) MapHeight() int { return 32 << p.MapHeightLog2 }

type layerCacheSlot struct {
	valid      bool
	signature  uint32
	generation uint64
	props      *LayerProps
}

// layerPropertyCache is the 16-slot LRU shared by both layers.
type layerPropertyCache struct {
	slots      [layerCacheSlots]layerCacheSlot
	generation uint64
}

func (c *layerPropertyCache) touch(slot int) {
	c.generation++
	c.slots[slot].generation = c.generation
}

// lookup returns the cached record for signature, if any, marking it
// most-recently-used.
func (c *layerPropertyCache) lookup(signature uint32) *LayerProps {
	for i := range c.slots {
		if c.slots[i].valid && c.slots[i].signature == signature {
			c.touch(i)
			return c.slots[i].props
		}
	}
	return nil
}

// store evicts the least-recently-used slot (if all 16 are occupied) and
// installs props under signature.
func (c *layerPropertyCache) store(signature uint32, props *LayerProps) {
	victim := 0
	for i := range c.slots {
		if !c.slots[i].valid {
			victim = i
			break
		}
		if c.slots[i].generation < c.slots[victim].generation {
			victim = i
		}
	}
	c.slots[victim] = layerCacheSlot{valid: true, signature: signature, props: props}
	c.touch(victim)
}

// layerSignature assembles the 24-bit cache key from a layer's first
// three registers. spec.md §9 treats the exact function as
// implementation-defined as long as the invalidation invariant holds; this
// concatenates with no information loss.
func layerSignature(config, mapBase, tileBase byte) uint32 {
	return uint32(config) | uint32(mapBase)<<8 | uint32(tileBase)<<16
}

// decodeLayerProps builds a fresh LayerProps from raw register bytes and
// the owning VRAM's shadows.
func decodeLayerProps(config, mapBase, tileBase, hscrollL, hscrollH, vscrollL, vscrollH byte, vram *VRAM) *LayerProps {
	depthCode := config & 0x03
	depths := [4]int{1, 2, 4, 8}
	p := &LayerProps{
		Signature:     layerSignature(config, mapBase, tileBase),
		Depth:         depths[depthCode],
		BitmapMode:    config&0x04 != 0,
		TextMode:      config&0x08 != 0,
		MapBase:       uint32(mapBase) << 9,
		TileBase:      uint32(tileBase&0xFC) << 9,
		MapWidthLog2:  (config >> 6) & 0x03,
		MapHeightLog2: (config >> 4) & 0x03,
	}
	if tileBase&0x02 != 0 {
		p.TileH = 16
	} else {
		p.TileH = 8
	}
	if tileBase&0x01 != 0 {
		p.TileW = 16
	} else {
		p.TileW = 8
	}
	p.applyScroll(hscrollL, hscrollH, vscrollL, vscrollH)
	p.TileShadow, p.TileStride = vram.Shadow(p.Depth)
	return p
}

func (p *LayerProps) applyScroll(hscrollL, hscrollH, vscrollL, vscrollH byte) {
	p.ScrollX = int(uint16(hscrollL) | uint16(hscrollH)<<8)
	p.ScrollY = int(uint16(vscrollL) | uint16(vscrollH)<<8)
}
