// vera_render.go - scanline renderer
//
// Sweeps a fractional scan position at a pixel-clock-to-CPU-clock ratio,
// composing one 640-wide line at a time: sprites into per-column scratch
// arrays under a cycle budget, two tile/bitmap/text layers sampled from
// their cached back buffers or on the fly, a border fill, and palette
// expansion into packed RGB. Grounded on video_antic.go's scanline sweep
// and per-mode-line dispatch, generalized from ANTIC's single-playfield
// model to VERA's two-layer-plus-sprite compositor.
package vera65c02

const (
	scanWidth  = 800
	scanHeight = 525

	screenWidth  = 640
	screenHeight = 480

	pixelClockRatioVGA  = 25.175 / 8.0
	pixelClockRatioNTSC = 12.6 / 8.0

	spriteLineBudget = 800
)

const (
	isrVSync     = 0x01
	isrRasterLn  = 0x02
	isrCollision = 0x04
	isrPCMFIFO   = 0x08
)

// Renderer owns the raster state described in spec.md §3: a fractional
// scan position, the integer line counter, the frame counter, per-column
// sprite scratch arrays, and the packed-RGB framebuffer.
type Renderer struct {
	vera *VERA

	scanX float64
	line  int
	Frame uint32

	spriteColor   [screenWidth]byte
	spriteZ       [screenWidth]byte
	spriteMask    [screenWidth]byte
	spriteDrawn   [screenWidth]bool
	collisionAccum byte

	lineBuf [screenWidth]byte

	// Framebuffer holds screenWidth*screenHeight packed RGB triples,
	// row-major.
	Framebuffer []byte
}

func NewRenderer(v *VERA) *Renderer {
	return &Renderer{
		vera:        v,
		Framebuffer: make([]byte, screenWidth*screenHeight*3),
	}
}

func (r *Renderer) reset() {
	r.scanX = 0
	r.line = 0
	r.Frame = 0
	r.collisionAccum = 0
	for i := range r.Framebuffer {
		r.Framebuffer[i] = 0
	}
}

func (r *Renderer) outputMode() byte   { return r.vera.Composer(0) & 0x03 }
func (r *Renderer) chromaDisable() bool { return r.vera.Composer(0)&0x80 != 0 }
func (r *Renderer) composeMode() byte  { return (r.vera.Composer(0) >> 4) & 0x07 }

// Line returns the current raster line, for tests and debug tooling.
func (r *Renderer) Line() int { return r.line }

// Step advances the fractional scan position by one pixel-clock tick. When
// it crosses the scan width it wraps and sweeps one line, per spec.md
// §4.4.
func (r *Renderer) Step() {
	ratio := pixelClockRatioVGA
	if r.outputMode() == 2 {
		ratio = pixelClockRatioNTSC
	}
	r.scanX += ratio
	if r.scanX < scanWidth {
		return
	}
	r.scanX -= scanWidth
	r.endOfLine()
}

func (r *Renderer) endOfLine() {
	if uint16(r.line) == r.vera.rasterCompare && r.vera.ien&isrRasterLn != 0 {
		r.vera.isr |= isrRasterLn
	}
	if r.line >= 0 && r.line < screenHeight {
		r.composeLine()
	}
	r.line++
	if r.line == screenHeight {
		if r.vera.ien&isrCollision != 0 && r.collisionAccum != 0 {
			r.vera.isr |= isrCollision | r.collisionAccum<<4
		}
		r.collisionAccum = 0
	}
	if r.line >= scanHeight {
		r.line = 0
		r.Frame++
		if r.vera.ien&isrVSync != 0 {
			r.vera.isr |= isrVSync
		}
	}
}

// composeLine implements spec.md §4.4's per-line composition pipeline.
func (r *Renderer) composeLine() {
	mode := r.composeMode()
	spriteEnabled := mode >= 4
	layer0Enabled := mode == 1 || mode == 3 || mode == 5 || mode == 7
	layer1Enabled := mode == 2 || mode == 3 || mode == 6 || mode == 7

	for x := 0; x < screenWidth; x++ {
		r.spriteColor[x] = 0
		r.spriteZ[x] = 0
		r.spriteMask[x] = 0
		r.spriteDrawn[x] = false
	}

	if spriteEnabled {
		r.renderSprites()
	}

	var layer0Px, layer1Px [screenWidth]byte
	if layer0Enabled {
		r.composeLayer(0, &layer0Px)
	}
	if layer1Enabled {
		r.composeLayer(1, &layer1Px)
	}

	hstart := int(r.vera.Composer(4)) * 4
	hstop := int(r.vera.Composer(5)) * 4
	border := r.vera.Composer(3)

	for x := 0; x < screenWidth; x++ {
		var idx byte
		if x < hstart || x >= hstop {
			idx = border
		} else {
			idx = r.blend(x, layer0Enabled, layer1Enabled, layer0Px[x], layer1Px[x])
		}
		r.lineBuf[x] = idx
	}

	r.expandLine()
}

// blend applies the z-depth priority rule from spec.md §4.4: z=3 sprites
// sit over both layers, z=2 sit between them, and z=1 sit behind layer-1
// but still in front of an empty z=1/z=0 stack (a sprite never outranks
// layer-0 at z=1). z=0 sprites never reach here (renderSprites skips
// them).
func (r *Renderer) blend(x int, l0, l1 bool, p0, p1 byte) byte {
	z := r.spriteZ[x]
	sprite := r.spriteColor[x]

	tryLayer1 := func() (byte, bool) {
		if l1 && p1 != 0 {
			return p1, true
		}
		return 0, false
	}
	tryLayer0 := func() (byte, bool) {
		if l0 && p0 != 0 {
			return p0, true
		}
		return 0, false
	}
	trySprite := func() (byte, bool) {
		if z != 0 && sprite != 0 {
			return sprite, true
		}
		return 0, false
	}

	var order [3]func() (byte, bool)
	switch z {
	case 3:
		order = [3]func() (byte, bool){trySprite, tryLayer1, tryLayer0}
	case 2:
		order = [3]func() (byte, bool){tryLayer1, trySprite, tryLayer0}
	default: // 1 and 0
		order = [3]func() (byte, bool){tryLayer1, tryLayer0, trySprite}
	}
	for _, try := range order {
		if v, ok := try(); ok {
			return v
		}
	}
	return 0
}

// renderSprites draws every visible sprite's current row into the shared
// per-column scratch arrays, charging the per-line budget from spec.md
// §4.4 and stopping once it is exhausted. Lower-index sprites have
// priority at a pixel; overlap still latches a collision.
func (r *Renderer) renderSprites() {
	budget := spriteLineBudget
	for i := 0; i < spriteCount; i++ {
		s := r.vera.sprites.decode(r.vera.VRAM, i)
		if !s.Valid {
			continue
		}
		row := r.line - s.Y
		if row < 0 || row >= s.Height() {
			continue
		}
		s.build(r.vera.VRAM)
		cost := s.LineCost[row]
		if budget < cost {
			break
		}
		budget -= cost

		srcRow := row
		if s.VFlip {
			srcRow = s.Height() - 1 - row
		}
		width := s.Width()
		for col := 0; col < width; col++ {
			screenX := s.X + col
			if screenX < 0 || screenX >= screenWidth {
				continue
			}
			srcCol := col
			if s.HFlip {
				srcCol = width - 1 - col
			}
			pixel := s.Bitmap[srcRow*width+srcCol]
			if pixel == 0 {
				continue
			}
			if r.spriteDrawn[screenX] {
				r.collisionAccum |= s.Collision | r.spriteMask[screenX]
				continue
			}
			color := pixel
			if s.ColorBpp == 4 {
				color = s.PaletteOff<<4 | pixel
			}
			r.spriteColor[screenX] = color
			r.spriteZ[screenX] = byte(s.Z)
			r.spriteMask[screenX] = s.Collision
			r.spriteDrawn[screenX] = true
		}
	}
}

// composeLayer fills out with one line's worth of composited layer
// pixels, sampling the cached back buffer with horizontal scaling when
// available and falling back to an on-the-fly tile/text/bitmap sample
// otherwise (spec.md §4.4 step 2).
func (r *Renderer) composeLayer(layer int, out *[screenWidth]byte) {
	p := r.vera.ensureLayerProps(layer)
	hscale := r.vera.Composer(1)
	var xaccum uint32
	for x := 0; x < screenWidth; x++ {
		xaccum += uint32(hscale)
		effX := int(xaccum >> 7)
		if p.BackBuffer != nil && p.BackBufferWidth > 0 && p.BackBufferHeight > 0 {
			sx := wrapMod(effX+p.ScrollX, p.BackBufferWidth)
			sy := wrapMod(r.line+p.ScrollY, p.BackBufferHeight)
			out[x] = p.BackBuffer[sy*p.BackBufferWidth+sx]
			continue
		}
		out[x] = r.sampleLayerPixel(p, effX, r.line)
	}
}

func wrapMod(v, m int) int {
	if m <= 0 {
		return 0
	}
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// sampleLayerPixel composes one pixel directly from the tile map (or
// linear bitmap) and tile-data shadow, without a rendered back buffer.
func (r *Renderer) sampleLayerPixel(p *LayerProps, x, y int) byte {
	sx := x + p.ScrollX
	sy := y + p.ScrollY
	stride := p.TileStride
	if len(p.TileShadow) == 0 || stride == 0 {
		return 0
	}

	if p.BitmapMode {
		width := p.MapWidth() * p.TileW
		height := p.MapHeight() * p.TileH
		bx := wrapMod(sx, width)
		by := wrapMod(sy, height)
		idx := uint32(by*width+bx) * uint32(stride)
		return p.TileShadow[int(idx)%len(p.TileShadow)]
	}

	mapW, mapH := p.MapWidth(), p.MapHeight()
	tileCol := wrapMod(sx/p.TileW, mapW)
	tileRow := wrapMod(sy/p.TileH, mapH)
	inTileX := wrapMod(sx, p.TileW)
	inTileY := wrapMod(sy, p.TileH)

	mapEntryAddr := p.MapBase + uint32(tileRow*mapW+tileCol)*2
	lo := r.vera.VRAM.Read(mapEntryAddr)
	hi := r.vera.VRAM.Read(mapEntryAddr + 1)

	var tileIndex int
	var paletteOff byte
	if p.TextMode {
		tileIndex = int(lo)
		paletteOff = hi & 0x0F
	} else {
		tileIndex = int(lo) | int(hi&0x03)<<8
		paletteOff = (hi >> 4) & 0x0F
	}

	tileBytes := p.TileW * p.TileH * p.Depth / 8
	tileAddr := p.TileBase + uint32(tileIndex*tileBytes)
	pixelOffset := inTileY*p.TileW + inTileX
	idx := uint32(tileAddr)*uint32(stride) + uint32(pixelOffset)
	raw := p.TileShadow[int(idx)%len(p.TileShadow)]
	if p.Depth <= 4 {
		return paletteOff<<4 | raw
	}
	return raw
}

// expandLine converts the composed palette-index line into packed RGB,
// applying chroma-disable averaging, output-mode-0 forced blue, and NTSC
// overscan dimming (spec.md §4.4 steps 5-6).
func (r *Renderer) expandLine() {
	mode := r.outputMode()
	chroma := r.chromaDisable()
	ntsc := mode == 2

	hMargin := screenWidth * 67 / 1000
	vMargin := int(float64(screenHeight) * 0.05)
	overscan := ntsc && (r.line < vMargin || r.line >= screenHeight-vMargin)

	rowBase := r.line * screenWidth * 3
	for x := 0; x < screenWidth; x++ {
		var red, green, blue byte
		if mode == 0 {
			red, green, blue = 0, 0, 255
		} else {
			red, green, blue = r.readPaletteRGB(r.lineBuf[x])
			if chroma {
				avg := (uint16(red) + uint16(green) + uint16(blue)) / 3
				red, green, blue = byte(avg), byte(avg), byte(avg)
			}
		}
		if overscan || (ntsc && (x < hMargin || x >= screenWidth-hMargin)) {
			red, green, blue = red/4, green/4, blue/4
		}
		off := rowBase + x*3
		if off+2 < len(r.Framebuffer) {
			r.Framebuffer[off] = red
			r.Framebuffer[off+1] = green
			r.Framebuffer[off+2] = blue
		}
	}
}

// readPaletteRGB expands one 12-bit palette entry (stored as two bytes,
// GGGGBBBB / 0000RRRR, aliased into VRAM at palStart) to 8-bit-per-channel
// RGB by nibble replication.
func (r *Renderer) readPaletteRGB(idx byte) (red, green, blue byte) {
	base := uint32(palStart) + uint32(idx)*2
	lo := r.vera.VRAM.Read(base)
	hi := r.vera.VRAM.Read(base + 1)
	green = expandNibble(lo >> 4)
	blue = expandNibble(lo & 0x0F)
	red = expandNibble(hi & 0x0F)
	return
}

func expandNibble(n byte) byte {
	n &= 0x0F
	return n | n<<4
}
