// snapshot.go - persisted-state byte layout
//
// Binary snapshot save/restore is a host responsibility (spec.md §1 names
// it an external collaborator); what the core owns is the byte layout
// itself, so the host can hand this package a plain []byte without the
// core ever touching a file. Grounded on machine_bus.go's state-dump
// helper, which serializes its own owned buffers in a fixed order rather
// than delegating to per-device Marshal methods.
package vera65c02

// Snapshot returns the persisted-state byte layout: the raw low-40-KiB
// RAM block, the full banked-RAM block, the full video RAM, then the
// composer bank and the layer-register bank in that order. The palette
// and sprite-attribute banks are not appended as separate blocks; they
// are present only inside the video-RAM block.
func (m *Machine) Snapshot() []byte {
	out := make([]byte, 0, len(m.Bus.RAM)+vramSize+64)

	out = append(out, m.Bus.RAM[:lowRAMSize]...)
	out = append(out, m.Bus.RAM[lowRAMSize:]...) // banked-RAM block
	out = append(out, m.VERA.VRAM.Bytes...)       // full video RAM, includes
	// the palette and sprite-attribute banks already aliased into it

	out = appendComposerBank(out, m.VERA)
	out = appendLayerBank(out, m.VERA)

	return out
}

func appendComposerBank(out []byte, v *VERA) []byte {
	for bank := 0; bank < 2; bank++ {
		out = append(out, v.composer[bank][:]...)
	}
	return out
}

func appendLayerBank(out []byte, v *VERA) []byte {
	out = append(out, v.layerRegs[0][:]...)
	out = append(out, v.layerRegs[1][:]...)
	return out
}

// Restore loads a byte layout produced by Snapshot back into the machine.
// Video-register derived state (layer property cache, sprite cache) is
// invalidated so it is rebuilt from the restored registers and VRAM
// rather than serving stale cached records.
func (m *Machine) Restore(data []byte) {
	off := 0
	off += copy(m.Bus.RAM[:lowRAMSize], data[off:])
	off += copy(m.Bus.RAM[lowRAMSize:], data[off:])

	for i := 0; i < vramSize; i++ {
		m.VERA.VRAM.Write(uint32(i), data[off+i])
	}
	off += vramSize

	for bank := 0; bank < 2; bank++ {
		for i := 0; i < 4; i++ {
			m.VERA.composer[bank][i] = data[off]
			off++
		}
	}
	for i := 0; i < 7; i++ {
		m.VERA.layerRegs[0][i] = data[off]
		off++
	}
	for i := 0; i < 7; i++ {
		m.VERA.layerRegs[1][i] = data[off]
		off++
	}

	m.VERA.layerCache = layerPropertyCache{}
	m.VERA.layerProps = [2]*LayerProps{}
	m.VERA.layerDirty = [2]bool{true, true}
	m.VERA.sprites = newSpriteCache()
}
