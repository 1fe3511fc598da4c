// Package vera65c02 implements the cycle-timed core of a 65C02-class
// retro computer: the CPU interpreter, the address-decoded memory bus, and
// the VERA-style video coprocessor.
//
// The host windowing/graphics presentation layer, the audio synthesis
// chips, the GIF recorder, the debugger UI/shell, ROM image loading and
// binary snapshot file I/O are all external collaborators. This package
// models them only by the narrow interface the core requires (opaque
// register banks for audio/VIA/RTC/LCD, a byte-layout description for
// snapshots) and never performs real file or device I/O itself.
package vera65c02
