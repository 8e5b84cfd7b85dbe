// Package mouse decodes PS/2 mouse packets and moves a cursor layer across
// the screen.
package mouse

// Phase is the decoder position within the PS/2 byte stream.
type Phase uint8

const (
	// PhaseAck waits for the acknowledgement of the enable-reporting
	// command.
	PhaseAck Phase = iota

	// PhaseByte1 waits for the flags byte of a packet.
	PhaseByte1

	// PhaseByte2 waits for the X movement byte.
	PhaseByte2

	// PhaseByte3 waits for the Y movement byte.
	PhaseByte3
)

// AckByte is the device acknowledgement of the enable-reporting command.
const AckByte = 0xfa

const (
	flagLeft     = 1 << 0
	flagRight    = 1 << 1
	flagMiddle   = 1 << 2
	flagAlways1  = 1 << 3
	flagXSign    = 1 << 4
	flagYSign    = 1 << 5
	flagXOverrun = 1 << 6
	flagYOverrun = 1 << 7
)

// Packet is a decoded mouse packet. DY grows upwards, as reported by the
// device.
type Packet struct {
	DX, DY              int
	Left, Right, Middle bool
}

// Decoder assembles 3-byte PS/2 mouse packets.
type Decoder struct {
	phase Phase
	buf   [3]byte
}

// Phase returns the decoder's current phase.
func (d *Decoder) Phase() Phase {
	return d.phase
}

// Feed consumes one byte from the device and returns a packet once all
// three bytes have arrived. A flags byte without its always-set bit means
// the stream is out of sync; it is discarded so the next byte is tried as a
// flags byte.
func (d *Decoder) Feed(b byte) (Packet, bool) {
	switch d.phase {
	case PhaseAck:
		if b == AckByte {
			d.phase = PhaseByte1
		}
	case PhaseByte1:
		if b&flagAlways1 != 0 {
			d.buf[0] = b
			d.phase = PhaseByte2
		}
	case PhaseByte2:
		d.buf[1] = b
		d.phase = PhaseByte3
	case PhaseByte3:
		d.buf[2] = b
		d.phase = PhaseByte1
		return d.packet(), true
	}

	return Packet{}, false
}

func (d *Decoder) packet() Packet {
	flags := d.buf[0]

	p := Packet{
		DX:     int(d.buf[1]),
		DY:     int(d.buf[2]),
		Left:   flags&flagLeft != 0,
		Right:  flags&flagRight != 0,
		Middle: flags&flagMiddle != 0,
	}

	if flags&flagXSign != 0 {
		p.DX -= 0x100
	}
	if flags&flagYSign != 0 {
		p.DY -= 0x100
	}

	// Overflowed deltas carry no usable value.
	if flags&flagXOverrun != 0 {
		p.DX = 0
	}
	if flags&flagYOverrun != 0 {
		p.DY = 0
	}

	return p
}

// Bytes encodes p the way a PS/2 mouse transmits it. Deltas are clamped
// to the 9-bit range the protocol can carry.
func (p Packet) Bytes() [3]byte {
	flags := byte(flagAlways1)
	if p.Left {
		flags |= flagLeft
	}
	if p.Right {
		flags |= flagRight
	}
	if p.Middle {
		flags |= flagMiddle
	}

	dx, dy := max(-255, min(255, p.DX)), max(-255, min(255, p.DY))
	if dx < 0 {
		flags |= flagXSign
	}
	if dy < 0 {
		flags |= flagYSign
	}

	return [3]byte{flags, byte(dx), byte(dy)}
}

// Status is the cursor position in screen coordinates and the button state.
type Status struct {
	X, Y                int
	Left, Right, Middle bool
}

// Apply moves the cursor by p and keeps it within a w x h screen.
func (s *Status) Apply(p Packet, w, h uint32) {
	s.X = clamp(s.X+p.DX, int(w)-1)
	s.Y = clamp(s.Y-p.DY, int(h)-1)
	s.Left, s.Right, s.Middle = p.Left, p.Right, p.Middle
}

func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
