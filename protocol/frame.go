package protocol

// Frame is one decoded message
type Frame struct {
	Seq     uint8
	Payload []byte
}

// EncodeFrame appends one frame to out; fill writes the payload. seq is
// masked to its low nibble.
func EncodeFrame(out OutputBuffer, seq uint8, fill func(out OutputBuffer)) {
	cursor := out.CurPosition()
	out.Output([]byte{0, MessageDest | seq&MessageSeqMask})

	fill(out)

	n := len(out.DataSince(cursor))
	out.Update(cursor, uint8(n+MessageTrailerSize))

	crc := CRC16(out.DataSince(cursor))
	out.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}

// Decoder splits a byte stream into frames. On a bad length, destination,
// sync byte or CRC it drops input up to the next sync byte and carries on.
type Decoder struct {
	fifo     *FifoBuffer
	synced   bool
	discards uint32
}

// NewDecoder creates a Decoder with room for a few frames of backlog
func NewDecoder() *Decoder {
	return &Decoder{
		fifo:   NewFifoBuffer(4 * MessageLengthMax),
		synced: true,
	}
}

// Discards returns how many times the decoder lost synchronization
func (d *Decoder) Discards() uint32 {
	return d.discards
}

// Feed consumes data and returns every frame completed by it. Payloads are
// copies and stay valid after the next call.
func (d *Decoder) Feed(data []byte) []Frame {
	var frames []Frame
	for len(data) > 0 {
		n := d.fifo.Write(data)
		data = data[n:]
		frames = d.parse(frames)
		if n == 0 && d.fifo.Free() == 0 {
			// A full ring that parses to nothing is garbage
			d.desync()
			frames = d.parse(frames)
		}
	}
	return frames
}

func (d *Decoder) desync() {
	d.synced = false
	d.discards++
}

func (d *Decoder) parse(frames []Frame) []Frame {
	buf := d.fifo.Data()
	consumed := 0

	for consumed < len(buf) {
		data := buf[consumed:]

		if !d.synced {
			pos := -1
			for i, b := range data {
				if b == MessageValueSync {
					pos = i
					break
				}
			}
			if pos < 0 {
				consumed = len(buf)
				break
			}
			consumed += pos + 1
			d.synced = true
			continue
		}

		if data[0] == MessageValueSync {
			consumed++
			continue
		}
		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}
		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}
		if len(data) < msgLen {
			break
		}
		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}
		crc := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if crc != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		frames = append(frames, Frame{Seq: seq & MessageSeqMask, Payload: payload})
		consumed += msgLen
	}

	d.fifo.Pop(consumed)
	return frames
}

// Reset drops buffered input and resynchronizes
func (d *Decoder) Reset() {
	d.fifo.Reset()
	d.synced = true
}
