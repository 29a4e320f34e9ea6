// Package trace decodes the register trace stream sent by the firmware.
package trace

import (
	"fmt"
	"io"

	"f1hal/core"
	"f1hal/protocol"
)

// Event is one decoded register write
type Event struct {
	Seq uint8
	core.TraceEvent
}

// Decode parses one frame payload
func Decode(f protocol.Frame) (Event, error) {
	rec, err := protocol.DecodeTrace(f.Payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Seq: f.Seq,
		TraceEvent: core.TraceEvent{
			Kind:  core.TraceKind(rec.Kind),
			Port:  core.Port(rec.Port),
			Pin:   rec.Pin,
			Value: rec.Value,
			Arg:   rec.Arg,
		},
	}, nil
}

// Register returns the name of the register the event wrote
func (e Event) Register() string {
	switch e.Kind {
	case core.TraceMode, core.TraceType:
		reg := "CRL"
		if e.Pin >= 8 {
			reg = "CRH"
		}
		return "GPIO" + e.Port.String() + "_" + reg
	case core.TraceWrite:
		return "GPIO" + e.Port.String() + "_ODR"
	case core.TraceEdge:
		return "EXTI_RTSR/FTSR"
	case core.TraceSource:
		return fmt.Sprintf("AFIO_EXTICR%d", e.Arg+1)
	case core.TraceEnable, core.TraceDisable:
		return "EXTI_IMR"
	case core.TraceClear:
		return "EXTI_PR"
	case core.TraceClock:
		return "RCC_APB2ENR"
	case core.TraceRemap:
		return "AFIO_MAPR"
	}
	return "?"
}

// String formats the event for a terminal
func (e Event) String() string {
	target := fmt.Sprintf("line %d", e.Pin)
	if e.Port < core.NumPorts {
		target = fmt.Sprintf("P%s%d", e.Port, e.Pin)
	}
	switch e.Kind {
	case core.TraceEdge:
		return fmt.Sprintf("[%2d] %-7s %-8s %-16s rising=%t falling=%t",
			e.Seq, e.Kind, target, e.Register(), e.Value&1 != 0, e.Value&2 != 0)
	case core.TraceEnable, core.TraceDisable:
		return fmt.Sprintf("[%2d] %-7s %-8s %-16s = 0x%08X irq=%d",
			e.Seq, e.Kind, target, e.Register(), e.Value, e.Arg)
	case core.TraceClock:
		return fmt.Sprintf("[%2d] %-7s bit %-4d %-16s = 0x%08X on=%t",
			e.Seq, e.Kind, e.Pin, e.Register(), e.Value, e.Arg != 0)
	}
	return fmt.Sprintf("[%2d] %-7s %-8s %-16s = 0x%08X arg=0x%X",
		e.Seq, e.Kind, target, e.Register(), e.Value, e.Arg)
}

// Reader pulls events out of a byte stream
type Reader struct {
	r       io.Reader
	dec     *protocol.Decoder
	pending []Event
	buf     [256]byte
}

// NewReader creates a Reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:   r,
		dec: protocol.NewDecoder(),
	}
}

// Next returns the next event. Frames that are not trace records are
// skipped. io.EOF from the underlying reader is returned once every
// buffered event has been delivered; a read that returns no data and no
// error (a serial timeout) yields io.EOF as well.
func (r *Reader) Next() (Event, error) {
	for len(r.pending) == 0 {
		n, err := r.r.Read(r.buf[:])
		for _, f := range r.dec.Feed(r.buf[:n]) {
			evt, derr := Decode(f)
			if derr != nil {
				continue
			}
			r.pending = append(r.pending, evt)
		}
		if len(r.pending) > 0 {
			break
		}
		if err != nil {
			return Event{}, err
		}
		if n == 0 {
			return Event{}, io.EOF
		}
	}
	evt := r.pending[0]
	r.pending = r.pending[1:]
	return evt, nil
}

// Discards returns how many times the stream lost framing
func (r *Reader) Discards() uint32 {
	return r.dec.Discards()
}
