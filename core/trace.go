package core

import (
	"io"

	"f1hal/protocol"
)

// TraceKind identifies the HAL operation behind a trace event
type TraceKind uint8

const (
	TraceMode    TraceKind = 1 // MODE field written, Value = CRL/CRH
	TraceType    TraceKind = 2 // CNF field written, Value = CRL/CRH
	TraceWrite   TraceKind = 3 // ODR bit written, Value = ODR
	TraceEdge    TraceKind = 4 // trigger edge selected, Value = bit0 rising, bit1 falling
	TraceSource  TraceKind = 5 // EXTI source routed, Value = EXTICR[Arg]
	TraceEnable  TraceKind = 6 // line unmasked, Value = IMR, Arg = IRQ
	TraceDisable TraceKind = 7 // line masked, Value = IMR, Arg = IRQ
	TraceClear   TraceKind = 8 // pending bit cleared, Value = PR
	TraceClock   TraceKind = 9 // clock gate changed, Pin = APB2ENR bit, Value = APB2ENR
	TraceRemap   TraceKind = 10
)

var traceNames = [...]string{
	TraceMode:    "MODE",
	TraceType:    "CNF",
	TraceWrite:   "ODR",
	TraceEdge:    "EDGE",
	TraceSource:  "EXTICR",
	TraceEnable:  "IMR+",
	TraceDisable: "IMR-",
	TraceClear:   "PR",
	TraceClock:   "APB2ENR",
	TraceRemap:   "MAPR",
}

// String returns a short register-oriented name
func (k TraceKind) String() string {
	if int(k) < len(traceNames) && traceNames[k] != "" {
		return traceNames[k]
	}
	return "UNKNOWN"
}

// TraceEvent records one register write made by the HAL
type TraceEvent struct {
	Kind  TraceKind
	Port  Port // NumPorts when not port specific or not a global port
	Pin   uint8
	Value uint32
	Arg   uint32
}

const (
	TraceRingSize = 32 // Keep the last 32 writes
)

var (
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
	traceCount    uint32
	traceEnabled  bool = true
	traceSeq      uint8
)

// SetTraceEnabled turns register tracing on or off
func SetTraceEnabled(enabled bool) {
	traceEnabled = enabled
}

// recordTrace appends an event to the ring. It may run in an interrupt
// handler, so the ring update is a critical section.
func recordTrace(kind TraceKind, port Port, pin uint8, value, arg uint32) {
	if !traceEnabled {
		return
	}
	state := disableInterrupts()
	traceRing[traceRingHead] = TraceEvent{
		Kind:  kind,
		Port:  port,
		Pin:   pin,
		Value: value,
		Arg:   arg,
	}
	traceRingHead = (traceRingHead + 1) % TraceRingSize
	traceCount++
	restoreInterrupts(state)
}

// TraceEvents returns the buffered events, oldest first
func TraceEvents() []TraceEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	n := traceCount
	if n > TraceRingSize {
		n = TraceRingSize
	}
	events := make([]TraceEvent, 0, n)
	start := (uint32(traceRingHead) + TraceRingSize - n) % TraceRingSize
	for i := uint32(0); i < n; i++ {
		events = append(events, traceRing[(start+i)%TraceRingSize])
	}
	return events
}

// TraceCount returns the number of events recorded since the last clear,
// including those that have been overwritten
func TraceCount() uint32 {
	return traceCount
}

// ClearTrace empties the ring
func ClearTrace() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
	traceCount = 0
}

// DumpTrace writes the buffered events to w, one frame per event. A sync
// byte goes first so a host that joined mid-stream can lock on.
func DumpTrace(w io.Writer) error {
	if _, err := w.Write([]byte{protocol.MessageValueSync}); err != nil {
		return err
	}
	out := protocol.NewScratchOutput()
	for _, evt := range TraceEvents() {
		out.Reset()
		protocol.EncodeFrame(out, traceSeq, func(o protocol.OutputBuffer) {
			protocol.EncodeTrace(o, protocol.TraceRecord{
				Kind:  uint8(evt.Kind),
				Port:  uint8(evt.Port),
				Pin:   evt.Pin,
				Value: evt.Value,
				Arg:   evt.Arg,
			})
		})
		traceSeq = (traceSeq + 1) & protocol.MessageSeqMask
		if _, err := w.Write(out.Result()); err != nil {
			return err
		}
	}
	return nil
}

// DumpTraceText prints the buffered events through DebugPrintln, so
// nothing is printed while debug output is disabled
func DumpTraceText() {
	if !debugEnabled {
		return
	}
	DebugPrintln("[TRACE] === Register Trace ===")
	for _, evt := range TraceEvents() {
		line := "[TRACE] " + evt.Kind.String()
		if evt.Port < NumPorts {
			line += " P" + evt.Port.String() + Itoa(int(evt.Pin))
		} else {
			line += " line=" + Itoa(int(evt.Pin))
		}
		DebugPrintln(line + " value=" + Hex32(evt.Value) + " arg=" + Hex32(evt.Arg))
	}
	DebugPrintln("[TRACE] === End ===")
}
