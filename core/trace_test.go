package core

import (
	"bytes"
	"testing"

	"f1hal/protocol"
)

func TestTraceRecordsWrites(t *testing.T) {
	Reset()
	ClearTrace()
	defer ClearTrace()

	if err := WritePin(GPIOC, 13, true); err != nil {
		t.Fatal(err)
	}
	if err := ConfigureInterrupt(EXTI, 0, EdgeBoth); err != nil {
		t.Fatal(err)
	}

	events := TraceEvents()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Kind != TraceWrite || events[0].Port != PortC || events[0].Pin != 13 || events[0].Value != 1<<13 {
		t.Errorf("Unexpected first event %+v", events[0])
	}
	if events[1].Kind != TraceEdge || events[1].Port != NumPorts || events[1].Value != 3 {
		t.Errorf("Unexpected second event %+v", events[1])
	}
}

func TestTraceRingWraps(t *testing.T) {
	ClearTrace()
	defer ClearTrace()

	g := &GPIO_Type{}
	for i := 0; i < TraceRingSize+5; i++ {
		if err := WritePin(g, uint8(i%16), true); err != nil {
			t.Fatal(err)
		}
	}

	events := TraceEvents()
	if len(events) != TraceRingSize {
		t.Fatalf("Expected %d events, got %d", TraceRingSize, len(events))
	}
	if TraceCount() != TraceRingSize+5 {
		t.Errorf("Expected count %d, got %d", TraceRingSize+5, TraceCount())
	}
	// Oldest surviving event is write number 5
	if events[0].Pin != 5 {
		t.Errorf("Expected oldest event on pin 5, got pin %d", events[0].Pin)
	}
	if events[0].Port != NumPorts {
		t.Errorf("Detached block reported as port %s", events[0].Port)
	}
}

func TestDumpTraceFrames(t *testing.T) {
	Reset()
	ClearTrace()
	defer ClearTrace()

	if err := EnableClock(RCC, PeriphGPIOB); err != nil {
		t.Fatal(err)
	}
	if err := SelectInterruptSource(AFIO, PortB, 0); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := DumpTrace(&buf); err != nil {
		t.Fatalf("DumpTrace failed: %v", err)
	}

	frames := protocol.NewDecoder().Feed(buf.Bytes())
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	rec, err := protocol.DecodeTrace(frames[1].Payload)
	if err != nil {
		t.Fatalf("DecodeTrace failed: %v", err)
	}
	if TraceKind(rec.Kind) != TraceSource || Port(rec.Port) != PortB || rec.Value != 1 {
		t.Errorf("Unexpected record %+v", rec)
	}
}

func TestDumpTraceText(t *testing.T) {
	Reset()
	ClearTrace()
	defer ClearTrace()
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(false)

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(false)

	if err := WritePin(GPIOA, 2, true); err != nil {
		t.Fatal(err)
	}
	DumpTraceText()
	if len(lines) != 0 {
		t.Fatalf("Expected no output with debug disabled, got %v", lines)
	}

	SetDebugEnabled(true)
	DumpTraceText()

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if lines[1] != "[TRACE] ODR PA2 value=0x00000004 arg=0x00000001" {
		t.Errorf("Unexpected trace line %q", lines[1])
	}
}

func TestTraceDisabled(t *testing.T) {
	ClearTrace()
	SetTraceEnabled(false)
	defer SetTraceEnabled(true)

	if err := WritePin(&GPIO_Type{}, 0, true); err != nil {
		t.Fatal(err)
	}
	if len(TraceEvents()) != 0 {
		t.Error("Event recorded while tracing disabled")
	}
}
