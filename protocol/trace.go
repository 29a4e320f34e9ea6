package protocol

import "errors"

// ErrMalformedTrace is returned for a payload that is not a trace record
var ErrMalformedTrace = errors.New("malformed trace record")

// TraceRecord is the payload of one register trace frame
type TraceRecord struct {
	Kind  uint8
	Port  uint8
	Pin   uint8
	Value uint32 // register contents after the write
	Arg   uint32 // the argument that was written
}

// EncodeTrace writes r as a frame payload
func EncodeTrace(out OutputBuffer, r TraceRecord) {
	EncodeVLQUint(out, uint32(r.Kind))
	EncodeVLQUint(out, uint32(r.Port))
	EncodeVLQUint(out, uint32(r.Pin))
	EncodeVLQUint(out, r.Value)
	EncodeVLQUint(out, r.Arg)
}

// DecodeTrace parses a frame payload written by EncodeTrace
func DecodeTrace(payload []byte) (TraceRecord, error) {
	var fields [5]uint32
	for i := range fields {
		v, err := DecodeVLQUint(&payload)
		if err != nil {
			return TraceRecord{}, err
		}
		fields[i] = v
	}
	if len(payload) != 0 || fields[0] > 0xFF || fields[1] > 0xFF || fields[2] > 0xFF {
		return TraceRecord{}, ErrMalformedTrace
	}
	return TraceRecord{
		Kind:  uint8(fields[0]),
		Port:  uint8(fields[1]),
		Pin:   uint8(fields[2]),
		Value: fields[3],
		Arg:   fields[4],
	}, nil
}
