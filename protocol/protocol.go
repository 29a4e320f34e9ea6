// Package protocol implements the framed wire format used to ship register
// trace records from the firmware to a host over a serial line.
//
// A frame is laid out as
//
//	[len][seq][payload ...][crc hi][crc lo][0x7E]
//
// where len counts the whole frame, seq carries MessageDest in its high
// nibble and a rolling 4-bit counter in its low nibble, and the CRC covers
// len, seq and the payload.
package protocol

// Version of the trace wire format
const Version = "1"

// Frame geometry
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F

	// ScratchMax is the capacity of a ScratchOutput
	ScratchMax = 512
)
