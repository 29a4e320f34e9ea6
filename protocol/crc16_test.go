package protocol

import "testing"

func TestCRC16Empty(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16(nil) = 0x%04X, want 0xFFFF", got)
	}
}

func TestCRC16Check(t *testing.T) {
	// Standard check value of CRC-16/MCRF4XX
	if got := CRC16([]byte("123456789")); got != 0x6F91 {
		t.Errorf("CRC16(\"123456789\") = 0x%04X, want 0x6F91", got)
	}
}

func TestCRC16Different(t *testing.T) {
	crc1 := CRC16([]byte{0x01, 0x02, 0x03})
	crc2 := CRC16([]byte{0x01, 0x02, 0x04})

	if crc1 == crc2 {
		t.Errorf("CRC16 collision: both inputs produced %04X", crc1)
	}
}
