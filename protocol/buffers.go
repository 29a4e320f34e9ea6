package protocol

// OutputBuffer accumulates outgoing frame bytes
type OutputBuffer interface {
	// Output appends data
	Output(data []byte)

	// CurPosition returns the current write position
	CurPosition() int

	// Update overwrites the byte at pos
	Update(pos int, val byte)

	// DataSince returns the bytes written since pos
	DataSince(pos int) []byte
}

// ScratchOutput is a fixed-size OutputBuffer. Writes past its capacity are
// dropped.
type ScratchOutput struct {
	buf [ScratchMax]byte
	pos int
}

// NewScratchOutput creates an empty ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a byte ring used to collect serial input until whole
// frames are available. One slot is kept free to tell full from empty.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a FifoBuffer holding up to capacity-1 bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends as much of data as fits and returns the count written
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		next := (f.write + 1) % f.size
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		written++
	}
	return written
}

// Available returns the number of buffered bytes
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes that can still be written
func (f *FifoBuffer) Free() int {
	return f.size - f.Available() - 1
}

// Data returns the buffered bytes as one contiguous slice. A wrapped ring
// is copied.
func (f *FifoBuffer) Data() []byte {
	if f.read <= f.write {
		return f.buf[f.read:f.write]
	}
	result := make([]byte, f.Available())
	n := copy(result, f.buf[f.read:])
	copy(result[n:], f.buf[:f.write])
	return result
}

// Pop discards n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % f.size
	}
}

// Reset empties the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
