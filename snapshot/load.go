package snapshot

import (
	"fmt"
	"slices"
	"strings"
)

func (s *Snapshot) readUncompressed(f InFile, len int) ([]byte, error) {
	b := make([]byte, len)
	n, err := f.Read(b)
	if err != nil {
		return nil, err
	}
	if n != len {
		return nil, fmt.Errorf("readUncompressed: read %d bytes, expected %d", n, len)
	}
	s.checkBytes(b)
	return b, nil
}

func (s *Snapshot) readB(f InFile) (byte, error) {
	b, err := s.readUncompressed(f, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Snapshot) readL(f InFile) (uint32, error) {
	b, err := s.readUncompressed(f, 4)
	if err != nil {
		return 0, err
	}
	return getL(b), nil
}

func (s *Snapshot) readCompressed(f InFile, l int) ([]byte, error) {
	out := make([]byte, 0, l)
	for len(out) < l {
		cb, err := s.readB(f)
		if err != nil {
			return nil, err
		}
		c := int8(cb)
		if c >= 0 {
			r, err := s.readUncompressed(f, int(c)+1)
			if err != nil {
				return nil, err
			}
			out = append(out, r...)
		} else {
			b, err := s.readB(f)
			if err != nil {
				return nil, err
			}
			out = append(out, slices.Repeat([]byte{b}, -int(c)+1)...)
		}
	}
	if len(out) != l {
		return nil, fmt.Errorf("readCompressed: run crosses section end, got %d bytes, expected %d", len(out), l)
	}
	return out, nil
}

type bytesFile struct {
	data  []byte
	index int
}

func (f *bytesFile) Read(b []byte) (int, error) {
	l := min(len(b), len(f.data)-f.index)
	copy(b, f.data[f.index:f.index+l])
	f.index += l
	return l, nil
}

func Load(f InFile) (*Snapshot, error) {
	s := &Snapshot{}
	title, err := s.readUncompressed(f, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	s.Title = strings.TrimRight(string(title), "\x00")
	tb, err := s.readUncompressed(f, 2)
	if err != nil {
		return nil, err
	}
	if got := getW(tb); got != titleChecksum(title) {
		return nil, fmt.Errorf("Load: title checksum doesn't match, file had %v, calculated %v: %w", got, titleChecksum(title), ErrChecksum)
	}

	header, err := s.readCompressed(f, 8)
	if err != nil {
		return nil, err
	}
	s.Year = getW(header)
	s.Day = getL(header[2:])
	capacity := int(getW(header[6:]))

	slots, err := s.readCompressed(f, capacity*SlotSize)
	if err != nil {
		return nil, err
	}
	s.Slots = make([][]byte, capacity)
	for i := range capacity {
		s.Slots[i] = slots[i*SlotSize : (i+1)*SlotSize]
	}

	ob, err := s.readCompressed(f, 4)
	if err != nil {
		return nil, err
	}
	if s.Orders, err = s.readCompressed(f, int(getL(ob))); err != nil {
		return nil, err
	}

	rb, err := s.readCompressed(f, 2)
	if err != nil {
		return nil, err
	}
	s.RoutingSlots = getW(rb)
	if s.Routing, err = s.readCompressed(f, (int(s.RoutingSlots)+7)/8); err != nil {
		return nil, err
	}

	seeds, err := s.readCompressed(f, 8)
	if err != nil {
		return nil, err
	}
	s.Seed0, s.Seed1 = getL(seeds), getL(seeds[4:])

	calculated := s.Checksum + fileChecksumAdd
	s.Checksum, err = s.readL(f)
	if err != nil {
		return nil, err
	}
	if s.Checksum != calculated {
		return nil, fmt.Errorf("Load: file checksum doesn't match, read %v, calculated %v: %w", s.Checksum, calculated, ErrChecksum)
	}
	return s, nil
}
