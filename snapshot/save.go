package snapshot

import (
	"fmt"
	"slices"
)

func (s *Snapshot) writeUncompressed(f OutFile, b []byte) error {
	n, err := f.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("writeUncompressed wrote %d bytes, expected %d", n, len(b))
	}
	s.checkBytes(b)
	return nil
}

// repeats counts how often data[i] repeats from i, up to limit.
func repeats(data []byte, i, limit int) int {
	n := 1
	for i+n < len(data) && n < limit && data[i+n] == data[i] {
		n++
	}
	return n
}

// writeCompressed run length encodes data. A count byte c >= 0 is followed
// by c+1 literal bytes; c < 0 is followed by one byte repeated -c+1 times.
func (s *Snapshot) writeCompressed(f OutFile, data []byte) error {
	for i := 0; i < len(data); {
		if r := repeats(data, i, maxRun); r >= 3 {
			if err := s.writeUncompressed(f, []byte{byte(int8(1 - r)), data[i]}); err != nil {
				return err
			}
			i += r
			continue
		}
		j := i + 1
		for j < len(data) && j-i < maxRun && repeats(data, j, 3) < 3 {
			j++
		}
		b := append([]byte{byte(j - i - 1)}, data[i:j]...)
		if err := s.writeUncompressed(f, b); err != nil {
			return err
		}
		i = j
	}
	return nil
}

// Save writes the snapshot: the padded title and its checksum, the run
// length encoded body, then the file checksum. Each body section is
// compressed on its own so runs never cross sections.
func (s *Snapshot) Save(f OutFile) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.Checksum = 0
	title := pad([]byte(s.Title), MaxTitleLength)
	err := s.writeUncompressed(f, slices.Concat(title, w(titleChecksum(title))))
	if err != nil {
		return err
	}

	err = s.writeCompressed(f, slices.Concat(w(s.Year), l(s.Day), w(uint16(len(s.Slots)))))
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, slices.Concat(s.Slots...))
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, l(uint32(len(s.Orders))))
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, s.Orders)
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, w(s.RoutingSlots))
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, s.Routing)
	if err != nil {
		return err
	}
	err = s.writeCompressed(f, slices.Concat(l(s.Seed0), l(s.Seed1)))
	if err != nil {
		return err
	}

	s.Checksum += fileChecksumAdd
	n, err := f.Write(l(s.Checksum))
	if err != nil {
		return err
	}
	if n != 4 {
		return fmt.Errorf("wrote %d bytes for the file checksum, expected 4", n)
	}
	return nil
}
