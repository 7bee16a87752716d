package snapshot

import (
	"fmt"
	"reflect"
	"slices"

	"locoveh/entity"
	"locoveh/vehicle"
)

func pad(b []byte, l int) []byte {
	return append(b, slices.Repeat([]byte{0}, l-len(b))...)
}

func b(i uint8) []byte {
	return []byte{byte(i)}
}

func w(i uint16) []byte {
	return []byte{byte(i & 0xff), byte((i >> 8) & 0xff)}
}

func l(i uint32) []byte {
	return []byte{byte(i & 0xff), byte((i >> 8) & 0xff), byte((i >> 16) & 0xff), byte((i >> 24) & 0xff)}
}

func getW(d []byte) uint16 {
	return uint16(d[1])<<8 + uint16(d[0])
}

func getL(d []byte) uint32 {
	return uint32(d[3])<<24 + uint32(d[2])<<16 + uint32(d[1])<<8 + uint32(d[0])
}

// structToBytes writes the fields of v in declaration order, little endian.
// Nested structs and arrays are flattened; unexported fields are padding
// and written as zeros.
func structToBytes(v reflect.Value) ([]byte, error) {
	var out []byte
	for i := range v.NumField() {
		f := v.Type().Field(i)
		if !f.IsExported() {
			out = append(out, make([]byte, f.Type.Size())...)
			continue
		}
		fb, err := valueToBytes(v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		out = append(out, fb...)
	}
	return out, nil
}

func valueToBytes(v reflect.Value) ([]byte, error) {
	switch v.Kind() {
	case reflect.Uint8:
		return b(uint8(v.Uint())), nil
	case reflect.Int8:
		return b(uint8(v.Int())), nil
	case reflect.Uint16:
		return w(uint16(v.Uint())), nil
	case reflect.Int16:
		return w(uint16(v.Int())), nil
	case reflect.Uint32:
		return l(uint32(v.Uint())), nil
	case reflect.Int32:
		return l(uint32(v.Int())), nil
	case reflect.Array:
		var out []byte
		for i := range v.Len() {
			eb, err := valueToBytes(v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, eb...)
		}
		return out, nil
	case reflect.Struct:
		return structToBytes(v)
	}
	return nil, fmt.Errorf("unexpected field type %q", v.Type().Name())
}

// readStruct is the inverse of structToBytes. It returns the bytes left
// after v.
func readStruct(data []byte, v reflect.Value) ([]byte, error) {
	for i := range v.NumField() {
		f := v.Type().Field(i)
		if !f.IsExported() {
			n := int(f.Type.Size())
			if len(data) < n {
				return nil, fmt.Errorf("%s: need %d bytes, have %d", f.Name, n, len(data))
			}
			data = data[n:]
			continue
		}
		var err error
		if data, err = readValue(data, v.Field(i)); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return data, nil
}

func readValue(data []byte, v reflect.Value) ([]byte, error) {
	switch v.Kind() {
	case reflect.Array:
		for i := range v.Len() {
			var err error
			if data, err = readValue(data, v.Index(i)); err != nil {
				return nil, err
			}
		}
		return data, nil
	case reflect.Struct:
		return readStruct(data, v)
	}
	n := int(v.Type().Size())
	if len(data) < n {
		return nil, fmt.Errorf("need %d bytes, have %d", n, len(data))
	}
	switch v.Kind() {
	case reflect.Uint8:
		v.SetUint(uint64(data[0]))
	case reflect.Int8:
		v.SetInt(int64(int8(data[0])))
	case reflect.Uint16:
		v.SetUint(uint64(getW(data)))
	case reflect.Int16:
		v.SetInt(int64(int16(getW(data))))
	case reflect.Uint32:
		v.SetUint(uint64(getL(data)))
	case reflect.Int32:
		v.SetInt(int64(int32(getL(data))))
	default:
		return nil, fmt.Errorf("unexpected field type %q", v.Type().Name())
	}
	return data[n:], nil
}

// freeSlot is the image of an empty pool slot.
func freeSlot() []byte {
	s := make([]byte, entity.SlotSize)
	s[0] = byte(entity.KindNull)
	return s
}

// EncodeSlot returns the slot image of e, or of a free slot when e is nil.
func EncodeSlot(e entity.Entity) ([]byte, error) {
	if e == nil {
		return freeSlot(), nil
	}
	out, err := structToBytes(reflect.ValueOf(e).Elem())
	if err != nil {
		return nil, err
	}
	if len(out) > entity.SlotSize {
		return nil, fmt.Errorf("record %d encodes to %d bytes, slots are %d", e.Entity().ID, len(out), entity.SlotSize)
	}
	return pad(out, entity.SlotSize), nil
}

// DecodeSlot rebuilds the record held in a slot image; a free slot decodes
// to nil.
func DecodeSlot(slot []byte) (entity.Entity, error) {
	if len(slot) != entity.SlotSize {
		return nil, fmt.Errorf("slot is %d bytes, expected %d", len(slot), entity.SlotSize)
	}
	var e entity.Entity
	switch entity.BaseKind(slot[0]) {
	case entity.KindNull:
		return nil, nil
	case entity.KindVehicle:
		rec := vehicle.NewRecord(vehicle.Kind(slot[1]))
		if rec == nil {
			return nil, fmt.Errorf("unknown vehicle sub kind %d", slot[1])
		}
		e = rec
	default:
		e = &entity.Misc{}
	}
	if _, err := readStruct(slot, reflect.ValueOf(e).Elem()); err != nil {
		return nil, err
	}
	return e, nil
}
