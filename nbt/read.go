package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// MaxDepth bounds how deeply lists and compounds may nest.
const MaxDepth = 512

// Read decodes a complete NBT stream holding a single named root tag. The
// whole buffer must be consumed; any error matches ErrMalformed.
func Read(b []byte) (Tag, error) {
	d := &decoder{buf: b}
	root, err := d.readNamed(0)
	if err != nil {
		return Tag{}, err
	}
	if root.Type == TagEnd {
		return Tag{}, d.fail("root tag is %s", TagEnd)
	}
	if rest := len(d.buf) - d.off; rest != 0 {
		return Tag{}, d.fail("%d trailing bytes after root tag", rest)
	}
	return root, nil
}

// ReadFrom buffers r to its end and decodes it.
func ReadFrom(r io.Reader) (Tag, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Tag{}, err
	}
	return Read(b)
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) fail(format string, args ...interface{}) error {
	return &MalformedError{Offset: d.off, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.off
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, d.fail("unexpected end of input: need %d bytes, have %d", n, d.remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readType() (Type, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	t := Type(b[0])
	if !t.Valid() {
		d.off--
		return 0, d.fail("unknown tag type %d", b[0])
	}
	return t, nil
}

func (d *decoder) readInt16() (int16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (d *decoder) readInt32() (int32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) readInt64() (int64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (d *decoder) readString() (string, error) {
	b, err := d.take(2)
	if err != nil {
		return "", err
	}
	s, err := d.take(int(binary.BigEndian.Uint16(b)))
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// readCount reads a signed 32-bit element count and rejects counts that could
// not possibly fit in the rest of the buffer.
func (d *decoder) readCount(elemSize int) (int, error) {
	n, err := d.readInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		d.off -= 4
		return 0, d.fail("negative length %d", n)
	}
	if int64(n)*int64(elemSize) > int64(d.remaining()) {
		d.off -= 4
		return 0, d.fail("length %d exceeds remaining %d bytes", n, d.remaining())
	}
	return int(n), nil
}

func (d *decoder) readNamed(depth int) (tag Tag, err error) {
	if tag.Type, err = d.readType(); err != nil {
		return
	}
	if tag.Type == TagEnd {
		return
	}
	if tag.Name, err = d.readString(); err != nil {
		return
	}
	err = d.readPayload(&tag, depth)
	return
}

func (d *decoder) readPayload(tag *Tag, depth int) (err error) {
	switch tag.Type {
	case TagByte:
		var b []byte
		if b, err = d.take(1); err == nil {
			tag.Value = int8(b[0])
		}

	case TagShort:
		var v int16
		if v, err = d.readInt16(); err == nil {
			tag.Value = v
		}

	case TagInt:
		var v int32
		if v, err = d.readInt32(); err == nil {
			tag.Value = v
		}

	case TagLong:
		var v int64
		if v, err = d.readInt64(); err == nil {
			tag.Value = v
		}

	case TagFloat:
		var v int32
		if v, err = d.readInt32(); err == nil {
			tag.Value = math.Float32frombits(uint32(v))
		}

	case TagDouble:
		var v int64
		if v, err = d.readInt64(); err == nil {
			tag.Value = math.Float64frombits(uint64(v))
		}

	case TagString:
		var s string
		if s, err = d.readString(); err == nil {
			tag.Value = s
		}

	case TagByteArray:
		var n int
		if n, err = d.readCount(1); err != nil {
			return
		}
		var raw []byte
		if raw, err = d.take(n); err != nil {
			return
		}
		arr := make([]int8, n)
		for i, b := range raw {
			arr[i] = int8(b)
		}
		tag.Value = arr

	case TagIntArray:
		var n int
		if n, err = d.readCount(4); err != nil {
			return
		}
		arr := make([]int32, n)
		for i := range arr {
			if arr[i], err = d.readInt32(); err != nil {
				return
			}
		}
		tag.Value = arr

	case TagLongArray:
		var n int
		if n, err = d.readCount(8); err != nil {
			return
		}
		arr := make([]int64, n)
		for i := range arr {
			if arr[i], err = d.readInt64(); err != nil {
				return
			}
		}
		tag.Value = arr

	case TagList:
		return d.readList(tag, depth)

	case TagCompound:
		return d.readCompound(tag, depth)

	default:
		return d.fail("unexpected %s payload", tag.Type)
	}
	return
}

func (d *decoder) readList(tag *Tag, depth int) (err error) {
	if depth >= MaxDepth {
		return d.fail("nesting deeper than %d", MaxDepth)
	}
	if tag.Elem, err = d.readType(); err != nil {
		return
	}
	n, err := d.readCount(tag.Elem.minSize())
	if err != nil {
		return
	}
	if tag.Elem == TagEnd && n > 0 {
		return d.fail("list of %s with %d elements", TagEnd, n)
	}

	items := make([]Tag, n)
	for i := range items {
		items[i].Type = tag.Elem
		if err = d.readPayload(&items[i], depth+1); err != nil {
			return
		}
	}
	tag.Value = items
	return
}

func (d *decoder) readCompound(tag *Tag, depth int) error {
	if depth >= MaxDepth {
		return d.fail("nesting deeper than %d", MaxDepth)
	}
	children := []Tag{}
	for {
		child, err := d.readNamed(depth + 1)
		if err != nil {
			return err
		}
		if child.Type == TagEnd {
			break
		}
		children = append(children, child)
	}
	tag.Value = children
	return nil
}
