package pdf

import (
	"fmt"
)

// objectStream holds the decoded contents of an /ObjStm stream. The
// header region lists object-number/offset pairs; the body region
// holds the objects themselves, offset relative to First.
type objectStream struct {
	first int
	nums  []int
	offs  []int
	data  []byte
}

// parseObjectStream decodes an object stream and reads its header.
func parseObjectStream(stream *Stream) (*objectStream, error) {
	if typ, _ := stream.Dict.GetName("Type"); typ != "ObjStm" {
		return nil, fmt.Errorf("stream has Type /%s, not ObjStm", typ)
	}
	n, ok := stream.Dict.GetInt("N")
	if !ok || n < 0 {
		return nil, fmt.Errorf("object stream missing N")
	}
	first, ok := stream.Dict.GetInt("First")
	if !ok || first < 0 {
		return nil, fmt.Errorf("object stream missing First")
	}

	decoded, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode object stream: %w", err)
	}
	if int(first) > len(decoded) {
		return nil, fmt.Errorf("First %d exceeds decoded size %d", first, len(decoded))
	}

	os := &objectStream{
		first: int(first),
		nums:  make([]int, 0, n),
		offs:  make([]int, 0, n),
		data:  decoded,
	}

	p := newParser(decoded[:first])
	for i := 0; i < int(n); i++ {
		p.skipWhitespace()
		num, err := p.parseInteger()
		if err != nil {
			return nil, fmt.Errorf("object stream header pair %d: %w", i, err)
		}
		p.skipWhitespace()
		off, err := p.parseInteger()
		if err != nil {
			return nil, fmt.Errorf("object stream header pair %d: %w", i, err)
		}
		if off < 0 || os.first+off > len(decoded) {
			return nil, fmt.Errorf("object %d offset %d outside stream", num, off)
		}
		os.nums = append(os.nums, num)
		os.offs = append(os.offs, off)
	}
	return os, nil
}

// objectAt parses the object stored at the given index. It returns the
// object number alongside the object so callers can verify the entry.
func (os *objectStream) objectAt(index int) (int, Object, error) {
	if index < 0 || index >= len(os.nums) {
		return 0, nil, fmt.Errorf("object stream index %d out of range (%d objects)", index, len(os.nums))
	}
	p := newParser(os.data)
	if err := p.seek(int64(os.first + os.offs[index])); err != nil {
		return 0, nil, err
	}
	obj, err := p.parseObject()
	if err != nil {
		return 0, nil, fmt.Errorf("object %d in stream: %w", os.nums[index], err)
	}
	return os.nums[index], obj, nil
}
