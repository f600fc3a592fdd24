package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// xrefEntry locates one indirect object. Regular entries carry a byte
// offset into the file; compressed entries name the object stream that
// holds the object and its index within it.
type xrefEntry struct {
	offset     int64
	gen        int
	inUse      bool
	compressed bool
	streamNum  int
	streamIdx  int
}

// xrefTable is the merged cross-reference information for a document,
// built by following the Prev chain from the most recent section back.
type xrefTable struct {
	entries map[int]*xrefEntry
	trailer Dict
}

// findStartXref locates the byte offset of the last cross-reference
// section. The startxref keyword sits near the end of the file.
func findStartXref(data []byte) (int64, error) {
	tail := data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("startxref not found in last %d bytes", len(tail))
	}
	rest := tail[idx+len("startxref"):]
	fields := strings.Fields(string(rest))
	if len(fields) == 0 {
		return 0, fmt.Errorf("no offset after startxref")
	}
	offset, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid startxref offset %q: %w", fields[0], err)
	}
	if offset < 0 || offset >= int64(len(data)) {
		return 0, fmt.Errorf("startxref offset %d outside document", offset)
	}
	return offset, nil
}

// parseXRefChain reads the cross-reference section at offset and every
// Prev section behind it, merging them newest-first. Entries already
// present are never overwritten, so updated objects win over originals.
func parseXRefChain(data []byte, offset int64) (*xrefTable, error) {
	table := &xrefTable{entries: make(map[int]*xrefEntry)}
	seen := make(map[int64]bool)

	for {
		if seen[offset] {
			return nil, fmt.Errorf("cross-reference sections form a cycle at offset %d", offset)
		}
		seen[offset] = true

		trailer, err := parseXRefSection(data, offset, table)
		if err != nil {
			return nil, err
		}
		if table.trailer == nil {
			table.trailer = trailer
		}

		// Hybrid files carry an extra xref stream alongside the
		// classic table for readers that understand it.
		if stm, ok := trailer.GetInt("XRefStm"); ok {
			if _, err := parseXRefSection(data, int64(stm), table); err != nil {
				return nil, fmt.Errorf("hybrid xref stream: %w", err)
			}
		}

		prev, ok := trailer.GetInt("Prev")
		if !ok {
			return table, nil
		}
		offset = int64(prev)
	}
}

// parseXRefSection reads one section, classic table or xref stream, and
// merges its entries into table. It returns the section's trailer
// dictionary.
func parseXRefSection(data []byte, offset int64, table *xrefTable) (Dict, error) {
	p := newParser(data)
	if err := p.seek(offset); err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.expectKeyword("xref") {
		return parseClassicXRef(p, table)
	}
	return parseXRefStream(p, table)
}

// parseClassicXRef reads subsection blocks of 20-byte entries followed
// by the trailer dictionary.
func parseClassicXRef(p *parser, table *xrefTable) (Dict, error) {
	for {
		p.skipWhitespace()
		if p.expectKeyword("trailer") {
			break
		}
		start, err := p.parseInteger()
		if err != nil {
			return nil, fmt.Errorf("xref subsection start: %w", err)
		}
		count, err := p.parseInteger()
		if err != nil {
			return nil, fmt.Errorf("xref subsection count: %w", err)
		}
		if count < 0 {
			return nil, fmt.Errorf("negative subsection count %d", count)
		}
		for i := 0; i < count; i++ {
			p.skipWhitespace()
			offset, err := p.parseInteger()
			if err != nil {
				return nil, fmt.Errorf("xref entry offset: %w", err)
			}
			p.skipWhitespace()
			gen, err := p.parseInteger()
			if err != nil {
				return nil, fmt.Errorf("xref entry generation: %w", err)
			}
			p.skipWhitespace()
			if p.atEnd() {
				return nil, fmt.Errorf("truncated xref entry")
			}
			kind := p.data[p.pos]
			p.pos++
			if kind != 'n' && kind != 'f' {
				return nil, fmt.Errorf("xref entry type %q", kind)
			}
			num := start + i
			if _, exists := table.entries[num]; exists {
				continue
			}
			table.entries[num] = &xrefEntry{
				offset: int64(offset),
				gen:    gen,
				inUse:  kind == 'n',
			}
		}
	}

	p.skipWhitespace()
	obj, err := p.parseObject()
	if err != nil {
		return nil, fmt.Errorf("trailer: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, fmt.Errorf("trailer is %T, not a dictionary", obj)
	}
	return trailer, nil
}

// parseXRefStream reads a cross-reference stream: an indirect stream
// object whose decoded data is packed rows of big-endian fields sized
// by the W array.
func parseXRefStream(p *parser, table *xrefTable) (Dict, error) {
	indirect, err := p.parseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("xref stream object: %w", err)
	}
	stream, ok := indirect.Object.(*Stream)
	if !ok {
		return nil, fmt.Errorf("object at xref offset is %T, not a stream", indirect.Object)
	}
	if typ, _ := stream.Dict.GetName("Type"); typ != "XRef" {
		return nil, fmt.Errorf("xref stream has Type /%s", typ)
	}

	wArr, ok := stream.Dict.GetArray("W")
	if !ok || len(wArr) < 3 {
		return nil, fmt.Errorf("xref stream missing W array")
	}
	widths := make([]int, 3)
	rowSize := 0
	for i := 0; i < 3; i++ {
		w, ok := wArr.Get(i).(Int)
		if !ok || w < 0 || w > 8 {
			return nil, fmt.Errorf("invalid W entry %v", wArr.Get(i))
		}
		widths[i] = int(w)
		rowSize += int(w)
	}
	if rowSize == 0 {
		return nil, fmt.Errorf("xref stream has zero-width rows")
	}

	size, ok := stream.Dict.GetInt("Size")
	if !ok {
		return nil, fmt.Errorf("xref stream missing Size")
	}

	// Index defaults to a single subsection covering every object.
	subsections := [][2]int{{0, int(size)}}
	if idxArr, ok := stream.Dict.GetArray("Index"); ok {
		if len(idxArr)%2 != 0 {
			return nil, fmt.Errorf("xref stream Index has odd length %d", len(idxArr))
		}
		subsections = subsections[:0]
		for i := 0; i < len(idxArr); i += 2 {
			start, ok1 := idxArr.Get(i).(Int)
			count, ok2 := idxArr.Get(i + 1).(Int)
			if !ok1 || !ok2 || start < 0 || count < 0 {
				return nil, fmt.Errorf("invalid Index pair at %d", i)
			}
			subsections = append(subsections, [2]int{int(start), int(count)})
		}
	}

	decoded, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode xref stream: %w", err)
	}

	pos := 0
	for _, sub := range subsections {
		for i := 0; i < sub[1]; i++ {
			if pos+rowSize > len(decoded) {
				return nil, fmt.Errorf("xref stream data truncated at row for object %d", sub[0]+i)
			}
			// A zero-width first field defaults the entry type to 1.
			f1 := int64(1)
			if widths[0] > 0 {
				f1 = readBigEndian(decoded[pos : pos+widths[0]])
			}
			pos += widths[0]
			f2 := readBigEndian(decoded[pos : pos+widths[1]])
			pos += widths[1]
			f3 := readBigEndian(decoded[pos : pos+widths[2]])
			pos += widths[2]

			num := sub[0] + i
			if _, exists := table.entries[num]; exists {
				continue
			}
			switch f1 {
			case 0:
				table.entries[num] = &xrefEntry{gen: int(f3), inUse: false}
			case 1:
				table.entries[num] = &xrefEntry{offset: f2, gen: int(f3), inUse: true}
			case 2:
				table.entries[num] = &xrefEntry{
					inUse:      true,
					compressed: true,
					streamNum:  int(f2),
					streamIdx:  int(f3),
				}
			default:
				// Unknown entry types are ignored.
			}
		}
	}

	return stream.Dict, nil
}

func readBigEndian(b []byte) int64 {
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v
}
