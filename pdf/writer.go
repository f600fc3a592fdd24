package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Write serializes the document as a complete PDF with a classic
// cross-reference table. Every in-use object is written out as a
// regular indirect object; objects that arrived inside object streams
// become top-level objects, and the now-empty container streams are
// dropped along with any cross-reference streams.
func (d *Document) Write() ([]byte, error) {
	// Streams are rewritten without re-encrypting, so a rewrite of an
	// encrypted document would be unreadable.
	if d.xref.trailer.Has("Encrypt") {
		return nil, fmt.Errorf("cannot rewrite encrypted document")
	}

	var buf bytes.Buffer
	buf.WriteString(d.headerLine())
	// Binary marker comment so transfer tools treat the file as binary.
	buf.WriteString("%\xe2\xe3\xcf\xd3\n")

	offsets := make(map[int]int64)
	gens := make(map[int]int)
	maxNum := 0

	for _, num := range d.objectNumbers() {
		obj, err := d.GetObject(num)
		if err != nil {
			return nil, fmt.Errorf("load object %d: %w", num, err)
		}
		if isXRefMachinery(obj) {
			continue
		}
		gen := 0
		if entry := d.xref.entries[num]; entry != nil && !entry.compressed {
			gen = entry.gen
		}

		offsets[num] = int64(buf.Len())
		gens[num] = gen
		if num > maxNum {
			maxNum = num
		}

		fmt.Fprintf(&buf, "%d %d obj\n", num, gen)
		if err := writeObject(&buf, obj); err != nil {
			return nil, fmt.Errorf("serialize object %d: %w", num, err)
		}
		buf.WriteString("\nendobj\n")
	}

	if len(offsets) == 0 {
		return nil, fmt.Errorf("document has no objects to write")
	}

	xrefOffset := int64(buf.Len())
	writeXRefTable(&buf, offsets, gens, maxNum)

	trailer := d.rebuiltTrailer(maxNum + 1)
	buf.WriteString("trailer\n")
	if err := writeObject(&buf, trailer); err != nil {
		return nil, fmt.Errorf("serialize trailer: %w", err)
	}
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes(), nil
}

// headerLine returns the original file's %PDF-x.y line, defaulting to
// 1.7 when it cannot be recovered.
func (d *Document) headerLine() string {
	end := bytes.IndexAny(d.data, "\r\n")
	if end > 0 && end < 16 && bytes.HasPrefix(d.data, []byte("%PDF-")) {
		return string(d.data[:end]) + "\n"
	}
	return "%PDF-1.7\n"
}

// isXRefMachinery reports whether obj is an object-stream container or
// a cross-reference stream. Neither survives a classic-table rewrite.
func isXRefMachinery(obj Object) bool {
	stream, ok := obj.(*Stream)
	if !ok {
		return false
	}
	typ, _ := stream.Dict.GetName("Type")
	return typ == "ObjStm" || typ == "XRef"
}

// writeXRefTable emits a single-subsection classic table covering
// objects 0 through maxNum. Numbers with no written object become free
// entries, as does the head entry 0.
func writeXRefTable(buf *bytes.Buffer, offsets map[int]int64, gens map[int]int, maxNum int) {
	fmt.Fprintf(buf, "xref\n0 %d\n", maxNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= maxNum; num++ {
		if offset, ok := offsets[num]; ok {
			fmt.Fprintf(buf, "%010d %05d n \n", offset, gens[num])
		} else {
			buf.WriteString("0000000000 65535 f \n")
		}
	}
}

// rebuiltTrailer copies the entries worth keeping from the original
// trailer and drops everything tied to the old file layout.
func (d *Document) rebuiltTrailer(size int) Dict {
	trailer := Dict{}
	for _, key := range []string{"Root", "Info", "ID"} {
		if v := d.xref.trailer.Get(key); v != nil {
			trailer[key] = v
		}
	}
	trailer["Size"] = Int(size)
	return trailer
}

// writeObject serializes one object in PDF syntax.
func writeObject(buf *bytes.Buffer, obj Object) error {
	switch o := obj.(type) {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(o.String())
	case Int:
		buf.WriteString(o.String())
	case Real:
		buf.WriteString(o.String())
	case String:
		writeLiteralString(buf, string(o))
	case Name:
		writeName(buf, string(o))
	case IndirectRef:
		buf.WriteString(o.String())
	case Array:
		buf.WriteByte('[')
		for i, elem := range o {
			if i > 0 {
				buf.WriteByte(' ')
			}
			if err := writeObject(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Dict:
		return writeDict(buf, o)
	case *Stream:
		if err := writeDict(buf, o.Dict); err != nil {
			return err
		}
		buf.WriteString("\nstream\n")
		buf.Write(o.Data)
		buf.WriteString("\nendstream")
	default:
		return fmt.Errorf("cannot serialize %T", obj)
	}
	return nil
}

// writeDict serializes a dictionary with keys in sorted order so the
// output is deterministic.
func writeDict(buf *bytes.Buffer, d Dict) error {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buf.WriteString("<<")
	for _, key := range keys {
		writeName(buf, key)
		buf.WriteByte(' ')
		if err := writeObject(buf, d[key]); err != nil {
			return err
		}
	}
	buf.WriteString(">>")
	return nil
}

// writeLiteralString emits (value) with backslash escapes for the
// characters that would break the literal form.
func writeLiteralString(buf *bytes.Buffer, s string) {
	buf.WriteByte('(')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\r':
			buf.WriteString(`\r`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
}

// writeName emits /Name, hex-escaping bytes outside the regular
// character range.
func writeName(buf *bytes.Buffer, name string) {
	buf.WriteByte('/')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= 0x20 || c >= 0x7f || c == '#' || isDelimiter(c) {
			buf.WriteByte('#')
			buf.WriteString(strconv.FormatUint(uint64(c>>4), 16))
			buf.WriteString(strconv.FormatUint(uint64(c&0xf), 16))
		} else {
			buf.WriteByte(c)
		}
	}
}
