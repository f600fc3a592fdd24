package pdf

import (
	"bytes"
	"fmt"
	"sort"
)

// Document is a PDF file parsed into memory. Objects are loaded lazily
// through the cross-reference table and cached once parsed.
type Document struct {
	data    []byte
	xref    *xrefTable
	cache   map[int]Object
	objStms map[int]*objectStream
}

// Parse reads a complete PDF from memory. It locates the last
// cross-reference section and follows the Prev chain, so incrementally
// updated files resolve to their newest objects.
func Parse(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("missing %%PDF header")
	}
	offset, err := findStartXref(data)
	if err != nil {
		return nil, err
	}
	xref, err := parseXRefChain(data, offset)
	if err != nil {
		return nil, err
	}
	return &Document{
		data:    data,
		xref:    xref,
		cache:   make(map[int]Object),
		objStms: make(map[int]*objectStream),
	}, nil
}

// Trailer returns the document's trailer dictionary.
func (d *Document) Trailer() Dict { return d.xref.trailer }

// GetObject loads the indirect object with the given number.
func (d *Document) GetObject(num int) (Object, error) {
	if obj, ok := d.cache[num]; ok {
		return obj, nil
	}
	entry, ok := d.xref.entries[num]
	if !ok || !entry.inUse {
		return Null{}, nil
	}

	var obj Object
	if entry.compressed {
		var err error
		obj, err = d.objectFromStream(entry.streamNum, entry.streamIdx, num)
		if err != nil {
			return nil, err
		}
	} else {
		p := newParser(d.data)
		p.resolve = d.resolveLength
		if err := p.seek(entry.offset); err != nil {
			return nil, fmt.Errorf("object %d: %w", num, err)
		}
		indirect, err := p.parseIndirectObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", num, err)
		}
		if indirect.Ref.Number != num {
			return nil, fmt.Errorf("object at offset %d is %d, expected %d", entry.offset, indirect.Ref.Number, num)
		}
		obj = indirect.Object
	}

	d.cache[num] = obj
	return obj, nil
}

// objectFromStream loads a compressed object out of its object stream,
// decoding the container once and caching it.
func (d *Document) objectFromStream(streamNum, index, want int) (Object, error) {
	os, ok := d.objStms[streamNum]
	if !ok {
		container, err := d.GetObject(streamNum)
		if err != nil {
			return nil, fmt.Errorf("object stream %d: %w", streamNum, err)
		}
		stream, isStream := container.(*Stream)
		if !isStream {
			return nil, fmt.Errorf("object stream %d is %T", streamNum, container)
		}
		os, err = parseObjectStream(stream)
		if err != nil {
			return nil, fmt.Errorf("object stream %d: %w", streamNum, err)
		}
		d.objStms[streamNum] = os
	}
	num, obj, err := os.objectAt(index)
	if err != nil {
		return nil, err
	}
	if num != want {
		return nil, fmt.Errorf("object stream %d index %d holds object %d, expected %d", streamNum, index, num, want)
	}
	return obj, nil
}

// resolveLength resolves an indirect Length entry while the referencing
// stream is still being parsed. The target must be a direct integer at
// a known file offset.
func (d *Document) resolveLength(ref IndirectRef) (int, error) {
	entry, ok := d.xref.entries[ref.Number]
	if !ok || !entry.inUse || entry.compressed {
		return 0, fmt.Errorf("cannot resolve length object %d", ref.Number)
	}
	p := newParser(d.data)
	if err := p.seek(entry.offset); err != nil {
		return 0, err
	}
	indirect, err := p.parseIndirectObject()
	if err != nil {
		return 0, err
	}
	n, ok := indirect.Object.(Int)
	if !ok {
		return 0, fmt.Errorf("length object %d is %T", ref.Number, indirect.Object)
	}
	return int(n), nil
}

// Resolve follows an indirect reference to the object it names. Other
// objects pass through unchanged.
func (d *Document) Resolve(obj Object) (Object, error) {
	for i := 0; i < 32; i++ {
		ref, ok := obj.(IndirectRef)
		if !ok {
			return obj, nil
		}
		var err error
		obj, err = d.GetObject(ref.Number)
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("reference chain too deep")
}

// resolveDict resolves obj and asserts it is a dictionary.
func (d *Document) resolveDict(obj Object, what string) (Dict, error) {
	resolved, err := d.Resolve(obj)
	if err != nil {
		return nil, err
	}
	dict, ok := resolved.(Dict)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a dictionary", what, resolved)
	}
	return dict, nil
}

// Catalog returns the document catalog from the trailer's Root entry.
func (d *Document) Catalog() (Dict, error) {
	root := d.xref.trailer.Get("Root")
	if root == nil {
		return nil, fmt.Errorf("trailer has no Root")
	}
	return d.resolveDict(root, "catalog")
}

// Page is one leaf of the page tree.
type Page struct {
	Dict Dict
	doc  *Document
}

// Pages walks the page tree and returns the document's pages in
// reading order.
func (d *Document) Pages() ([]*Page, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	rootObj := catalog.Get("Pages")
	if rootObj == nil {
		return nil, fmt.Errorf("catalog has no Pages")
	}
	root, err := d.resolveDict(rootObj, "page tree root")
	if err != nil {
		return nil, err
	}
	var pages []*Page
	if err := d.walkPageTree(root, &pages, 0); err != nil {
		return nil, err
	}
	return pages, nil
}

func (d *Document) walkPageTree(node Dict, pages *[]*Page, depth int) error {
	if depth > 64 {
		return fmt.Errorf("page tree deeper than 64 levels")
	}
	typ, _ := node.GetName("Type")
	if typ == "Page" {
		*pages = append(*pages, &Page{Dict: node, doc: d})
		return nil
	}
	// Intermediate nodes occasionally omit /Type; treat anything with
	// Kids as a Pages node.
	kids, ok := node.GetArray("Kids")
	if !ok {
		if typ == "Pages" {
			return nil
		}
		return fmt.Errorf("page tree node has neither Type /Page nor Kids")
	}
	for _, kid := range kids {
		child, err := d.resolveDict(kid, "page tree node")
		if err != nil {
			return err
		}
		if err := d.walkPageTree(child, pages, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// ContentStreams returns the page's content streams. The Contents entry
// may be a single stream or an array of streams.
func (pg *Page) ContentStreams() ([]*Stream, error) {
	contents := pg.Dict.Get("Contents")
	if contents == nil {
		return nil, nil
	}
	resolved, err := pg.doc.Resolve(contents)
	if err != nil {
		return nil, err
	}
	switch c := resolved.(type) {
	case *Stream:
		return []*Stream{c}, nil
	case Array:
		streams := make([]*Stream, 0, len(c))
		for i, elem := range c {
			obj, err := pg.doc.Resolve(elem)
			if err != nil {
				return nil, err
			}
			stream, ok := obj.(*Stream)
			if !ok {
				return nil, fmt.Errorf("Contents[%d] is %T, not a stream", i, obj)
			}
			streams = append(streams, stream)
		}
		return streams, nil
	case Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("Contents is %T", resolved)
	}
}

// objectNumbers returns every in-use object number in ascending order.
// Objects that live inside object streams are included; their
// containers are what the writer later skips.
func (d *Document) objectNumbers() []int {
	nums := make([]int, 0, len(d.xref.entries))
	for num, entry := range d.xref.entries {
		if entry.inUse && num > 0 {
			nums = append(nums, num)
		}
	}
	sort.Ints(nums)
	return nums
}
