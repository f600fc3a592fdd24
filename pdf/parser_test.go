package pdf

import (
	"reflect"
	"testing"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Object
	}{
		{"null", "null", Null{}},
		{"true", "true", Bool(true)},
		{"false", "false", Bool(false)},
		{"integer", "42", Int(42)},
		{"negative integer", "-17", Int(-17)},
		{"real", "3.14", Real(3.14)},
		{"negative real", "-.5", Real(-0.5)},
		{"name", "/Type", Name("Type")},
		{"name with hex escape", "/A#20B", Name("A B")},
		{"empty name", "/ ", Name("")},
		{"literal string", "(hello)", String("hello")},
		{"nested parens", "(a(b)c)", String("a(b)c")},
		{"hex string", "<48656C6C6F>", String("Hello")},
		{"hex string odd digits", "<48656C6C6F7>", String("Hello\x70")},
		{"hex string with whitespace", "<48 65\n6C>", String("Hel")},
		{"indirect reference", "12 0 R", IndirectRef{Number: 12, Generation: 0}},
		{"array", "[1 2 3]", Array{Int(1), Int(2), Int(3)}},
		{"nested array", "[[1] /X]", Array{Array{Int(1)}, Name("X")}},
		{"array of refs", "[1 0 R 2 0 R]", Array{
			IndirectRef{Number: 1}, IndirectRef{Number: 2},
		}},
		{"dictionary", "<</Type /Page /Count 3>>", Dict{
			"Type":  Name("Page"),
			"Count": Int(3),
		}},
		{"dict with ref value", "<</Parent 5 0 R>>", Dict{
			"Parent": IndirectRef{Number: 5},
		}},
		{"comment skipped", "% remark\n7", Int(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser([]byte(tt.input))
			got, err := p.parseObject()
			if err != nil {
				t.Fatalf("parseObject(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseObject(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLiteralStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(a\nb)`, "a\nb"},
		{`(a\tb)`, "a\tb"},
		{`(a\(b\))`, "a(b)"},
		{`(a\\b)`, `a\b`},
		{`(\101)`, "A"},
		{`(\0533)`, "+3"},
		{"(a\\\nb)", "ab"},
		{`(\q)`, "q"},
	}
	for _, tt := range tests {
		p := newParser([]byte(tt.input))
		got, err := p.parseObject()
		if err != nil {
			t.Fatalf("parseObject(%q) error: %v", tt.input, err)
		}
		if string(got.(String)) != tt.want {
			t.Errorf("parseObject(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNumberNotMistakenForReference(t *testing.T) {
	// Two integers not followed by R stay separate numbers.
	p := newParser([]byte("10 20 30"))
	for _, want := range []Int{10, 20, 30} {
		obj, err := p.parseObject()
		if err != nil {
			t.Fatal(err)
		}
		if obj != want {
			t.Errorf("got %v, want %v", obj, want)
		}
	}
}

func TestParseIndirectObject(t *testing.T) {
	input := "3 0 obj\n<</Length 5>>\nendobj\n"
	p := newParser([]byte(input))
	indirect, err := p.parseIndirectObject()
	if err != nil {
		t.Fatal(err)
	}
	if indirect.Ref.Number != 3 || indirect.Ref.Generation != 0 {
		t.Errorf("ref = %v, want 3 0", indirect.Ref)
	}
	dict, ok := indirect.Object.(Dict)
	if !ok {
		t.Fatalf("object is %T, want Dict", indirect.Object)
	}
	if n, _ := dict.GetInt("Length"); n != 5 {
		t.Errorf("Length = %d, want 5", n)
	}
}

func TestParseStream(t *testing.T) {
	t.Run("direct length", func(t *testing.T) {
		input := "1 0 obj\n<</Length 5>>\nstream\nhello\nendstream\nendobj\n"
		p := newParser([]byte(input))
		indirect, err := p.parseIndirectObject()
		if err != nil {
			t.Fatal(err)
		}
		stream, ok := indirect.Object.(*Stream)
		if !ok {
			t.Fatalf("object is %T, want *Stream", indirect.Object)
		}
		if string(stream.Data) != "hello" {
			t.Errorf("data = %q, want %q", stream.Data, "hello")
		}
	})

	t.Run("wrong length falls back to scan", func(t *testing.T) {
		input := "1 0 obj\n<</Length 400>>\nstream\nhello\nendstream\nendobj\n"
		p := newParser([]byte(input))
		indirect, err := p.parseIndirectObject()
		if err != nil {
			t.Fatal(err)
		}
		stream := indirect.Object.(*Stream)
		if string(stream.Data) != "hello" {
			t.Errorf("data = %q, want %q", stream.Data, "hello")
		}
	})

	t.Run("indirect length", func(t *testing.T) {
		input := "1 0 obj\n<</Length 2 0 R>>\nstream\nworld\nendstream\nendobj\n"
		p := newParser([]byte(input))
		p.resolve = func(ref IndirectRef) (int, error) {
			if ref.Number != 2 {
				t.Errorf("resolved object %d, want 2", ref.Number)
			}
			return 5, nil
		}
		indirect, err := p.parseIndirectObject()
		if err != nil {
			t.Fatal(err)
		}
		stream := indirect.Object.(*Stream)
		if string(stream.Data) != "world" {
			t.Errorf("data = %q, want %q", stream.Data, "world")
		}
	})

	t.Run("crlf after stream keyword", func(t *testing.T) {
		input := "1 0 obj\n<</Length 3>>\nstream\r\nabc\nendstream\nendobj\n"
		p := newParser([]byte(input))
		indirect, err := p.parseIndirectObject()
		if err != nil {
			t.Fatal(err)
		}
		stream := indirect.Object.(*Stream)
		if string(stream.Data) != "abc" {
			t.Errorf("data = %q, want %q", stream.Data, "abc")
		}
	})
}

func TestParseObjectErrors(t *testing.T) {
	inputs := []string{
		"",
		"(unterminated",
		"<48 6",
		"[1 2",
		"<</Key",
		"}",
	}
	for _, input := range inputs {
		p := newParser([]byte(input))
		if _, err := p.parseObject(); err == nil {
			t.Errorf("parseObject(%q) succeeded, want error", input)
		}
	}
}
