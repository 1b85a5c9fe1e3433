package highlight

import (
	"reflect"
	"testing"
)

func TestClassBufferSpans(t *testing.T) {
	tests := []struct {
		name string
		fill func(ClassBuffer)
		size int
		want []Span
	}{
		{
			name: "empty line",
			fill: func(ClassBuffer) {},
			size: 0,
			want: nil,
		},
		{
			name: "all neutral",
			fill: func(ClassBuffer) {},
			size: 4,
			want: []Span{{Start: 0, Length: 4, Class: StyleNeutral}},
		},
		{
			name: "runs compress",
			fill: func(cb ClassBuffer) {
				cb.Fill(0, 2, StyleKeyword)
				cb.Fill(2, 3, StyleNeutral)
				cb.Fill(3, 6, StyleString)
			},
			size: 6,
			want: []Span{
				{Start: 0, Length: 2, Class: StyleKeyword},
				{Start: 2, Length: 1, Class: StyleNeutral},
				{Start: 3, Length: 3, Class: StyleString},
			},
		},
		{
			name: "adjacent same class merge",
			fill: func(cb ClassBuffer) {
				cb.Fill(0, 2, StyleComment)
				cb.Fill(2, 5, StyleComment)
			},
			size: 5,
			want: []Span{{Start: 0, Length: 5, Class: StyleComment}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewClassBuffer(tt.size)
			tt.fill(cb)
			got := cb.Spans()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Spans() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassBufferSpansCoverExactly(t *testing.T) {
	cb := NewClassBuffer(10)
	cb.Fill(3, 7, StyleString)
	cb.Set(9, StyleComment)

	pos := 0
	for _, sp := range cb.Spans() {
		if sp.Start != pos {
			t.Fatalf("gap or overlap at %d: %+v", pos, sp)
		}
		if sp.Length <= 0 {
			t.Fatalf("empty span %+v", sp)
		}
		pos = sp.End()
	}
	if pos != 10 {
		t.Fatalf("spans end at %d, want 10", pos)
	}
}

func TestClassBufferClamping(t *testing.T) {
	cb := NewClassBuffer(3)
	cb.Fill(-5, 100, StyleKeyword) // must not panic
	cb.Set(-1, StyleComment)
	cb.Set(3, StyleComment)
	for i := 0; i < 3; i++ {
		if cb.At(i) != StyleKeyword {
			t.Errorf("At(%d) = %v, want keyword", i, cb.At(i))
		}
	}
	if cb.At(-1) != StyleNeutral || cb.At(99) != StyleNeutral {
		t.Error("out-of-range At should be neutral")
	}
}

func TestSpanContains(t *testing.T) {
	sp := Span{Start: 2, Length: 3, Class: StyleString}
	if sp.End() != 5 {
		t.Fatalf("End() = %d, want 5", sp.End())
	}
	for pos, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if sp.Contains(pos) != want {
			t.Errorf("Contains(%d) = %v, want %v", pos, sp.Contains(pos), want)
		}
	}
}

func TestStyleClassNames(t *testing.T) {
	for _, c := range StyleClasses() {
		name := c.String()
		if name == "unknown" {
			t.Fatalf("class %d has no name", c)
		}
		back, ok := StyleClassFromString(name)
		if !ok || back != c {
			t.Errorf("StyleClassFromString(%q) = %v, %v; want %v", name, back, ok, c)
		}
	}
	if _, ok := StyleClassFromString("no-such-class"); ok {
		t.Error("unknown name resolved")
	}
}

func TestStyleClassIsString(t *testing.T) {
	for _, c := range []StyleClass{StyleString, StyleStringAlt, StyleURLInString} {
		if !c.IsString() {
			t.Errorf("%v.IsString() = false", c)
		}
	}
	for _, c := range []StyleClass{StyleNeutral, StyleComment, StyleKeyword} {
		if c.IsString() {
			t.Errorf("%v.IsString() = true", c)
		}
	}
}
