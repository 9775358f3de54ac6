//go:build bench
// +build bench

package schema

import (
	"testing"
)

func benchLayouts(b *testing.B) map[string]*Layout {
	b.Helper()
	return map[string]*Layout{
		"small": MustLayout("Vertex", []Field{
			Int16("x", 0),
			Int16("y", 0),
		}),
		"medium": MustLayout("DirEntry", []Field{
			Int32("offset", 0),
			Int32("size", 0),
			String("name", 8, ""),
		}),
		"large": MustLayout("Header", []Field{
			String("magic", 4, ""),
			Uint32("count", 0),
			Uint32("tableOffset", 0),
			Pad(4),
			Int64("timestamp", 0),
			String("title", 32, ""),
			Uint16("version", 0),
			Pad(2),
		}),
	}
}

func BenchmarkRecord_Pack(b *testing.B) {
	for name, l := range benchLayouts(b) {
		r, err := l.New()
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Pack()
			}
		})
	}
}

func BenchmarkLayout_Unpack(b *testing.B) {
	for name, l := range benchLayouts(b) {
		r, err := l.New()
		if err != nil {
			b.Fatal(err)
		}
		data := r.Pack()

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := l.Unpack(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNewLayout(b *testing.B) {
	fields := []Field{
		Int32("offset", 0),
		Int32("size", 0),
		String("name", 8, ""),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewLayout("DirEntry", fields); err != nil {
			b.Fatal(err)
		}
	}
}
