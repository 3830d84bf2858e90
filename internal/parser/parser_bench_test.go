package parser

import (
	"fmt"
	"strings"
	"testing"
)

var benchLine = `/images/products/widget-42.jpg,2014-01-01 13:45:12,"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36"`

func BenchmarkParseLine(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseLine(benchLine)
	}
}

func BenchmarkParseReader1000(b *testing.B) {
	benchmarkParseReaderN(b, 1000)
}

func BenchmarkParseReader10000(b *testing.B) {
	benchmarkParseReaderN(b, 10000)
}

func benchmarkParseReaderN(b *testing.B, n int) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `/page/%d.html,2014-01-01 %02d:30:22,"Mozilla/5.0 Firefox/%d.0"`, i, i%24, i%40)
		sb.WriteByte('\n')
	}
	data := sb.String()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseReader(strings.NewReader(data))
	}
}
