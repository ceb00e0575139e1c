package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helveticaFont = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"
	// two byte glyph ids mapped to unicode by object 4
	identityFont = "<< /Type /Font /Subtype /Type0 /BaseFont /Embedded /Encoding /Identity-H /ToUnicode 4 0 R >>"
	toUnicodeMap = "1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n2 beginbfchar\n<0029> <0046>\n<0048> <0065>\nendbfchar"
)

// writeTestPDF writes a minimal PDF with one font, one page per shown string operand
func writeTestPDF(t *testing.T, path string, font string, shows ...string) {
	t.Helper()

	stream := func(content string) string {
		return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
	}

	kids := make([]string, len(shows))
	for i := range shows {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(shows)),
		font,
		stream(toUnicodeMap),
	}
	for i, show := range shows {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 6+2*i),
			stream(fmt.Sprintf("BT /F1 12 Tf 72 720 Td %s Tj ET", show)),
		)
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
}

func TestPDFReader(t *testing.T) {
	dir := t.TempDir()

	t.Run("Read pages in order", func(t *testing.T) {
		path := filepath.Join(dir, "report.pdf")
		writeTestPDF(t, path, helveticaFont, "(Revenue grew 12% in Q3.)", "(Costs fell slightly.)")

		doc, err := NewPDFReader().Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", doc.Source)
		require.Len(t, doc.Pages, 2)
		assert.Equal(t, 1, doc.Pages[0].Number)
		assert.Equal(t, "Revenue grew 12% in Q3.", doc.Pages[0].Text)
		assert.Equal(t, 2, doc.Pages[1].Number)
		assert.Equal(t, "Costs fell slightly.", doc.Pages[1].Text)
	})

	t.Run("Two byte glyphs are decoded through the unicode map", func(t *testing.T) {
		path := filepath.Join(dir, "identity.pdf")
		writeTestPDF(t, path, identityFont, "<002900480048>")

		doc, err := NewPDFReader().Read(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, doc.Pages, 1)
		assert.Equal(t, "Fee", doc.Pages[0].Text)
	})

	t.Run("Invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

		_, err := NewPDFReader().Read(context.Background(), path)
		assert.Error(t, err)
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewPDFReader().Read(ctx, filepath.Join(dir, "report.pdf"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTextReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("page one\fpage two"), 0o600))

	doc, err := NewTextReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Source)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "page two", doc.Pages[1].Text)

	_, err = NewTextReader().Read(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestMultiReader(t *testing.T) {
	reader := NewDefaultReader()

	t.Run("Accepts by extension", func(t *testing.T) {
		assert.True(t, reader.Accepts("a.pdf"))
		assert.True(t, reader.Accepts("B.PDF"))
		assert.True(t, reader.Accepts("notes.txt"))
		assert.False(t, reader.Accepts("image.png"))
		assert.False(t, reader.Accepts("README"))
	})

	t.Run("Unsupported file", func(t *testing.T) {
		_, err := reader.Read(context.Background(), "image.png")
		var unsupported *UnsupportedFileError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "image.png", unsupported.Path)
	})

	t.Run("Dispatch to text reader", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

		doc, err := reader.Read(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, doc.Pages, 1)
		assert.Equal(t, "content", doc.Pages[0].Text)
	})
}
