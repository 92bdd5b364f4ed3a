package localrag

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	// maxChunkRunes targets roughly 450 tokens for a 512-token embedding model.
	maxChunkRunes = 700
	minChunkRunes = 50
)

// Chunk is one embeddable slice of a document.
type Chunk struct {
	Index   int
	Section string
	Text    string
}

// Chunker splits uploaded documents into embeddable chunks. Markdown files
// are chunked along their heading structure via the goldmark AST; everything
// else is treated as plain text and chunked by paragraph.
type Chunker struct {
	parser goldmark.Markdown
}

// NewChunker creates a new Chunker.
func NewChunker() *Chunker {
	return &Chunker{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// ChunkDocument splits content into chunks. filename decides the chunking
// strategy by extension.
func (c *Chunker) ChunkDocument(content []byte, filename string) []Chunk {
	if len(content) == 0 {
		return nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return c.chunkMarkdown(content)
	default:
		return chunkPlainText(string(content))
	}
}

// chunkMarkdown walks the goldmark AST and accumulates text under the current
// heading, starting a new chunk at each heading boundary.
func (c *Chunker) chunkMarkdown(content []byte) []Chunk {
	reader := text.NewReader(content)
	doc := c.parser.Parser().Parse(reader)

	var chunks []Chunk
	var section string
	var buf strings.Builder

	flush := func() {
		txt := strings.TrimSpace(buf.String())
		buf.Reset()
		if txt == "" {
			return
		}
		for _, piece := range splitOversized(txt) {
			chunks = append(chunks, Chunk{Section: section, Text: piece})
		}
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			flush()
			section = nodeText(heading, content)
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(nodeText(node, content))
	}
	flush()

	chunks = mergeTiny(chunks)
	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// nodeText extracts the raw text of a node and its children.
func nodeText(node ast.Node, content []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(content))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(content))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// chunkPlainText packs paragraphs into chunks of at most maxChunkRunes.
func chunkPlainText(content string) []Chunk {
	paragraphs := strings.Split(content, "\n\n")

	var chunks []Chunk
	var buf strings.Builder

	flush := func() {
		txt := strings.TrimSpace(buf.String())
		buf.Reset()
		if txt == "" {
			return
		}
		for _, piece := range splitOversized(txt) {
			chunks = append(chunks, Chunk{Text: piece})
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len([]rune(buf.String()))+len([]rune(para)) > maxChunkRunes {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(para)
	}
	flush()

	chunks = mergeTiny(chunks)
	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// splitOversized splits text into pieces of at most maxChunkRunes runes,
// breaking at whitespace where possible.
func splitOversized(text string) []string {
	runes := []rune(text)
	if len(runes) <= maxChunkRunes {
		return []string{text}
	}

	var pieces []string
	for len(runes) > 0 {
		if len(runes) <= maxChunkRunes {
			pieces = append(pieces, strings.TrimSpace(string(runes)))
			break
		}

		cut := maxChunkRunes
		for i := maxChunkRunes; i > maxChunkRunes/2; i-- {
			if runes[i-1] == ' ' || runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		pieces = append(pieces, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}
	return pieces
}

// mergeTiny merges chunks below minChunkRunes into their predecessor so lone
// fragments do not pollute the index.
func mergeTiny(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}

	merged := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(merged) > 0 && len([]rune(chunk.Text)) < minChunkRunes {
			prev := &merged[len(merged)-1]
			if len([]rune(prev.Text))+len([]rune(chunk.Text)) <= maxChunkRunes {
				prev.Text = prev.Text + "\n\n" + chunk.Text
				continue
			}
		}
		merged = append(merged, chunk)
	}
	return merged
}
