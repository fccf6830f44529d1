package llm

import (
	"context"
	"regexp"
	"strings"
)

var sentenceRe = regexp.MustCompile(`[^\.!\?]*[\.!\?]`)

// sentenceBuffer collects streamed deltas and releases whole sentences.
type sentenceBuffer struct {
	buf  strings.Builder
	full strings.Builder
}

// processChunk appends new text and returns every complete sentence,
// keeping the unterminated tail for the next chunk.
func (b *sentenceBuffer) processChunk(chunk string) []string {
	b.full.WriteString(chunk)
	b.buf.WriteString(chunk)
	text := b.buf.String()

	var sentences []string
	for {
		loc := sentenceRe.FindStringIndex(text)
		if loc == nil {
			break
		}
		sentence := strings.TrimSpace(text[:loc[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		text = text[loc[1]:]
	}

	b.buf.Reset()
	b.buf.WriteString(text)
	return sentences
}

// flushRemaining returns any leftover text at end of stream.
func (b *sentenceBuffer) flushRemaining() string {
	leftover := strings.TrimSpace(b.buf.String())
	b.buf.Reset()
	return leftover
}

// text is everything received so far.
func (b *sentenceBuffer) text() string {
	return strings.TrimSpace(b.full.String())
}

func send(ctx context.Context, out chan<- string, s string) error {
	select {
	case out <- s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
