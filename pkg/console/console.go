// Package console runs the interactive read-analyze-print loop.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"clock-client/pkg/models"
	"clock-client/pkg/services"
)

// Prompt is printed before every read.
const Prompt = "\nEnter some text (\"quit\" to stop)\n"

// QuitKeyword ends the loop, compared case-insensitively.
const QuitKeyword = "quit"

// Asker analyzes a query and resolves it to an answer.
type Asker interface {
	Ask(ctx context.Context, query string) (*models.PredictionResult, string, error)
}

// Console wires an Asker to line-oriented input and output.
type Console struct {
	in         io.Reader
	out        io.Writer
	asker      Asker
	transcript *services.TranscriptService
	now        func() time.Time
}

// New returns a Console. transcript may be nil.
func New(in io.Reader, out io.Writer, asker Asker, transcript *services.TranscriptService) *Console {
	return &Console{
		in:         in,
		out:        out,
		asker:      asker,
		transcript: transcript,
		now:        time.Now,
	}
}

// Run loops until the quit keyword, end of input, or ctx cancellation.
// A failed analysis is reported and the loop moves on to the next prompt.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(c.out, Prompt)

		var text string
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			text = line
		}

		if strings.EqualFold(strings.TrimSpace(text), QuitKeyword) {
			return nil
		}

		c.handle(ctx, text)

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Console) handle(ctx context.Context, text string) {
	entry := models.TranscriptEntry{
		Timestamp: c.now().Format(time.RFC3339),
		Query:     text,
	}
	defer func() {
		if c.transcript != nil {
			c.transcript.Record(entry)
		}
	}()

	prediction, answer, err := c.asker.Ask(ctx, text)
	if err != nil {
		entry.Error = err.Error()
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	entry.TopIntent = prediction.TopIntent
	entry.Confidence = prediction.TopScore().ConfidenceScore
	entry.Entities = prediction.Entities
	entry.Answer = answer

	WritePrediction(c.out, prediction)
	fmt.Fprintln(c.out, answer)
}

// WritePrediction prints the top intent, its entities and the echoed query.
func WritePrediction(w io.Writer, p *models.PredictionResult) {
	top := p.TopScore()

	fmt.Fprintln(w, "View top intent:")
	fmt.Fprintf(w, "\ttop intent: %s\n", p.TopIntent)
	fmt.Fprintf(w, "\tcategory: %s\n", top.Category)
	fmt.Fprintf(w, "\tconfidence score: %s\n\n", formatScore(top.ConfidenceScore))

	fmt.Fprintln(w, "View entities:")
	for _, entity := range p.Entities {
		fmt.Fprintf(w, "\tcategory: %s\n", entity.Category)
		fmt.Fprintf(w, "\ttext: %s\n", entity.Text)
		fmt.Fprintf(w, "\tconfidence score: %s\n", formatScore(entity.ConfidenceScore))
	}

	fmt.Fprintf(w, "query: %s\n", p.Query)
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
