// Package console runs quizzes over plain line-oriented input and output.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/session"
)

// Presenter asks match problems on w and reads answers from r. It
// implements session.Presenter and session.FeedbackPresenter.
type Presenter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Presenter.
func New(r io.Reader, w io.Writer) *Presenter {
	return &Presenter{in: bufio.NewScanner(r), out: w}
}

// Present prints p and blocks until a valid choice, "q" or end of input.
func (c *Presenter) Present(ctx context.Context, p *problemgen.MatchProblem, progress session.Progress) (int, error) {
	fmt.Fprintf(c.out, "\n[%s] %s: %s\n", progress.Label(), p.QuestionFace, p.Question.Prompt)
	for i, a := range p.Answers {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, a.Prompt)
	}

	for {
		line, err := c.readLine(ctx, fmt.Sprintf("%s (1-%d, q to quit): ", p.AnswerFace, len(p.Answers)), "q")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(p.Answers) {
			return n - 1, nil
		}
		fmt.Fprintf(c.out, "Enter a number from 1 to %d.\n", len(p.Answers))
	}
}

// Feedback prints whether the answer was right.
func (c *Presenter) Feedback(_ context.Context, p *problemgen.MatchProblem, out session.Outcome) error {
	if out.Correct {
		fmt.Fprintln(c.out, "✓ Correct!")
		return nil
	}
	fmt.Fprintf(c.out, "✗ The answer was %d) %s\n", out.CorrectIndex+1, p.Answers[out.CorrectIndex].Prompt)
	return nil
}

// RunTyped runs a type-mode session until it ends or the learner quits.
func (c *Presenter) RunTyped(ctx context.Context, s *session.Session) (*session.Summary, error) {
	for {
		if err := ctx.Err(); err != nil {
			s.Quit()
			return s.Summary(), err
		}

		p, err := s.NextPrompt()
		switch {
		case errors.Is(err, session.ErrCompleted), errors.Is(err, problemgen.ErrPoolEmpty):
			return s.Summary(), nil
		case err != nil:
			return s.Summary(), err
		}

		fmt.Fprintf(c.out, "\n[%s] %s: %s\n", s.Progress().Label(), p.QuestionFace, p.Question.Prompt)
		line, err := c.readLine(ctx, p.AnswerFace+" (q! to quit): ", "q!")
		if errors.Is(err, session.ErrQuit) {
			s.Quit()
			return s.Summary(), nil
		}
		if err != nil {
			return s.Summary(), err
		}

		out := s.AnswerTyped(ctx, line)
		mark := "✗"
		if out.Correct() {
			mark = "✓"
		}
		fmt.Fprintf(c.out, "%s %s\n", mark, out.Describe(p.Expected))
	}
}

// readLine prompts and returns the trimmed reply. End of input or a reply
// in quit means the learner quit.
func (c *Presenter) readLine(ctx context.Context, prompt string, quit ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		fmt.Fprintln(c.out)
		return "", session.ErrQuit
	}
	line := strings.TrimSpace(c.in.Text())
	if slices.Contains(quit, line) {
		return "", session.ErrQuit
	}
	return line, nil
}
