// Package problemgen builds multiple-choice and typed problems from a
// weighted pool of flashcards.
package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/weighted"
)

// Generator draws cards from a shared weighted pool and turns them into
// problems. Distractors are taken from every loaded deck, not just the
// pool.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	decks       []deck.Deck
	pool        *weighted.List[deck.DeckCard]
	poolIndex   map[deck.DeckCard]int
	all         []deck.DeckCard
	faces       []string
	rng         *rand.Rand
	withWeights bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithFaces restricts question faces to the named faces. Answer faces are
// not restricted.
func WithFaces(names ...string) Option {
	return func(g *Generator) {
		g.faces = slices.Clone(names)
	}
}

// WithRand sets the random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithWeights makes every problem carry a snapshot of the pool weights.
func WithWeights() Option {
	return func(g *Generator) {
		g.withWeights = true
	}
}

// New creates a Generator over pool. decks must be the slice the pool's
// DeckCards index into.
func New(decks []deck.Deck, pool *weighted.List[deck.DeckCard], opts ...Option) *Generator {
	g := &Generator{
		decks:     decks,
		pool:      pool,
		poolIndex: make(map[deck.DeckCard]int, pool.Len()),
		all:       deck.Flatten(decks),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for i := range pool.Len() {
		g.poolIndex[pool.At(i).Item] = i
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decks returns the decks the generator draws from.
func (g *Generator) Decks() []deck.Deck {
	return g.decks
}

// Pool returns the shared weighted pool.
func (g *Generator) Pool() *weighted.List[deck.DeckCard] {
	return g.pool
}

// PoolIndex returns the pool index of dc, or -1.
func (g *Generator) PoolIndex(dc deck.DeckCard) int {
	if i, ok := g.poolIndex[dc]; ok {
		return i
	}
	return -1
}

// draw is one weighted pick with its chosen face pairing.
type draw struct {
	card          deck.DeckCard
	poolIndex     int
	questionIndex int
	answerIndex   int
}

// Next builds the next match problem. It returns ErrPoolEmpty when the
// pool is empty and a *DeckMismatchError when four distinct options cannot
// be found for the drawn pairing.
func (g *Generator) Next() (*MatchProblem, error) {
	d, err := g.drawCard()
	if err != nil {
		return nil, err
	}

	problemDeck, problemCard := deck.Resolve(g.decks, d.card)
	questionFace := problemDeck.Faces[d.questionIndex]
	answerFace := problemDeck.Faces[d.answerIndex]
	questionValue := problemCard[d.questionIndex]
	answerValue := problemCard[d.answerIndex]

	seen := make([]deck.Face, 0, AnswersPerProblem)
	seen = append(seen, answerValue)

	type option struct {
		card      deck.DeckCard
		value     deck.Face
		poolIndex int
		correct   bool
	}
	options := make([]option, 0, AnswersPerProblem)
	options = append(options, option{card: d.card, value: answerValue, poolIndex: d.poolIndex, correct: true})

	candidates := slices.Clone(g.all)
	g.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, cand := range candidates {
		if len(options) == AnswersPerProblem {
			break
		}
		candDeck, candCard := deck.Resolve(g.decks, cand)

		ai := candDeck.FaceIndex(answerFace)
		if ai < 0 || candCard[ai] == nil {
			continue
		}
		candAnswer := candCard[ai]
		if slices.ContainsFunc(seen, func(f deck.Face) bool { return deck.Overlaps(f, candAnswer) }) {
			continue
		}

		if qi := candDeck.FaceIndex(questionFace); qi >= 0 && deck.Overlaps(candCard[qi], questionValue) {
			continue
		}

		seen = append(seen, candAnswer)
		options = append(options, option{card: cand, value: candAnswer, poolIndex: g.PoolIndex(cand)})
	}

	if len(options) < AnswersPerProblem {
		return nil, &DeckMismatchError{
			Question:     questionValue.Join(),
			QuestionFace: questionFace,
			AnswerFace:   answerFace,
			Deck:         problemDeck.Name,
			Found:        len(options),
		}
	}

	g.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	p := &MatchProblem{
		QuestionFace: questionFace,
		AnswerFace:   answerFace,
		Question: PromptCard{
			Prompt:    questionValue.JoinRandom(g.rng),
			Card:      d.card,
			PoolIndex: d.poolIndex,
		},
		Answers: make([]Answer, len(options)),
	}
	for i, o := range options {
		p.Answers[i] = Answer{
			PromptCard: PromptCard{
				Prompt:    o.value.JoinRandom(g.rng),
				Card:      o.card,
				PoolIndex: o.poolIndex,
			},
			Correct: o.correct,
		}
		if o.correct {
			p.CorrectIndex = i
		}
	}
	if g.withWeights {
		p.Weights = g.pool.Weights()
	}
	return p, nil
}

// NextPrompt draws a card and face pairing for a typed answer.
func (g *Generator) NextPrompt() (*TypeProblem, error) {
	d, err := g.drawCard()
	if err != nil {
		return nil, err
	}

	problemDeck, problemCard := deck.Resolve(g.decks, d.card)
	p := &TypeProblem{
		QuestionFace: problemDeck.Faces[d.questionIndex],
		AnswerFace:   problemDeck.Faces[d.answerIndex],
		Question: PromptCard{
			Prompt:    problemCard[d.questionIndex].JoinRandom(g.rng),
			Card:      d.card,
			PoolIndex: d.poolIndex,
		},
		Expected: problemCard[d.answerIndex],
	}
	if g.withWeights {
		p.Weights = g.pool.Weights()
	}
	return p, nil
}

// drawCard picks a weighted card and a question/answer face pairing. A
// pool built by NewPool with the same faces only holds eligible cards, so
// the first draw succeeds; other pools are redrawn up to pool-size times.
func (g *Generator) drawCard() (draw, error) {
	if g.pool.Len() == 0 && len(g.faces) > 0 {
		return draw{}, fmt.Errorf("%w: %v", ErrNoFilteredFace, g.faces)
	}
	attempts := max(g.pool.Len(), 1)
	for range attempts {
		dc, idx, ok := g.pool.Random(g.rng)
		if !ok {
			return draw{}, ErrPoolEmpty
		}

		d, ok := g.pickFaces(dc)
		if !ok {
			continue
		}
		d.poolIndex = idx
		return d, nil
	}
	return draw{}, fmt.Errorf("%w: %v", ErrNoFilteredFace, g.faces)
}

func (g *Generator) pickFaces(dc deck.DeckCard) (draw, bool) {
	d, c := deck.Resolve(g.decks, dc)
	present := c.Present()
	if len(present) < 2 {
		panic(fmt.Sprintf("problemgen: card %q has %d usable faces", d.CardID(dc.Card), len(present)))
	}

	shuffled := func() []int {
		out := slices.Clone(present)
		g.shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	if len(g.faces) == 0 {
		order := shuffled()
		return draw{card: dc, questionIndex: order[0], answerIndex: order[1]}, true
	}

	question := -1
	for _, fi := range shuffled() {
		if slices.Contains(g.faces, d.Faces[fi]) {
			question = fi
			break
		}
	}
	if question < 0 {
		return draw{}, false
	}

	for _, fi := range shuffled() {
		if fi != question {
			return draw{card: dc, questionIndex: question, answerIndex: fi}, true
		}
	}
	return draw{}, false
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.rng.Shuffle(n, swap)
}
