// Package extract turns module content into review candidates.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/vytor/reviewflash/internal/models"
)

// BlankMarker replaces each {{...}} placeholder in fill-in-the-blank questions.
const BlankMarker = "_____"

var placeholderRe = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Skip records a source that yielded no candidate and why.
type Skip struct {
	Source string
	Reason string
}

// Result is the ordered candidate list plus the sources that were skipped.
type Result struct {
	Candidates []models.ReviewCandidate
	Skipped    []Skip
}

// Extract converts a module into review candidates. Sources are visited in a
// fixed order (practice questions, interaction blocks, key points) and every
// concept key is derived from source and position, never from content.
func Extract(m models.Module) Result {
	var res Result
	res.practiceQuestions(m.AIGeneratedContent.PracticeQuestions)
	res.interactionBlocks(m.ContentBlocks)
	res.keyPoints(m.Title, m.AIGeneratedContent.KeyPoints)
	return res
}

func (r *Result) add(key, question, answer string) {
	r.Candidates = append(r.Candidates, models.ReviewCandidate{
		ConceptKey: key,
		Question:   question,
		Answer:     answer,
	})
}

func (r *Result) skip(source, reason string) {
	r.Skipped = append(r.Skipped, Skip{Source: source, Reason: reason})
}

func (r *Result) practiceQuestions(questions []models.PracticeQuestion) {
	for i, pq := range questions {
		key := fmt.Sprintf("practice_%d", i)
		question := strings.TrimSpace(pq.Question)
		answer := strings.TrimSpace(pq.Answer)
		if question == "" || answer == "" {
			r.skip(key, "practice question is missing question or answer text")
			continue
		}
		r.add(key, question, answer)
	}
}

func (r *Result) interactionBlocks(blocks []models.ContentBlock) {
	for _, b := range blocks {
		if b.Type != models.BlockTypeInteraction {
			continue
		}
		key := b.ConceptKey
		if key == "" {
			key = "block_" + b.ID
		}
		if b.Interaction == nil {
			r.skip(key, "interaction block has no interaction payload")
			continue
		}

		question, answer, reason := fromInteraction(b.Interaction)
		if reason != "" {
			r.skip(key, reason)
			continue
		}
		r.add(key, question, answer)
	}
}

// fromInteraction returns a question/answer pair, or a non-empty reason when
// the interaction has no canonical answer.
func fromInteraction(in models.Interaction) (question, answer, reason string) {
	switch v := in.(type) {
	case models.MCQInteraction:
		correct, ok := lo.Find(v.Options, func(o models.MCQOption) bool { return o.IsCorrect })
		if !ok {
			return "", "", "mcq has no option flagged correct"
		}
		if strings.TrimSpace(v.Prompt) == "" || strings.TrimSpace(correct.Text) == "" {
			return "", "", "mcq is missing prompt or correct option text"
		}
		return strings.TrimSpace(v.Prompt), strings.TrimSpace(correct.Text), ""

	case models.FillBlankInteraction:
		if len(v.Blanks) == 0 {
			return "", "", "fill_blank has no blanks"
		}
		answers := lo.Map(v.Blanks, func(b models.Blank, _ int) string { return strings.TrimSpace(b.CorrectAnswer) })
		if lo.Contains(answers, "") {
			return "", "", "fill_blank has a blank without a correct answer"
		}
		return placeholderRe.ReplaceAllString(v.Text, BlankMarker), strings.Join(answers, ", "), ""

	case models.ReflectionInteraction:
		if strings.TrimSpace(v.Rubric) == "" {
			return "", "", "reflection has no rubric"
		}
		if strings.TrimSpace(v.Prompt) == "" {
			return "", "", "reflection has no prompt"
		}
		return strings.TrimSpace(v.Prompt), strings.TrimSpace(v.Rubric), ""

	case models.RevealInteraction, models.ConfirmInteraction, models.CodeInteraction:
		return "", "", in.InteractionType() + " interactions have no canonical answer"

	default:
		return "", "", fmt.Sprintf("unsupported interaction type %q", in.InteractionType())
	}
}

func (r *Result) keyPoints(title string, points []string) {
	for i, p := range points {
		key := fmt.Sprintf("keypoint_%d", i)
		point := strings.TrimSpace(p)
		if point == "" {
			r.skip(key, "empty key point")
			continue
		}
		r.add(key, fmt.Sprintf("What is key point %d of %q?", i+1, title), point)
	}
}
