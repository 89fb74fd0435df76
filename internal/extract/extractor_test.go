package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/reviewflash/internal/extract"
	"github.com/vytor/reviewflash/internal/models"
)

func interaction(id, conceptKey string, in models.Interaction) models.ContentBlock {
	return models.ContentBlock{ID: id, Type: models.BlockTypeInteraction, ConceptKey: conceptKey, Interaction: in}
}

func keys(cs []models.ReviewCandidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ConceptKey)
	}
	return out
}

func TestExtract_SourcePrecedence(t *testing.T) {
	m := models.Module{
		ID:    "m1",
		Title: "Photosynthesis",
		ContentBlocks: []models.ContentBlock{
			{ID: "intro", Type: models.BlockTypeText, Text: "Plants make food."},
			interaction("b7", "", models.MCQInteraction{
				Prompt:  "Which gas do plants absorb?",
				Options: []models.MCQOption{{Text: "Oxygen"}, {Text: "Carbon dioxide", IsCorrect: true}},
			}),
			interaction("b8", "chlorophyll", models.ReflectionInteraction{
				Prompt: "Why are leaves green?",
				Rubric: "Mentions chlorophyll reflecting green light.",
			}),
		},
		AIGeneratedContent: models.AIGeneratedContent{
			PracticeQuestions: []models.PracticeQuestion{
				{Question: "Where does photosynthesis happen?", Answer: "Chloroplasts"},
				{Question: "What is produced?", Answer: "Glucose and oxygen"},
			},
			KeyPoints: []string{"Light energy becomes chemical energy"},
		},
	}

	res := extract.Extract(m)

	assert.Equal(t, []string{"practice_0", "practice_1", "block_b7", "chlorophyll", "keypoint_0"}, keys(res.Candidates))
	assert.Empty(t, res.Skipped)

	mcq := res.Candidates[2]
	assert.Equal(t, "Which gas do plants absorb?", mcq.Question)
	assert.Equal(t, "Carbon dioxide", mcq.Answer)

	reflection := res.Candidates[3]
	assert.Equal(t, "Mentions chlorophyll reflecting green light.", reflection.Answer)

	kp := res.Candidates[4]
	assert.Equal(t, `What is key point 1 of "Photosynthesis"?`, kp.Question)
	assert.Equal(t, "Light energy becomes chemical energy", kp.Answer)
}

func TestExtract_FillBlank(t *testing.T) {
	m := models.Module{
		ContentBlocks: []models.ContentBlock{
			interaction("fb", "", models.FillBlankInteraction{
				Text:   "The {{mitochondria}} produces {{ATP}}.",
				Blanks: []models.Blank{{CorrectAnswer: "mitochondria"}, {CorrectAnswer: "ATP"}},
			}),
		},
	}

	res := extract.Extract(m)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "The _____ produces _____.", res.Candidates[0].Question)
	assert.Equal(t, "mitochondria, ATP", res.Candidates[0].Answer)
	assert.Equal(t, "block_fb", res.Candidates[0].ConceptKey)
}

func TestExtract_MCQWithoutCorrectOptionIsSkipped(t *testing.T) {
	m := models.Module{
		ContentBlocks: []models.ContentBlock{
			interaction("bad", "", models.MCQInteraction{
				Prompt:  "Pick one",
				Options: []models.MCQOption{{Text: "A"}, {Text: "B"}},
			}),
			interaction("good", "", models.MCQInteraction{
				Prompt:  "Pick B",
				Options: []models.MCQOption{{Text: "A"}, {Text: "B", IsCorrect: true}},
			}),
		},
	}

	res := extract.Extract(m)

	assert.Equal(t, []string{"block_good"}, keys(res.Candidates))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "block_bad", res.Skipped[0].Source)
}

func TestExtract_InteractionBlockWithoutPayloadIsSkipped(t *testing.T) {
	m := models.Module{
		ContentBlocks: []models.ContentBlock{
			{ID: "empty", Type: models.BlockTypeInteraction},
			{ID: "text", Type: models.BlockTypeText, Text: "Just prose"},
		},
	}

	res := extract.Extract(m)

	assert.Empty(t, res.Candidates)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "block_empty", res.Skipped[0].Source)
}

func TestExtract_UnsupportedInteractionsAreNoOps(t *testing.T) {
	m := models.Module{
		ContentBlocks: []models.ContentBlock{
			interaction("r", "", models.RevealInteraction{Prompt: "Peek", Content: "Boo"}),
			interaction("c", "", models.ConfirmInteraction{Prompt: "Got it?"}),
			interaction("k", "", models.CodeInteraction{Prompt: "Write fizzbuzz", Language: "go"}),
			interaction("u", "", models.UnknownInteraction{Type: "hologram"}),
		},
	}

	res := extract.Extract(m)

	assert.Empty(t, res.Candidates)
	assert.Len(t, res.Skipped, 4)
}

func TestExtract_MalformedSourcesKeepStableKeys(t *testing.T) {
	m := models.Module{
		Title: "Loops",
		ContentBlocks: []models.ContentBlock{
			interaction("fb", "", models.FillBlankInteraction{Text: "no blanks here"}),
			interaction("rf", "", models.ReflectionInteraction{Prompt: "Reflect"}),
		},
		AIGeneratedContent: models.AIGeneratedContent{
			PracticeQuestions: []models.PracticeQuestion{
				{Question: "", Answer: "orphan"},
				{Question: "What is a for loop?", Answer: "Iteration"},
			},
			KeyPoints: []string{"  ", "Loops repeat"},
		},
	}

	res := extract.Extract(m)

	assert.Equal(t, []string{"practice_1", "keypoint_1"}, keys(res.Candidates))
	assert.Equal(t, `What is key point 2 of "Loops"?`, res.Candidates[1].Question)
	assert.Len(t, res.Skipped, 4)
}

func TestExtract_EmptyModule(t *testing.T) {
	res := extract.Extract(models.Module{ID: "empty"})

	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.Skipped)
}
