package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Module is the slice of course content the review engine reads.
type Module struct {
	ID                 string             `json:"id" validate:"required,max=100"`
	CourseID           string             `json:"course_id" validate:"required,max=100"`
	Title              string             `json:"title" validate:"required,max=300"`
	ContentBlocks      []ContentBlock     `json:"content_blocks" validate:"dive"`
	AIGeneratedContent AIGeneratedContent `json:"ai_generated_content"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// AIGeneratedContent holds the generated study material attached to a module.
type AIGeneratedContent struct {
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	KeyPoints         []string           `json:"key_points"`
}

type PracticeQuestion struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Block types.
const (
	BlockTypeText        = "text"
	BlockTypeInteraction = "interaction"
)

// Interaction types.
const (
	InteractionMCQ        = "mcq"
	InteractionFillBlank  = "fill_blank"
	InteractionReflection = "reflection"
	InteractionReveal     = "reveal"
	InteractionConfirm    = "confirm"
	InteractionCode       = "code"
)

// ContentBlock is one block of module content. Interaction is set only for
// blocks of type "interaction".
type ContentBlock struct {
	ID          string      `json:"id" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	ConceptKey  string      `json:"concept_key"`
	Text        string      `json:"text"`
	Interaction Interaction `json:"-"`
}

// Interaction is the closed set of interactive block payloads, keyed by type.
type Interaction interface {
	InteractionType() string
	isInteraction()
}

type MCQOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type MCQInteraction struct {
	Prompt  string      `json:"prompt"`
	Options []MCQOption `json:"options"`
}

type Blank struct {
	CorrectAnswer string `json:"correct_answer"`
}

// FillBlankInteraction marks each blank in Text with a {{...}} placeholder.
type FillBlankInteraction struct {
	Text   string  `json:"text"`
	Blanks []Blank `json:"blanks"`
}

type ReflectionInteraction struct {
	Prompt string `json:"prompt"`
	Rubric string `json:"rubric"`
}

type RevealInteraction struct {
	Prompt  string `json:"prompt"`
	Content string `json:"content"`
}

type ConfirmInteraction struct {
	Prompt string `json:"prompt"`
}

type CodeInteraction struct {
	Prompt      string `json:"prompt"`
	Language    string `json:"language"`
	StarterCode string `json:"starter_code"`
}

// UnknownInteraction keeps payloads of types this build does not understand.
type UnknownInteraction struct {
	Type string
	Raw  json.RawMessage
}

func (MCQInteraction) InteractionType() string        { return InteractionMCQ }
func (FillBlankInteraction) InteractionType() string  { return InteractionFillBlank }
func (ReflectionInteraction) InteractionType() string { return InteractionReflection }
func (RevealInteraction) InteractionType() string     { return InteractionReveal }
func (ConfirmInteraction) InteractionType() string    { return InteractionConfirm }
func (CodeInteraction) InteractionType() string       { return InteractionCode }
func (u UnknownInteraction) InteractionType() string  { return u.Type }

func (MCQInteraction) isInteraction()        {}
func (FillBlankInteraction) isInteraction()  {}
func (ReflectionInteraction) isInteraction() {}
func (RevealInteraction) isInteraction()     {}
func (ConfirmInteraction) isInteraction()    {}
func (CodeInteraction) isInteraction()       {}
func (UnknownInteraction) isInteraction()    {}

type contentBlockJSON struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ConceptKey  string          `json:"concept_key,omitempty"`
	Text        string          `json:"text,omitempty"`
	Interaction json.RawMessage `json:"interaction,omitempty"`
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	out := contentBlockJSON{
		ID:         b.ID,
		Type:       b.Type,
		ConceptKey: b.ConceptKey,
		Text:       b.Text,
	}
	if b.Interaction != nil {
		raw, err := marshalInteraction(b.Interaction)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", b.ID, err)
		}
		out.Interaction = raw
	}
	return json.Marshal(out)
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var in contentBlockJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = ContentBlock{
		ID:         in.ID,
		Type:       in.Type,
		ConceptKey: in.ConceptKey,
		Text:       in.Text,
	}
	if in.Type != BlockTypeInteraction || len(in.Interaction) == 0 {
		return nil
	}
	interaction, err := unmarshalInteraction(in.Interaction)
	if err != nil {
		return fmt.Errorf("block %s: %w", in.ID, err)
	}
	b.Interaction = interaction
	return nil
}

func marshalInteraction(in Interaction) (json.RawMessage, error) {
	if u, ok := in.(UnknownInteraction); ok {
		return u.Raw, nil
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typ, err := json.Marshal(in.InteractionType())
	if err != nil {
		return nil, err
	}
	fields["type"] = typ
	return json.Marshal(fields)
}

func unmarshalInteraction(raw json.RawMessage) (Interaction, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var (
		target Interaction
		err    error
	)
	switch head.Type {
	case InteractionMCQ:
		var v MCQInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	case InteractionFillBlank:
		var v FillBlankInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	case InteractionReflection:
		var v ReflectionInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	case InteractionReveal:
		var v RevealInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	case InteractionConfirm:
		var v ConfirmInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	case InteractionCode:
		var v CodeInteraction
		err = json.Unmarshal(raw, &v)
		target = v
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, err
		}
		target = UnknownInteraction{Type: head.Type, Raw: json.RawMessage(compact.Bytes())}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s interaction: %w", head.Type, err)
	}
	return target, nil
}
