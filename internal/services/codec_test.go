package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

const maxBox = 5

func wellFormedCardJSON(id string) string {
	return `{
		"id": "` + id + `",
		"dayNumber": 31,
		"sectionId": "anki-a",
		"sentenceIndex": 0,
		"prompt": "I start now.",
		"answer": "Ich beginne jetzt.",
		"box": 2,
		"dueDate": "2026-02-22",
		"createdAt": "2026-02-19T10:00:00Z",
		"updatedAt": "2026-02-19T10:00:00Z",
		"reviewCount": 1,
		"successCount": 1
	}`
}

func TestDecodeCardsEmptyOrUnparsable(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json", "{}", `{"a":1}`, "42", `"hello"`} {
		cards, dropped := DecodeCards(raw, maxBox)
		assert.Empty(t, cards, "raw %q", raw)
		assert.Zero(t, dropped, "raw %q", raw)
	}
}

func TestDecodeCardsDropsMalformedRecords(t *testing.T) {
	boxZero := `{
		"id": "d31:anki-a:1", "dayNumber": 31, "sectionId": "anki-a",
		"sentenceIndex": 1, "prompt": "p", "answer": "a", "box": 0,
		"dueDate": "2026-02-22", "createdAt": "x", "updatedAt": "x",
		"reviewCount": 0, "successCount": 0
	}`
	raw := "[" + wellFormedCardJSON("d31:anki-a:0") + "," + boxZero + "]"

	cards, dropped := DecodeCards(raw, maxBox)
	require.Len(t, cards, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "d31:anki-a:0", cards[0].ID)
}

func TestDecodeCardsValidation(t *testing.T) {
	base := wellFormedCardJSON("d31:anki-a:0")
	mutations := map[string][2]string{
		"missing id":              {`"id": "d31:anki-a:0",`, ``},
		"empty prompt":            {`"prompt": "I start now.",`, `"prompt": "",`},
		"box above table":         {`"box": 2,`, `"box": 6,`},
		"negative review count":   {`"reviewCount": 1,`, `"reviewCount": -1,`},
		"non-integer count":       {`"reviewCount": 1,`, `"reviewCount": 1.5,`},
		"string typed box":        {`"box": 2,`, `"box": "2",`},
		"success above reviews":   {`"successCount": 1`, `"successCount": 2`},
		"bad due date":            {`"dueDate": "2026-02-22",`, `"dueDate": "not-a-date",`},
		"negative sentence index": {`"sentenceIndex": 0,`, `"sentenceIndex": -1,`},
		"zero day number":         {`"dayNumber": 31,`, `"dayNumber": 0,`},
	}
	for name, repl := range mutations {
		t.Run(name, func(t *testing.T) {
			mutated := replaceOnce(t, base, repl[0], repl[1])
			cards, dropped := DecodeCards("["+mutated+"]", maxBox)
			assert.Empty(t, cards)
			assert.Equal(t, 1, dropped)
		})
	}
}

func TestDecodeCardsKeepsWellTypedOptionals(t *testing.T) {
	withOptionals := replaceOnce(t, wellFormedCardJSON("d31:anki-a:0"),
		`"reviewCount": 1,`,
		`"lastReviewedAt": "2026-02-19T10:00:00Z", "lastGrade": "good", "reviewCount": 1,`)

	cards, dropped := DecodeCards("["+withOptionals+"]", maxBox)
	require.Len(t, cards, 1)
	assert.Zero(t, dropped)
	assert.Equal(t, "2026-02-19T10:00:00Z", cards[0].LastReviewedAt)
	assert.Equal(t, models.GradeGood, cards[0].LastGrade)
}

func TestDecodeCardsClearsMistypedOptionals(t *testing.T) {
	withBad := replaceOnce(t, wellFormedCardJSON("d31:anki-a:0"),
		`"reviewCount": 1,`,
		`"lastReviewedAt": 12345, "lastGrade": "excellent", "reviewCount": 1,`)

	cards, dropped := DecodeCards("["+withBad+"]", maxBox)
	require.Len(t, cards, 1)
	assert.Zero(t, dropped, "mistyped optionals must not drop the record")
	assert.Empty(t, cards[0].LastReviewedAt)
	assert.Zero(t, cards[0].LastGrade)
}

func TestEncodeCardsRoundTrip(t *testing.T) {
	in := []models.ReviewCard{{
		ID:             "d31:anki-a:0",
		DayNumber:      31,
		SectionID:      "anki-a",
		SentenceIndex:  0,
		Prompt:         "I start now.",
		Answer:         "Ich beginne jetzt.",
		Box:            2,
		DueDate:        "2026-02-22",
		CreatedAt:      "2026-02-19T10:00:00Z",
		UpdatedAt:      "2026-02-20T10:00:00Z",
		LastReviewedAt: "2026-02-20T10:00:00Z",
		LastGrade:      models.GradeEasy,
		ReviewCount:    2,
		SuccessCount:   1,
	}}

	raw, err := EncodeCards(in)
	require.NoError(t, err)

	out, dropped := DecodeCards(raw, maxBox)
	assert.Zero(t, dropped)
	assert.Equal(t, in, out)
}

func TestEncodeCardsNilIsEmptyList(t *testing.T) {
	raw, err := EncodeCards(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func replaceOnce(t *testing.T, s, old, new string) string {
	t.Helper()
	require.Contains(t, s, old)
	return strings.Replace(s, old, new, 1)
}
