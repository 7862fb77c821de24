package elastic

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHitIDsKeepsOrderAndSkipsForeignIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	body := `{"hits":{"hits":[{"_id":"` + b.String() + `"},{"_id":"not-a-uuid"},{"_id":"` + a.String() + `"}]}}`

	ids, err := decodeHitIDs(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, a}, ids)
}

func TestDecodeHitIDsEmpty(t *testing.T) {
	ids, err := decodeHitIDs(strings.NewReader(`{"hits":{"hits":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = decodeHitIDs(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestMatchQueryBoostsTitle(t *testing.T) {
	q := matchQuery("sorting")
	mm, ok := q["multi_match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sorting", mm["query"])
	assert.Contains(t, mm["fields"], "title^3")
}
