package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nostalgiajars/pkg/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Product{
		{ID: 1, Name: "Mango", Price: 449, SpiceLevel: 3, Category: catalog.Spicy},
		{ID: 2, Name: "Chicken", Price: 699, SpiceLevel: 4, Category: catalog.Spicy},
		{ID: 3, Name: "Fiery Garlic", Price: 399, SpiceLevel: 5, Category: catalog.Spicy},
		{ID: 4, Name: "Heirloom Garlic", Price: 379, SpiceLevel: 2, Category: catalog.Mild},
		{ID: 5, Name: "Lemon", Price: 299, SpiceLevel: 1, Category: catalog.Mild},
	})
	require.NoError(t, err)
	return c
}

func TestRecommend(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		heat Heat
		mood Mood
		want int
	}{
		{Spicy, Bold, 3},
		{Spicy, Tangy, 2},
		{Mild, Bold, 4},
		{Mild, Tangy, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.heat)+"/"+string(tt.mood), func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(c, tt.heat, tt.mood).ID)
		})
	}
}

func TestRecommendFallsBackToFirst(t *testing.T) {
	c, err := catalog.New([]catalog.Product{
		{ID: 9, Name: "Amla", Price: 250, SpiceLevel: 2, Category: catalog.Mild},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, Recommend(c, Spicy, Bold).ID)
}

func TestQuizFlow(t *testing.T) {
	q := New(testCatalog(t))
	assert.Equal(t, AwaitingHeat, q.Stage())

	require.NoError(t, q.AnswerHeat(Spicy))
	assert.Equal(t, AwaitingMood, q.Stage())

	p, err := q.AnswerMood(Bold)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, ResultReady, q.Stage())

	got, ok := q.Result()
	require.True(t, ok)
	assert.Equal(t, p, got)

	q.Reset()
	assert.Equal(t, State{Stage: AwaitingHeat}, q.State())
	_, ok = q.Result()
	assert.False(t, ok)

	require.NoError(t, q.AnswerHeat(Mild))
	p, err = q.AnswerMood(Tangy)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
}

func TestQuizOrdering(t *testing.T) {
	q := New(testCatalog(t))

	_, err := q.AnswerMood(Bold)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	require.NoError(t, q.AnswerHeat(Spicy))
	require.NoError(t, q.AnswerHeat(Mild))
	assert.Equal(t, Mild, q.State().Heat)

	_, err = q.AnswerMood(Bold)
	require.NoError(t, err)
	assert.ErrorIs(t, q.AnswerHeat(Spicy), ErrOutOfOrder)
	_, err = q.AnswerMood(Tangy)
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Equal(t, 4, q.State().Result.ID)
}

func TestInvalidAnswers(t *testing.T) {
	q := New(testCatalog(t))
	assert.ErrorIs(t, q.AnswerHeat("lukewarm"), ErrInvalidAnswer)
	_, err := ParseMood("sweet")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Equal(t, AwaitingHeat, q.Stage())
}

func TestSubscribe(t *testing.T) {
	q := New(testCatalog(t))
	var stages []Stage
	q.Subscribe(func(st State) { stages = append(stages, st.Stage) })

	q.Reset()
	require.NoError(t, q.AnswerHeat(Spicy))
	_, err := q.AnswerMood(Tangy)
	require.NoError(t, err)
	q.Reset()

	assert.Equal(t, []Stage{AwaitingMood, ResultReady, AwaitingHeat}, stages)
}

func TestStageText(t *testing.T) {
	b, err := ResultReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "result_ready", string(b))
}
