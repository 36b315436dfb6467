package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWin(t *testing.T) {
	assert.Equal(t, 12000, Win(10000))
	assert.Equal(t, 7, Win(6))
	assert.Equal(t, 6, Win(5))
	assert.Equal(t, Godlike, Win(Godlike))
	assert.Equal(t, Godlike, Win(Godlike-1))
}

func TestLose(t *testing.T) {
	assert.Equal(t, 8500, Lose(10000))
	assert.Equal(t, 5, Lose(6))
	assert.Equal(t, 5, Lose(7))
	assert.Equal(t, 5, Lose(5))
	assert.Equal(t, 5, Lose(1))
	assert.Equal(t, Godlike, Lose(Godlike))
}

func TestLedger(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	l := NewLedger(logrus.StandardLogger(), NewMemoryStore(), 0)

	entry, err := l.Rating(ctx, 1)
	a.NoError(err)
	a.Equal(Entry{PlayerID: 1, Rating: DefaultInitial, IsNew: true}, entry)

	entry, err = l.Join(ctx, 1)
	a.NoError(err)
	a.True(entry.IsNew)
	a.Equal("Fast Dog has been added to the skill pool with a rating of 10000", entry.Describe("Fast Dog"))

	entry, err = l.Join(ctx, 1)
	a.NoError(err)
	a.False(entry.IsNew)
	a.Equal("Fast Dog has some skill and a rating of 10000", entry.Describe("Fast Dog"))

	changes, err := l.RecordWin(ctx, 2, []int64{1, 3, 4})
	a.NoError(err)
	a.Equal([]Change{
		{PlayerID: 2, Before: 10000, After: 12000, Won: true},
		{PlayerID: 1, Before: 10000, After: 8500},
		{PlayerID: 3, Before: 10000, After: 8500},
		{PlayerID: 4, Before: 10000, After: 8500},
	}, changes)
	a.Equal("Slow Cat raised their rating to 12000", changes[0].Describe("Slow Cat"))
	a.Equal("Fast Dog's rating dropped to 8500", changes[1].Describe("Fast Dog"))

	entry, _ = l.Rating(ctx, 2)
	a.Equal(12000, entry.Rating)
	entry, _ = l.Rating(ctx, 4)
	a.Equal(8500, entry.Rating)

	_, err = l.RecordWin(ctx, 2, []int64{1, 2})
	a.Error(err)
	entry, _ = l.Rating(ctx, 2)
	a.Equal(12000, entry.Rating, "a rejected result is not saved")
}

func TestLedger_initial(t *testing.T) {
	l := NewLedger(logrus.StandardLogger(), NewMemoryStore(), 1500)
	entry, err := l.Rating(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, 1500, entry.Rating)
}

func TestChange_Describe(t *testing.T) {
	a := assert.New(t)
	a.Equal("A is still a god", Change{Before: Godlike, After: Godlike, Won: true}.Describe("A"))
	a.Equal("A was taking it easy", Change{Before: Godlike, After: Godlike}.Describe("A"))
	a.Equal("A's rating is too small to change", Change{Before: 5, After: 5}.Describe("A"))
	a.Equal("A is a god", Entry{Rating: Godlike}.Describe("A"))
}

type failingStore struct {
	*MemoryStore
}

func (f failingStore) Save(ctx context.Context, ratings map[int64]int) error {
	return errors.New("disk full")
}

func TestLedger_storeError(t *testing.T) {
	l := NewLedger(logrus.StandardLogger(), failingStore{NewMemoryStore()}, 0)

	_, err := l.Join(context.Background(), 1)
	assert.EqualError(t, err, "disk full")

	_, err = l.RecordWin(context.Background(), 1, []int64{2, 3, 4})
	assert.EqualError(t, err, "disk full")
}
