package animal

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnimals() []Animal {
	return []Animal{
		NewDog("Odie", 2, 1.3, 1111, 19),
		NewDog("Goofy", 4, 1.4, 2222, 18),
		NewDog("Saba", 3, 3.2, 3333, 28),
		NewCat("Carmel", 4, 1.3, 6666, 32),
		NewCat("Zoja", 4, 1.4, 7777, 67),
		NewCat("Doris", 2, 2.2, 8888, 12),
		NewCat("Amber", 3, 1.7, 9999, 78),
	}
}

func TestEat_AddsExactlyGrams(t *testing.T) {
	var voice bytes.Buffer
	d := NewDog("Odie", 2, 1.3, 1111, 19)
	d.SetVoice(&voice)

	d.Eat(5)
	assert.InDelta(t, 6.3, d.Weight(), 1e-9)
	assert.Equal(t, "HAU!\n", voice.String())

	// negative grams decrease the weight
	d.Eat(-2)
	assert.InDelta(t, 4.3, d.Weight(), 1e-9)
}

func TestSpeak(t *testing.T) {
	var voice bytes.Buffer
	d := NewDog("Odie", 2, 1.3, 1111, 19)
	c := NewCat("Doris", 2, 2.2, 8888, 12)
	d.SetVoice(&voice)
	c.SetVoice(&voice)

	d.Speak()
	c.Speak()
	c.Eat(1)

	assert.Equal(t, "Hau hau\nMiau miau\nMIAU!\n", voice.String())
}

func TestClone_KeepsConcreteKind(t *testing.T) {
	c := NewCat("Doris", 2, 2.2, 8888, 12)
	clone := c.Clone()

	cat, ok := clone.(*Cat)
	require.True(t, ok, "cloned cat must stay a cat, got %T", clone)
	assert.Equal(t, 12, cat.TailLength())
	assert.Equal(t, c.String(), cat.String())

	// mutating the clone leaves the original untouched
	cat.SetAge(9)
	assert.Equal(t, 2, c.Age())

	d := NewDog("Odie", 2, 1.3, 1111, 19)
	_, ok = d.Clone().(*Dog)
	assert.True(t, ok)
}

func TestEqualityAndOrdering_ByIdentity(t *testing.T) {
	a := NewDog("Odie", 2, 1.3, 1111, 19)
	b := NewCat("Odie", 2, 1.3, 2222, 19)
	sameID := NewCat("Other", 9, 9.9, 1111, 1)

	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, sameID))
	assert.False(t, Equal(a, nil))

	assert.Negative(t, Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(a, sameID))
	assert.Equal(t, 1, Compare(a, nil))
	assert.Equal(t, 1, Compare(nil, a))
}

func TestOrdering_IsTransitive(t *testing.T) {
	all := sampleAnimals()
	for _, x := range all {
		for _, y := range all {
			for _, z := range all {
				if Compare(x, y) < 0 && Compare(y, z) < 0 {
					assert.Negative(t, Compare(x, z))
				}
			}
			if x.Index() != y.Index() {
				assert.Equal(t, -Compare(x, y), Compare(y, x))
			}
		}
	}
}

func TestHashCode_FollowsIdentity(t *testing.T) {
	a := NewDog("Odie", 2, 1.3, 1111, 19)
	b := NewCat("Doris", 7, 9.1, 1111, 12)
	c := NewDog("Odie", 2, 1.3, 2222, 19)

	assert.Equal(t, a.HashCode(), b.HashCode())
	assert.NotEqual(t, a.HashCode(), c.HashCode())

	before := a.HashCode()
	a.Eat(3)
	a.SetAge(10)
	assert.Equal(t, before, a.HashCode())
}

func TestComparators_SortSevenAnimals(t *testing.T) {
	byAge := sampleAnimals()
	slices.SortStableFunc(byAge, ByAge)
	for i := 1; i < len(byAge); i++ {
		assert.LessOrEqual(t, byAge[i-1].Age(), byAge[i].Age())
	}

	byName := sampleAnimals()
	slices.SortStableFunc(byName, ByName)
	assert.Equal(t,
		[]string{"Amber", "Carmel", "Doris", "Goofy", "Odie", "Saba", "Zoja"},
		Names(byName))
}

func TestComparators_NilIsGreater(t *testing.T) {
	d := NewDog("Odie", 2, 1.3, 1111, 19)
	assert.Equal(t, 1, ByName(nil, d))
	assert.Equal(t, 1, ByAge(d, nil))
}

func TestComparators_TypedNilIsMissing(t *testing.T) {
	d := NewDog("Odie", 2, 1.3, 1111, 19)
	var none *Dog
	var noCat *Cat

	assert.Equal(t, 1, For[*Dog](ByAge)(d, none))
	assert.Equal(t, 1, For[*Dog](ByName)(none, d))
	assert.Equal(t, 1, For[*Dog](Compare)(d, none))
	assert.Equal(t, 1, Compare(noCat, d))
	assert.False(t, Equal(d, none))
	assert.False(t, Equal(none, none))
}

func TestFor_TypedSlices(t *testing.T) {
	dogs := []*Dog{
		NewDog("Saba", 3, 3.2, 3333, 28),
		NewDog("Goofy", 4, 1.4, 2222, 18),
		NewDog("Odie", 2, 1.3, 1111, 19),
	}
	slices.SortFunc(dogs, For[*Dog](ByName))
	assert.Equal(t, []string{"Goofy", "Odie", "Saba"}, Names(dogs))
}

func TestString(t *testing.T) {
	d := NewDog("Odie", 2, 1.3, 1111, 19)
	c := NewCat("Doris", 2, 2.2, 8888, 12)

	assert.Equal(t, "INDEX: 1111, NAME: Odie, AGE: 2, WEIGHT: 1.3kg, RUNNING SPEED: 19km/h", d.String())
	assert.Equal(t, "INDEX: 8888, NAME: Doris, AGE: 2, WEIGHT: 2.2kg, TAIL LENGTH: 12cm", c.String())
}
