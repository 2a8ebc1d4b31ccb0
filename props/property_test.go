package props

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeql/optcore/operator"
)

// fakeFact is a minimal Property used to exercise the PhysicalProperties
// algebra without depending on a concrete property package.
type fakeFact struct {
	key       string
	satisfies map[string]bool
}

func (f fakeFact) Satisfy(required Property) bool {
	other := required.(fakeFact)
	if f.key == other.key {
		return true
	}
	return f.satisfies[other.key]
}

func (f fakeFact) Equal(other Property) bool {
	o, ok := other.(fakeFact)
	return ok && f.key == o.key
}

func (f fakeFact) HashKey() uint64 {
	h := uint64(0)
	for _, c := range f.key {
		h = h*31 + uint64(c)
	}
	return h
}

func (f fakeFact) MakeEnforcer(childGroup GroupID) operator.Physical {
	panic("not needed for this test")
}

func TestEmptySatisfiesAndIsSatisfiedByAnything(t *testing.T) {
	require.True(t, Empty.Satisfy(Empty))

	nonEmpty := New(fakeFact{key: "sort:a"})
	require.True(t, nonEmpty.Satisfy(Empty))
	require.False(t, Empty.Satisfy(nonEmpty))
}

func TestSatisfyRequiresEveryFact(t *testing.T) {
	delivered := New(fakeFact{key: "sort:a"})
	required := New(fakeFact{key: "sort:a"}, fakeFact{key: "dist:hash"})

	require.False(t, delivered.Satisfy(required))

	delivered = New(fakeFact{key: "sort:a"}, fakeFact{key: "dist:hash"})
	require.True(t, delivered.Satisfy(required))
}

func TestEqualAndHashKeyAreStable(t *testing.T) {
	a := New(fakeFact{key: "sort:a"})
	b := New(fakeFact{key: "sort:a"})
	c := New(fakeFact{key: "sort:b"})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, a.HashKey(), b.HashKey())
	require.NotEqual(t, a.HashKey(), c.HashKey())
}
