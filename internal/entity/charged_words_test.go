package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChargedWordSet_Fingerprint(t *testing.T) {
	t.Parallel()

	a := NewChargedWordSet([]string{"кризис", "катастроф"})
	b := NewChargedWordSet([]string{"катастроф", "", "кризис", "кризис"})
	c := NewChargedWordSet([]string{"кризис"})

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	require.Len(t, a.Fingerprint(), 64)

	var nilSet *ChargedWordSet
	require.Empty(t, nilSet.Fingerprint())
	require.False(t, nilSet.Contains("кризис"))
}
