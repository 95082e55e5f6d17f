package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LatestKeepsNewest(t *testing.T) {
	l := newLatest()
	l.offer("a")
	l.offer("ab")
	l.offer("abc")
	l.done()

	var got []string
	for v := range l.values() {
		got = append(got, v)
	}
	require.Equal(t, []string{"abc"}, got)
}

func Test_LatestDeliversInOrderWhenConsumed(t *testing.T) {
	l := newLatest()
	l.offer("a")
	require.Equal(t, "a", <-l.values())
	l.offer("b")
	require.Equal(t, "b", <-l.values())
	l.done()
	_, ok := <-l.values()
	require.False(t, ok)
}
