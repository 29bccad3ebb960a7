package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateErrorFromChannelReturnsNilWhenAllNil(t *testing.T) {
	ch := make(chan IndexedError, 2)
	ch <- IndexedError{Index: 0, Err: nil}
	ch <- IndexedError{Index: 1, Err: nil}
	close(ch)

	require.NoError(t, AggregateErrorFromChannel(ch))
}

func TestAggregateErrorFromChannelAnnotatesSlotIndex(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan IndexedError, 2)
	ch <- IndexedError{Index: 0, Err: nil}
	ch <- IndexedError{Index: 2, Err: boom}
	close(ch)

	err := AggregateErrorFromChannel(ch)
	require.Error(t, err)
	require.Contains(t, err.Error(), "slot 2: boom")

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 1)
}

func TestIndexedErrorUnwrap(t *testing.T) {
	boom := errors.New("boom")
	ie := IndexedError{Index: 5, Err: boom}
	require.ErrorIs(t, ie, boom)
}
