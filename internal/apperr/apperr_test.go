package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatusMapsKnownKinds(t *testing.T) {
	cases := []struct {
		kind Kind
		want codes.Code
	}{
		{KindInvalidArgument, codes.InvalidArgument},
		{KindTransitionRejected, codes.FailedPrecondition},
		{KindNotFound, codes.NotFound},
		{KindOutOfRange, codes.Internal},
		{KindTransport, codes.Internal},
		{KindCachedStateInvalid, codes.Internal},
	}

	for _, c := range cases {
		err := ToStatus(New(c.kind, "boom"))
		st, ok := status.FromError(err)
		assert.True(t, ok)
		assert.Equal(t, c.want, st.Code())
	}
}

func TestToStatusWrapsUnknownErrorsAsInternal(t *testing.T) {
	err := ToStatus(errors.New("plain error"))
	st, ok := status.FromError(err)
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
}

func TestToStatusNilIsNil(t *testing.T) {
	assert.NoError(t, ToStatus(nil))
}

func TestIsMatchesWrappedKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindTransport, "status cache set failed", cause)

	assert.True(t, Is(err, KindTransport))
	assert.False(t, Is(err, KindNotFound))
	assert.Contains(t, err.Error(), "connection refused")
}
