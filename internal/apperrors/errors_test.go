package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	require.Equal(t, KindRateLimited, KindOf(RateLimited("slow down")))
	require.Equal(t, KindInternal, KindOf(errors.New("pq: broken pipe")))
	require.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("send request: %w", Forbidden("blocked"))
	require.Equal(t, KindForbidden, KindOf(err))
	require.True(t, IsKind(err, KindForbidden))
}

func TestMessageOf(t *testing.T) {
	require.Equal(t, "User not found", MessageOf(NotFound("User not found")))
	require.Equal(t, "internal server error", MessageOf(errors.New("dial tcp: refused")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal("internal server error", cause)

	require.True(t, errors.Is(err, cause))
	require.Equal(t, "internal server error", MessageOf(err))
	require.Contains(t, err.Error(), "internal")
	require.Contains(t, err.Error(), "dial tcp")
}

func TestIsKind_NonAppError(t *testing.T) {
	require.False(t, IsKind(errors.New("plain"), KindConflict))
}
