package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(r *Registry) *time.Time {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return &now
}

func TestRegistryBeginAndGet(t *testing.T) {
	r := NewRegistry()
	fixedClock(r)

	r.Begin(1, 10, KindBrowse, "state", time.Minute)

	s, ok := r.Get(1, KindBrowse)
	require.True(t, ok)
	assert.Equal(t, int64(10), s.ChatID)
	assert.Equal(t, "state", s.Data)

	_, ok = r.Get(1, KindWizard)
	assert.False(t, ok)
	_, ok = r.Get(2, KindBrowse)
	assert.False(t, ok)
}

func TestRegistryExpiry(t *testing.T) {
	r := NewRegistry()
	now := fixedClock(r)

	r.Begin(1, 10, KindWizard, nil, time.Minute)
	*now = now.Add(61 * time.Second)

	_, ok := r.Get(1, KindWizard)
	assert.False(t, ok)
}

func TestRegistryPeekSeesExpired(t *testing.T) {
	r := NewRegistry()
	now := fixedClock(r)

	r.Begin(1, 10, KindWizard, "draft", time.Minute)
	*now = now.Add(2 * time.Minute)

	s, ok := r.Peek(1, KindWizard)
	require.True(t, ok)
	assert.Equal(t, "draft", s.Data)

	_, ok = r.Peek(2, KindWizard)
	assert.False(t, ok)
}

func TestRegistryTakeExpired(t *testing.T) {
	r := NewRegistry()
	now := fixedClock(r)

	r.Begin(1, 10, KindWizard, nil, time.Minute)

	// Still live: nothing to take.
	_, ok := r.TakeExpired(1, KindWizard)
	assert.False(t, ok)

	*now = now.Add(2 * time.Minute)
	s, ok := r.TakeExpired(1, KindWizard)
	require.True(t, ok)
	assert.Equal(t, int64(10), s.ChatID)
	assert.Equal(t, 0, r.Len())

	_, ok = r.TakeExpired(1, KindWizard)
	assert.False(t, ok)
}

func TestRegistryTouchExtendsDeadline(t *testing.T) {
	r := NewRegistry()
	now := fixedClock(r)

	r.Begin(1, 10, KindWizard, nil, time.Minute)
	*now = now.Add(50 * time.Second)
	require.True(t, r.Touch(1, KindWizard, 5*time.Minute))

	*now = now.Add(4 * time.Minute)
	_, ok := r.Get(1, KindWizard)
	assert.True(t, ok)

	assert.False(t, r.Touch(99, KindWizard, time.Minute))
}

func TestRegistryBeginReplacesSameKind(t *testing.T) {
	r := NewRegistry()
	fixedClock(r)

	r.Begin(1, 10, KindBrowse, "old", time.Minute)
	r.Begin(1, 10, KindBrowse, "new", time.Minute)

	s, ok := r.Get(1, KindBrowse)
	require.True(t, ok)
	assert.Equal(t, "new", s.Data)
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySweepReturnsExpired(t *testing.T) {
	r := NewRegistry()
	now := fixedClock(r)

	r.Begin(1, 10, KindBrowse, nil, time.Minute)
	r.Begin(2, 20, KindWizard, nil, 10*time.Minute)
	*now = now.Add(2 * time.Minute)

	expired := r.Sweep()
	require.Len(t, expired, 1)
	assert.Equal(t, int64(1), expired[0].UserID)
	assert.Equal(t, KindBrowse, expired[0].Kind)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryEnd(t *testing.T) {
	r := NewRegistry()
	fixedClock(r)

	r.Begin(1, 10, KindWizard, "draft", time.Minute)
	s, ok := r.End(1, KindWizard)
	require.True(t, ok)
	assert.Equal(t, "draft", s.Data)

	_, ok = r.End(1, KindWizard)
	assert.False(t, ok)
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")
	err := Unexpected("insert failed", cause)
	assert.Equal(t, CodeUnexpected, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert failed")

	assert.Equal(t, CodeTimeout, Timeout("slow").Code())
	assert.Equal(t, CodeValidation, Validation("bad").Code())
	assert.Equal(t, CodeNotFound, NotFound("gone").Code())
	assert.Equal(t, CodePermission, Permission("denied").Code())
}
