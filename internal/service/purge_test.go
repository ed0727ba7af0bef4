package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reosaurous172214/xnote-server/internal/mocks"
	"github.com/reosaurous172214/xnote-server/internal/testutil"
)

func TestNewTrashPurger_InvalidPurgeTime(t *testing.T) {
	_, err := NewTrashPurger(&mocks.NoteStore{}, &fakeClock{}, 7, "not-a-time", testutil.MakeNoopLogger())
	assert.Error(t, err)
}

func TestNewTrashPurger_DefaultsRetention(t *testing.T) {
	p, err := NewTrashPurger(&mocks.NoteStore{}, &fakeClock{}, 0, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, p.retention)
}

func TestTrashPurger_RunOnce_CutoffRespectsRetention(t *testing.T) {
	now := time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
	wantCutoff := now.Add(-7 * 24 * time.Hour)

	noteStore := &mocks.NoteStore{}
	noteStore.On("PurgeTrashedBefore", mock.Anything, wantCutoff).Return(int64(3), nil)

	p, err := NewTrashPurger(noteStore, &fakeClock{now: now}, 7, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)

	count, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	noteStore.AssertExpectations(t)
}

func TestTrashPurger_RunOnce_StoreError(t *testing.T) {
	noteStore := &mocks.NoteStore{}
	noteStore.On("PurgeTrashedBefore", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	p, err := NewTrashPurger(noteStore, &fakeClock{now: time.Now()}, 7, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = p.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestTrashPurger_LogEligible(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	noteStore := &mocks.NoteStore{}
	noteStore.On("CountTrashedBefore", mock.Anything, now.Add(-7*24*time.Hour)).Return(int64(5), nil)

	p, err := NewTrashPurger(noteStore, &fakeClock{now: now}, 7, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)

	p.LogEligible(context.Background())
	noteStore.AssertExpectations(t)
}

func TestTrashPurger_NextRun(t *testing.T) {
	p, err := NewTrashPurger(&mocks.NoteStore{}, &fakeClock{}, 7, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before purge time runs same day",
			now:  time.Date(2025, 6, 10, 1, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "after purge time runs next day",
			now:  time.Date(2025, 6, 10, 2, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at purge time runs next day",
			now:  time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.nextRun(tt.now))
		})
	}
}

func TestTrashPurger_Run_StopsOnCancel(t *testing.T) {
	p, err := NewTrashPurger(&mocks.NoteStore{}, &fakeClock{now: time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)}, 7, "02:00", testutil.MakeNoopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purger did not stop on context cancellation")
	}
}
