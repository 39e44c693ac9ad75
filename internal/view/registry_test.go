package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotiguide/internal/catalog"
	"emotiguide/internal/kv"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

func TestRegistryReturnsOneControllerPerProfile(t *testing.T) {
	sessions := session.NewRegistry(kv.NewMemory(), session.Options{})
	t.Cleanup(sessions.Close)
	views := NewRegistry(sessions, &fakeGuidance{}, catalog.Default(), Options{})

	first, err := views.Get(context.Background(), "")
	require.NoError(t, err)
	again, err := views.Get(context.Background(), session.DefaultProfile)
	require.NoError(t, err)
	other, err := views.Get(context.Background(), "lab-2")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)

	_, err = views.Get(context.Background(), "bad:profile")
	assert.Error(t, err)
}

func TestClosingSessionsUnblocksWait(t *testing.T) {
	started := make(chan struct{})
	g := &fakeGuidance{advice: func(ctx context.Context, _ model.Emotion, _ string) (*model.CareerAdvice, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	sessions := session.NewRegistry(kv.NewMemory(), session.Options{})
	views := NewRegistry(sessions, g, catalog.Default(), Options{})

	ctx := context.Background()
	store, err := sessions.Get(ctx, "")
	require.NoError(t, err)
	login(t, store, "")
	ctrl, err := views.Get(ctx, "")
	require.NoError(t, err)

	_, err = ctrl.RequestCareerAdvice()
	require.NoError(t, err)
	<-started

	sessions.Close()

	done := make(chan struct{})
	go func() {
		views.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after the sessions were closed")
	}
	assert.NotEqual(t, CareerLoading, ctrl.CareerState().Status)
}
