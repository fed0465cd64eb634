package shopping

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-shopper/internal/domain"
)

func pendingApprovalOrder(id string) domain.Order {
	ord := fixtureOrder()
	ord.ID = id
	aw := dec("2.4")
	ord.Items[0].WeightInfo = &domain.WeightInfo{ActualWeight: &aw, NeedsApproval: true}
	return ord
}

func TestRegistry_OpenSharesSession(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gw.EXPECT().GetOrder(gomock.Any(), "o-1").
		DoAndReturn(func(context.Context, string) (domain.Order, error) {
			close(started)
			<-release
			return fixtureOrder(), nil
		}).Times(1)
	f.prefs.EXPECT().Committed(gomock.Any(), "c-1").Return(domain.DefaultPreferences(), nil).Times(1)

	var wg sync.WaitGroup
	got := make([]*Session, 3)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Open(context.Background(), "o-1")
			assert.NoError(t, err)
			got[i] = s
		}()
	}
	<-started
	close(release)
	wg.Wait()

	require.Same(t, got[0], got[1])
	require.Same(t, got[0], got[2])
	require.Equal(t, 1, r.Len())

	s, ok := r.Get(" o-1 ")
	require.True(t, ok)
	require.Same(t, got[0], s)
}

func TestRegistry_OpenError(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	f.gw.EXPECT().GetOrder(gomock.Any(), "o-1").Return(domain.Order{}, errors.New("503"))
	_, err := r.Open(context.Background(), "o-1")
	require.Error(t, err)
	require.Zero(t, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	f.gw.EXPECT().GetOrder(gomock.Any(), "o-1").Return(fixtureOrder(), nil)
	f.prefs.EXPECT().Committed(gomock.Any(), "c-1").Return(domain.DefaultPreferences(), nil)
	s, err := r.Open(context.Background(), "o-1")
	require.NoError(t, err)

	require.True(t, r.Close("o-1"))
	require.True(t, s.Closed())
	require.False(t, r.Close("o-1"))
	_, ok := r.Get("o-1")
	require.False(t, ok)
}

func TestRegistry_CloseDuringOpen(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gw.EXPECT().GetOrder(gomock.Any(), "o-1").
		DoAndReturn(func(context.Context, string) (domain.Order, error) {
			close(started)
			<-release
			return fixtureOrder(), nil
		})
	f.prefs.EXPECT().Committed(gomock.Any(), "c-1").Return(domain.DefaultPreferences(), nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.Open(context.Background(), "o-1")
		errCh <- err
	}()
	<-started
	require.True(t, r.Close("o-1"))
	close(release)

	require.ErrorIs(t, <-errCh, ErrSessionClosed)
	require.Zero(t, r.Len())
	_, ok := r.Get("o-1")
	require.False(t, ok)
}

func TestRegistry_OpenSurvivesFirstCallerCancel(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gw.EXPECT().GetOrder(gomock.Any(), "o-1").
		DoAndReturn(func(ctx context.Context, _ string) (domain.Order, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return domain.Order{}, err
			}
			return fixtureOrder(), nil
		}).Times(1)
	f.prefs.EXPECT().Committed(gomock.Any(), "c-1").Return(domain.DefaultPreferences(), nil).Times(1)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.Open(first, "o-1")
		firstErr <- err
	}()
	<-started

	second := make(chan *Session, 1)
	go func() {
		s, err := r.Open(context.Background(), "o-1")
		assert.NoError(t, err)
		second <- s
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)
	close(release)

	s := <-second
	require.NotNil(t, s)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_RefreshAwaitingApproval(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.deps)

	f.gw.EXPECT().GetOrder(gomock.Any(), "idle").Return(func() domain.Order {
		o := fixtureOrder()
		o.ID = "idle"
		return o
	}(), nil)
	f.gw.EXPECT().GetOrder(gomock.Any(), "waiting").Return(pendingApprovalOrder("waiting"), nil)
	f.gw.EXPECT().GetOrder(gomock.Any(), "broken").Return(pendingApprovalOrder("broken"), nil)
	f.prefs.EXPECT().Committed(gomock.Any(), "c-1").Return(domain.DefaultPreferences(), nil).Times(3)

	for _, id := range []string{"idle", "waiting", "broken"} {
		_, err := r.Open(context.Background(), id)
		require.NoError(t, err)
	}

	approved := pendingApprovalOrder("waiting")
	approved.Items[0].WeightInfo.VarianceApproved = domain.ApprovalApproved
	approved.Items[0].UpdatedAt = t0.Add(time.Hour)
	boom := errors.New("502")
	f.gw.EXPECT().GetOrder(gomock.Any(), "waiting").Return(approved, nil)
	f.gw.EXPECT().GetOrder(gomock.Any(), "broken").Return(domain.Order{}, boom)

	n, err := r.RefreshAwaitingApproval(context.Background())
	require.Equal(t, 1, n)
	require.ErrorIs(t, err, boom)

	s, _ := r.Get("waiting")
	require.Empty(t, s.Snapshot().Progress.AwaitingApproval)

	// nothing is waiting any more except the broken one
	f.gw.EXPECT().GetOrder(gomock.Any(), "broken").Return(approvedCopy("broken"), nil)
	n, err = r.RefreshAwaitingApproval(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = r.RefreshAwaitingApproval(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	r.CloseAll()
	require.Zero(t, r.Len())
}

func approvedCopy(id string) domain.Order {
	o := pendingApprovalOrder(id)
	o.Items[0].WeightInfo.NeedsApproval = false
	return o
}
