package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"bondi/internal/adapters/out/memory"
	"bondi/internal/core/application/repository"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/core/domain/model/order"
	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, id string, volume int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustIDFromString(id), volume)
	require.NoError(t, err)
	return o
}

func TestStorage_StoreRestore(t *testing.T) {
	ctx := t.Context()
	storage := memory.NewStorage()
	o := newOrder(t, "order-1", 5)

	require.NoError(t, storage.Store(ctx, o))
	require.NoError(t, o.ChangeVolume(7))
	require.NoError(t, storage.Restore(ctx, o))

	assert.Equal(t, 5, o.Volume())
	assert.Equal(t, 0, o.Version())
}

func TestStorage_StoreIsIdempotent(t *testing.T) {
	ctx := t.Context()
	storage := memory.NewStorage()
	o := newOrder(t, "order-1", 5)

	require.NoError(t, storage.Store(ctx, o))
	require.NoError(t, storage.Store(ctx, o))

	assert.Equal(t, 1, storage.Len())
}

func TestStorage_RestoreUnknown(t *testing.T) {
	storage := memory.NewStorage()
	o := newOrder(t, "order-1", 5)

	err := storage.Restore(t.Context(), o)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, 5, o.Volume())
}

func TestStorage_ConcurrentUnitsOfWork(t *testing.T) {
	storage := memory.NewStorage()
	factory := repository.NewFactory(storage, nil)

	var wg sync.WaitGroup
	errCh := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := order.NewOrder(kernel.MustIDFromString(fmt.Sprintf("order-%d", i)), i+1)
			if err != nil {
				errCh <- err
				return
			}
			repo := factory.Create()
			if err := repo.Add(o); err != nil {
				errCh <- err
				return
			}
			errCh <- repo.Commit(t.Context())
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	assert.Equal(t, 20, storage.Len())
}

// Acceptance scenario from the unit of work contract, run against a real adapter.
func TestStorage_UnitOfWorkScenario(t *testing.T) {
	ctx := t.Context()
	repo := repository.New(memory.NewStorage(), nil)
	o := newOrder(t, "order-1", 5)

	require.NoError(t, repo.Add(o))
	require.NoError(t, repo.Commit(ctx))
	require.NoError(t, o.ChangeVolume(7))
	require.NoError(t, repo.Rollback(ctx))

	assert.Equal(t, 5, o.Volume())
}
