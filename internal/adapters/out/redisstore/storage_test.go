package redisstore_test

import (
	"testing"

	"bondi/internal/adapters/out/redisstore"
	"bondi/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorage_Validation(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := redisstore.NewStorage(nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = redisstore.NewStorage(client, redisstore.WithPrefix(""))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = redisstore.NewStorage(client, redisstore.WithTTL(-1))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStorage_Key(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	storage, err := redisstore.NewStorage(client)
	require.NoError(t, err)
	assert.Equal(t, "bondi:snapshot:order-1", storage.Key("order-1"))

	scoped, err := redisstore.NewStorage(client, redisstore.WithPrefix("tenant-a"))
	require.NoError(t, err)
	assert.Equal(t, "tenant-a:order-1", scoped.Key("order-1"))
}
