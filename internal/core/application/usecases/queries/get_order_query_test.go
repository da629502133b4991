package queries_test

import (
	"testing"

	"bondi/internal/core/application/usecases/queries"
	"bondi/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewID()

	query, err := queries.NewGetOrderQuery(id)

	require.NoError(t, err)
	assert.Equal(t, id, query.OrderID())
	require.NoError(t, query.Validate())
}

func TestNewGetOrderQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.ID{})

	require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
}

func TestGetOrderQuery_ZeroValue(t *testing.T) {
	var query queries.GetOrderQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
