package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/internal/store/storetest"
)

func TestWithTxCommits(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx *store.Store) error {
		return tx.Products.Create(ctx, &domain.Product{Name: "Mug", Price: 7.5, Stock: 3})
	})
	require.NoError(t, err)

	p, err := s.Products.FindByName(ctx, "Mug")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Products.Create(ctx, &domain.Product{Name: "Mug", Price: 7.5, Stock: 3}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Products.FindByName(ctx, "Mug")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPing(t *testing.T) {
	s, _ := storetest.New(t)
	assert.NoError(t, s.Ping(context.Background()))
}
