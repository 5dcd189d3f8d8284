package template_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptext/shoptext/internal/template"
)

func newTestStore(t *testing.T) *template.Store {
	t.Helper()
	store, err := template.NewStore(filepath.Join(t.TempDir(), "templates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreGetReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "ada.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, template.DefaultOrderConfirmation, got.OrderConfirmation)
	assert.Equal(t, template.DefaultFulfillment, got.Fulfillment)
}

func TestStorePutOverwritesWholesale(t *testing.T) {
	store := newTestStore(t)
	shop := "ada.myshopify.com"

	first := template.ShopTemplates{
		OrderConfirmation: "Order {{order_number}} confirmed",
		Fulfillment:       "Order {{order_number}} shipped",
	}
	require.NoError(t, store.Put(context.Background(), shop, first))

	got, err := store.Get(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := template.ShopTemplates{
		OrderConfirmation: "Thanks {{customer_name}}!",
		Fulfillment:       "On its way, {{customer_name}}",
	}
	require.NoError(t, store.Put(context.Background(), shop, second))

	got, err = store.Get(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStoreShopsAreIsolated(t *testing.T) {
	store := newTestStore(t)

	custom := template.ShopTemplates{OrderConfirmation: "custom", Fulfillment: "custom"}
	require.NoError(t, store.Put(context.Background(), "a.myshopify.com", custom))

	got, err := store.Get(context.Background(), "b.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, template.Defaults(), got)
}

func TestStoreEmptyFieldFallsBack(t *testing.T) {
	store := newTestStore(t)
	shop := "ada.myshopify.com"

	require.NoError(t, store.Put(context.Background(), shop, template.ShopTemplates{
		OrderConfirmation: "custom confirmation",
		Fulfillment:       "",
	}))

	got, err := store.Get(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, "custom confirmation", got.OrderConfirmation)
	assert.Equal(t, template.DefaultFulfillment, got.Fulfillment)
}

func TestStoreDeleteRevertsToDefaults(t *testing.T) {
	store := newTestStore(t)
	shop := "ada.myshopify.com"

	require.NoError(t, store.Put(context.Background(), shop, template.ShopTemplates{
		OrderConfirmation: "custom", Fulfillment: "custom",
	}))
	require.NoError(t, store.Delete(context.Background(), shop))

	got, err := store.Get(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, template.Defaults(), got)

	// Deleting a shop that never stored anything is a no-op.
	require.NoError(t, store.Delete(context.Background(), "nobody.myshopify.com"))
}

func TestStoreImplementsSource(t *testing.T) {
	var _ template.Source = (*template.Store)(nil)
}
