package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/adapter"
	"github.com/mmcdole/storefront/internal/adapter/source/dummyjson"
)

func Test_NewClient(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, err := NewClient("", dummyjson.DefaultOptions(), nil)
		assert.Error(t, err)
	})

	t.Run("from config", func(t *testing.T) {
		client, err := NewClientFromConfig(adapter.DefaultConfig(), adapter.NullLogger())
		require.NoError(t, err)
		assert.IsType(t, &dummyjson.Client{}, client)
	})
}
