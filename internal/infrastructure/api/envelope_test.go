package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func TestDecodeList_Formas(t *testing.T) {
	t.Run("arreglo desnudo", func(t *testing.T) {
		items, err := decodeList([]byte(` [{"a":1},{"a":2}] `), "products")
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("envuelto bajo clave conocida", func(t *testing.T) {
		items, err := decodeList([]byte(`{"success": true, "products": [{"a":1}], "total_count": 1}`), "products")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("clave desconocida pero único arreglo", func(t *testing.T) {
		items, err := decodeList([]byte(`{"ok": true, "items": [{"a":1},{"a":2},{"a":3}]}`), "products")
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("sobre ambiguo con dos arreglos es error", func(t *testing.T) {
		_, err := decodeList([]byte(`{"xs": [1], "ys": [2]}`), "products")
		assert.Error(t, err)
	})

	t.Run("sin lista es error", func(t *testing.T) {
		_, err := decodeList([]byte(`{"success": true}`), "products")
		assert.Error(t, err)
	})

	t.Run("escalar es error", func(t *testing.T) {
		_, err := decodeList([]byte(`42`), "products")
		assert.Error(t, err)
	})
}

func TestDecodeEntity_Formas(t *testing.T) {
	t.Run("anidada bajo clave conocida", func(t *testing.T) {
		raw, err := decodeEntity([]byte(`{"success": true, "product": {"id": 1}}`), "product")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": 1}`, string(raw))
	})

	t.Run("desnuda", func(t *testing.T) {
		raw, err := decodeEntity([]byte(`{"id": 1, "name": "x"}`), "product")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": 1, "name": "x"}`, string(raw))
	})

	t.Run("segunda clave de preferencia", func(t *testing.T) {
		raw, err := decodeEntity([]byte(`{"data": {"total_products": 2}}`), "analytics", "data")
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_products": 2}`, string(raw))
	})

	t.Run("arreglo no es entidad", func(t *testing.T) {
		_, err := decodeEntity([]byte(`[1,2]`), "product")
		assert.Error(t, err)
	})
}

func TestWireID_NumeroYString(t *testing.T) {
	var w productWire
	require.NoError(t, jsonUnmarshal(`{"id": 123}`, &w))
	assert.Equal(t, "123", string(w.ID))

	require.NoError(t, jsonUnmarshal(`{"id": "abc"}`, &w))
	assert.Equal(t, "abc", string(w.ID))

	require.NoError(t, jsonUnmarshal(`{"id": null}`, &w))
	assert.Equal(t, "", string(w.ID))
}

func TestParseWireTime_Tolerante(t *testing.T) {
	assert.Equal(t, 2026, parseWireTime("2026-08-30T12:00:00.123456").Year(), "isoformat sin zona")
	assert.Equal(t, 2026, parseWireTime("2026-08-30T12:00:00Z").Year(), "RFC3339")
	assert.True(t, parseWireTime("no-es-fecha").IsZero(), "ilegible degrada a cero")
	assert.True(t, parseWireTime("").IsZero())
}
