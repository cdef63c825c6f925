package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/catalogs/product"
)

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	expectedCols := []string{
		"id", "deletion_mark", "version",
		"code", "name",
		"category", "unit_of_measure", "sale_price",
		"current_stock", "current_unit_cost",
	}

	assert.Len(t, cols, len(expectedCols))
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_Account(t *testing.T) {
	a := account.New("1141", "Inventarios", account.KindAsset)
	a.Version = 3

	m := StructToMap(a)

	assert.Equal(t, "1141", m["code"])
	assert.Equal(t, "Inventarios", m["name"])
	assert.Equal(t, account.KindAsset, m["kind"])
	assert.Equal(t, 3, m["version"])
	assert.Contains(t, m, "id")
}

func TestStructToMap_CachedSecondCall(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")

	first := StructToMap(p)
	second := StructToMap(p)

	assert.Len(t, second, len(first))
	for k := range first {
		assert.Contains(t, second, k)
	}
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
