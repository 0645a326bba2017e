package stock_extractor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssqz/dragon-tiger/model"
)

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Meta: model.Meta{TradeDate: "20260827", TradeDateDisplay: "2026-08-27", StockCount: 3},
		Stocks: []model.Stock{
			{TsCode: "000001.SZ", Name: "平安银行", TradeDate: "20260827"},
			{TsCode: "600519.SH", Name: "贵州茅台", TradeDate: "20260827"},
			{TsCode: "600518.SH", Name: "康美药业", TradeDate: "20260827"},
		},
	}
}

func TestByCode(t *testing.T) {
	e := New(testSnapshot(), "test.json")

	stock, ok := e.ByCode("600519.SH")
	require.True(t, ok)
	assert.Equal(t, "贵州茅台", stock.Name)

	// 大小写不敏感
	stock, ok = e.ByCode("600519.sh")
	require.True(t, ok)
	assert.Equal(t, "贵州茅台", stock.Name)

	_, ok = e.ByCode("999999.SZ")
	assert.False(t, ok)
}

func TestByName(t *testing.T) {
	e := New(testSnapshot(), "test.json")

	stock, ok := e.ByName("平安银行")
	require.True(t, ok)
	assert.Equal(t, "000001.SZ", stock.TsCode)

	_, ok = e.ByName("不存在")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	e := New(testSnapshot(), "test.json")

	assert.Len(t, e.Search("茅台"), 1)
	assert.Len(t, e.Search("60051"), 2)
	assert.Empty(t, e.Search("螺蛳粉"))
	assert.Empty(t, e.Search(""))
}

func TestFind(t *testing.T) {
	e := New(testSnapshot(), "test.json")

	stock, err := e.Find("贵州茅台")
	require.NoError(t, err)
	assert.Equal(t, "600519.SH", stock.TsCode)

	stock, err = e.Find("000001.SZ")
	require.NoError(t, err)
	assert.Equal(t, "平安银行", stock.Name)

	// 唯一模糊命中直接返回
	stock, err = e.Find("茅台")
	require.NoError(t, err)
	assert.Equal(t, "600519.SH", stock.TsCode)

	// 多个命中要求澄清
	_, err = e.Find("60051")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "多个匹配")

	_, err = e.Find("不存在")
	assert.Error(t, err)
}

func TestSaveStock(t *testing.T) {
	snap := testSnapshot()
	e := New(snap, "test.json")
	dir := t.TempDir()

	path, err := e.SaveStock(snap.Stocks[1], dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "贵州茅台")
	assert.Contains(t, content, `"stock_count": 1`)
	assert.Contains(t, content, "extracted_single_stock")
}
