package fetcher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssqz/dragon-tiger/model"
)

func mockTushare(t *testing.T, wantAPI string, fields []string, items [][]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.TushareRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, wantAPI, req.APIName)
		assert.Equal(t, "test-token", req.Token)

		resp := model.TushareResponse{Code: 0}
		resp.Data.Fields = fields
		resp.Data.Items = items
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(serverURL string) *Client {
	c := NewClient("test-token")
	c.BaseURL = serverURL
	return c
}

func TestFetchTopList(t *testing.T) {
	server := mockTushare(t, "top_list",
		[]string{"ts_code", "trade_date", "name", "close", "pct_change", "amount", "amount_rate", "reason"},
		[][]any{
			{"000001.SZ", "20260827", "平安银行", 12.34, 10.02, 5.6e8, 4.46, "日涨幅偏离值达7%"},
			{"600519.SH", "20260827", "贵州茅台", 1800.0, -5.1, 9.9e8, 8.0, nil},
		})
	defer server.Close()

	rows, err := testClient(server.URL).FetchTopList("20260827")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "000001.SZ", rows[0].TsCode)
	assert.Equal(t, "平安银行", rows[0].Name)
	assert.Equal(t, 12.34, rows[0].Close)
	assert.Equal(t, 4.46, rows[0].AmountRate)
	// 缺失字段与null安全降级
	assert.Empty(t, rows[1].Reason)
	assert.Zero(t, rows[1].NetAmount)
}

func TestFetchTopData(t *testing.T) {
	server := mockTushare(t, "top_data",
		[]string{"ts_code", "exalter", "buy", "sell", "net_buy", "buy_rate"},
		[][]any{{"000001.SZ", "国泰君安上海江苏路", 8000000.0, 0.0, 8000000.0, 2.5}})
	defer server.Close()

	rows, err := testClient(server.URL).FetchTopData("20260827")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "国泰君安上海江苏路", rows[0].Exalter)
	assert.Equal(t, 8000000.0, rows[0].Buy)
	assert.Equal(t, 2.5, rows[0].BuyRate)
}

func TestFetchHMList(t *testing.T) {
	server := mockTushare(t, "hm_list",
		[]string{"name", "desc", "orgs"},
		[][]any{
			{"章盟主", "顶级游资", "['国泰君安上海江苏路']"},
			{"坏条目", "orgs不合法", "not a list"},
		})
	defer server.Close()

	entries, err := testClient(server.URL).FetchHMList()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "章盟主", entries[0].Name)
	assert.Equal(t, []string{"国泰君安上海江苏路"}, entries[0].Orgs)
}

func TestFetchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.TushareResponse{Code: 2002, Msg: "token无效"})
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchTopList("20260827")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token无效")
}
