package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/player_registry"
)

const TushareAPIURL = "http://api.tushare.pro"

// Client tushare数据客户端，负责拉取龙虎榜相关的原始行
type Client struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		BaseURL:    TushareAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// call 调用tushare接口并解码fields/items列式响应
func (c *Client) call(apiName string, params map[string]string) (*model.TushareResponse, error) {
	reqBody := model.TushareRequest{
		APIName: apiName,
		Token:   c.Token,
		Params:  params,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Post(c.BaseURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("请求%s失败: %w", apiName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取%s响应失败: %w", apiName, err)
	}

	var tsResp model.TushareResponse
	if err := json.Unmarshal(body, &tsResp); err != nil {
		return nil, fmt.Errorf("解析%s响应失败: %w", apiName, err)
	}
	if tsResp.Code != 0 {
		return nil, fmt.Errorf("%s接口返回错误: %s", apiName, tsResp.Msg)
	}
	return &tsResp, nil
}

// columns fields名 -> 列下标
func columns(resp *model.TushareResponse) map[string]int {
	idx := make(map[string]int, len(resp.Data.Fields))
	for i, f := range resp.Data.Fields {
		idx[f] = i
	}
	return idx
}

func cellString(item []any, idx map[string]int, field string) string {
	i, ok := idx[field]
	if !ok || i >= len(item) || item[i] == nil {
		return ""
	}
	s, _ := item[i].(string)
	return s
}

func cellFloat(item []any, idx map[string]int, field string) float64 {
	i, ok := idx[field]
	if !ok || i >= len(item) || item[i] == nil {
		return 0
	}
	f, _ := item[i].(float64)
	return f
}

// FetchTopList 获取龙虎榜每日列表（top_list）
func (c *Client) FetchTopList(tradeDate string) ([]model.TopListRow, error) {
	common.Log.Infof("正在获取%s的龙虎榜列表数据...", tradeDate)
	resp, err := c.call("top_list", map[string]string{"trade_date": tradeDate})
	if err != nil {
		return nil, err
	}

	idx := columns(resp)
	rows := make([]model.TopListRow, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		rows = append(rows, model.TopListRow{
			TsCode:       cellString(item, idx, "ts_code"),
			TradeDate:    cellString(item, idx, "trade_date"),
			Name:         cellString(item, idx, "name"),
			Close:        cellFloat(item, idx, "close"),
			PctChange:    cellFloat(item, idx, "pct_change"),
			TurnoverRate: cellFloat(item, idx, "turnover_rate"),
			Amount:       cellFloat(item, idx, "amount"),
			LSell:        cellFloat(item, idx, "l_sell"),
			LBuy:         cellFloat(item, idx, "l_buy"),
			LAmount:      cellFloat(item, idx, "l_amount"),
			NetAmount:    cellFloat(item, idx, "net_amount"),
			NetRate:      cellFloat(item, idx, "net_rate"),
			AmountRate:   cellFloat(item, idx, "amount_rate"),
			FloatValues:  cellFloat(item, idx, "float_values"),
			Reason:       cellString(item, idx, "reason"),
		})
	}
	common.Log.Infof("成功获取%d条龙虎榜数据", len(rows))
	return rows, nil
}

// FetchTopData 获取龙虎榜席位明细（top_data）
func (c *Client) FetchTopData(tradeDate string) ([]model.TopDataRow, error) {
	common.Log.Infof("正在获取%s的龙虎榜席位明细...", tradeDate)
	resp, err := c.call("top_data", map[string]string{"trade_date": tradeDate})
	if err != nil {
		return nil, err
	}

	idx := columns(resp)
	rows := make([]model.TopDataRow, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		rows = append(rows, model.TopDataRow{
			TsCode:    cellString(item, idx, "ts_code"),
			TradeDate: cellString(item, idx, "trade_date"),
			Exalter:   cellString(item, idx, "exalter"),
			Buy:       cellFloat(item, idx, "buy"),
			BuyRate:   cellFloat(item, idx, "buy_rate"),
			Sell:      cellFloat(item, idx, "sell"),
			SellRate:  cellFloat(item, idx, "sell_rate"),
			NetBuy:    cellFloat(item, idx, "net_buy"),
			Reason:    cellString(item, idx, "reason"),
		})
	}
	common.Log.Infof("成功获取%d条席位明细", len(rows))
	return rows, nil
}

// FetchHMList 获取游资名人录（hm_list）。
// orgs列是类JSON字符串，解析失败的条目跳过并记录，不中断加载。
func (c *Client) FetchHMList() ([]model.HMEntry, error) {
	common.Log.Info("正在获取游资名人录...")
	resp, err := c.call("hm_list", nil)
	if err != nil {
		return nil, err
	}

	idx := columns(resp)
	entries := make([]model.HMEntry, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		name := cellString(item, idx, "name")
		orgs, err := player_registry.ParseOrgs(cellString(item, idx, "orgs"))
		if err != nil {
			common.Log.Debugf("名人录条目 %q 的orgs解析失败: %v，跳过", name, err)
			continue
		}
		entries = append(entries, model.HMEntry{
			Name: name,
			Desc: cellString(item, idx, "desc"),
			Orgs: orgs,
		})
	}
	common.Log.Infof("成功获取%d个名人录条目", len(entries))
	return entries, nil
}
