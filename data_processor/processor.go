package data_processor

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/money_format"
	"github.com/hssqz/dragon-tiger/player_registry"
)

// Processor 数据处理器，把tushare原始行清洗成龙虎榜快照。
// 金额从元转为万元/亿元展示格式，百分比补%，同股多原因记录合并。
type Processor struct {
	registry *player_registry.Registry
}

func NewProcessor(registry *player_registry.Registry) *Processor {
	return &Processor{registry: registry}
}

// BuildSnapshot 处理单个交易日的完整数据
func (p *Processor) BuildSnapshot(tradeDate string, topList []model.TopListRow, topData []model.TopDataRow) model.Snapshot {
	snap := model.Snapshot{
		Meta: model.Meta{
			TradeDate:        tradeDate,
			TradeDateDisplay: money_format.FormatDateDisplay(tradeDate),
			ProcessingTime:   time.Now().Format(time.RFC3339),
			DataQuality:      "good",
		},
	}

	// 同一只股票可因多个上榜原因出现多行，按代码归组后合并
	order := []string{}
	grouped := map[string][]model.TopListRow{}
	bondCount := 0
	for _, row := range topList {
		if _, ok := grouped[row.TsCode]; !ok {
			order = append(order, row.TsCode)
			if IsConvertibleBond(row.TsCode) {
				bondCount++
			}
		}
		grouped[row.TsCode] = append(grouped[row.TsCode], row)
	}
	if bondCount > 0 {
		common.Log.Debugf("快照包含%d只可转债", bondCount)
	}

	for _, tsCode := range order {
		records := grouped[tsCode]
		first := records[0]
		snap.Stocks = append(snap.Stocks, model.Stock{
			TsCode:    tsCode,
			Name:      first.Name,
			TradeDate: first.TradeDate,
			BasicInfo: mergeStockRecords(records),
			SeatData:  p.processSeatData(tsCode, topData),
		})
	}

	snap.Meta.StockCount = len(snap.Stocks)
	common.Log.Infof("数据处理完成，包含%d只股票", snap.Meta.StockCount)
	return snap
}

// mergeStockRecords 合并同一只股票的多个上榜记录。
// 数值字段取最大值（代表当日最大交易情况），上榜原因去重保留全部。
func mergeStockRecords(records []model.TopListRow) model.BasicInfo {
	first := records[0]

	maxOf := func(pick func(model.TopListRow) float64) float64 {
		m := pick(records[0])
		for _, r := range records[1:] {
			if v := pick(r); v > m {
				m = v
			}
		}
		return m
	}

	var reasons []string
	seen := map[string]bool{}
	for _, r := range records {
		reason := strings.TrimSpace(r.Reason)
		if reason == "" || seen[reason] {
			continue
		}
		seen[reason] = true
		reasons = append(reasons, reason)
	}

	return model.BasicInfo{
		Close:            money_format.FormatPrice(first.Close),
		PctChange:        money_format.FormatPercentage(first.PctChange),
		TurnoverRate:     money_format.FormatPercentage(maxOf(func(r model.TopListRow) float64 { return r.TurnoverRate })),
		Amount:           money_format.FormatAmount(maxOf(func(r model.TopListRow) float64 { return r.Amount })),
		LSell:            money_format.FormatAmount(maxOf(func(r model.TopListRow) float64 { return r.LSell })),
		LBuy:             money_format.FormatAmount(maxOf(func(r model.TopListRow) float64 { return r.LBuy })),
		LAmount:          money_format.FormatAmount(maxOf(func(r model.TopListRow) float64 { return r.LAmount })),
		NetAmount:        money_format.FormatAmount(maxOf(func(r model.TopListRow) float64 { return r.NetAmount })),
		NetRate:          money_format.FormatPercentage(maxOf(func(r model.TopListRow) float64 { return r.NetRate })),
		AmountRate:       money_format.FormatPercentage(maxOf(func(r model.TopListRow) float64 { return r.AmountRate })),
		FloatValues:      money_format.FormatAmount(first.FloatValues),
		Reasons:          reasons,
		TradeDateDisplay: money_format.FormatDateDisplay(first.TradeDate),
	}
}

// processSeatData 处理席位明细：去重、格式化、按净买入方向初步分侧。
// 这里的分侧只是抽取层的初始行集，事实层会重新判定。
func (p *Processor) processSeatData(tsCode string, topData []model.TopDataRow) model.SeatData {
	var rows []model.TopDataRow
	for _, row := range topData {
		if row.TsCode == tsCode {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return model.SeatData{
			BuySeats:  []model.SeatRecord{},
			SellSeats: []model.SeatRecord{},
			BuyTotal:  "0.00万元",
			SellTotal: "0.00万元",
		}
	}

	deduped := dedupSeatRows(rows)
	common.Log.Debugf("股票%s: 原始席位记录%d条，去重后%d条", tsCode, len(rows), len(deduped))

	// 先按净买入降序，再格式化
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].NetBuy > deduped[j].NetBuy })

	seatData := model.SeatData{
		BuySeats:  []model.SeatRecord{},
		SellSeats: []model.SeatRecord{},
	}
	buyTotal, sellTotal := 0.0, 0.0

	for _, row := range deduped {
		record := model.SeatRecord{
			SeatName:   row.Exalter,
			BuyAmount:  money_format.FormatAmount(math.Max(0, row.Buy)),
			SellAmount: money_format.FormatAmount(math.Max(0, row.Sell)),
			NetAmount:  money_format.FormatAmount(row.NetBuy),
			BuyRate:    money_format.FormatPercentage(math.Max(0, row.BuyRate)),
			SellRate:   money_format.FormatPercentage(math.Max(0, row.SellRate)),
			PlayerInfo: p.registry.Classify(row.Exalter),
		}
		if row.NetBuy > 0 {
			seatData.BuySeats = append(seatData.BuySeats, record)
		} else {
			seatData.SellSeats = append(seatData.SellSeats, record)
		}
		buyTotal += math.Max(0, row.Buy)
		sellTotal += math.Max(0, row.Sell)
	}

	seatData.BuyTotal = money_format.FormatAmount(buyTotal)
	seatData.SellTotal = money_format.FormatAmount(sellTotal)
	return seatData
}

// dedupSeatRows 去除因多个上榜原因导致的完全重复席位行
func dedupSeatRows(rows []model.TopDataRow) []model.TopDataRow {
	type rowKey struct {
		exalter                              string
		buy, sell, netBuy, buyRate, sellRate float64
	}
	seen := map[rowKey]bool{}
	var deduped []model.TopDataRow
	for _, row := range rows {
		key := rowKey{row.Exalter, row.Buy, row.Sell, row.NetBuy, row.BuyRate, row.SellRate}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, row)
	}
	return deduped
}

// IsConvertibleBond 判断是否为可转债（代码以1开头的6位数）
func IsConvertibleBond(tsCode string) bool {
	codePart, _, _ := strings.Cut(tsCode, ".")
	return len(codePart) == 6 && strings.HasPrefix(codePart, "1")
}
