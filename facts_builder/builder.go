package facts_builder

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/money_format"
	"github.com/hssqz/dragon-tiger/player_registry"
)

// ErrNoStocks 快照中没有任何股票，下游无法继续
var ErrNoStocks = errors.New("快照中未找到股票数据")

// Builder 龙虎榜资金博弈构建器 - 事实层处理。
// 名人录和画像表注入一次后只读，Build* 方法无共享可变状态，
// 可被批处理编排层并发调用（每股一次）。
type Builder struct {
	registry *player_registry.Registry
}

func NewBuilder(registry *player_registry.Registry) *Builder {
	return &Builder{registry: registry}
}

// classifiedSeat 去重分类后的中间行，netWan 为解析出的净额（万元，带符号）
type classifiedSeat struct {
	record  model.SeatRecord
	netWan  float64
	profile model.PlayerProfile
}

// BuildStructuredFacts 从快照构建结构化事实。
// 沿用单股文件约定：容器内有多只股票时只处理第一只，
// 批量场景由调用方按股票逐一调用 BuildForStock。
func (b *Builder) BuildStructuredFacts(snap model.Snapshot) (model.StructuredFacts, error) {
	if len(snap.Stocks) == 0 {
		return model.StructuredFacts{}, ErrNoStocks
	}
	return b.BuildForStock(snap.Stocks[0]), nil
}

// BuildForStock 将一只股票的原始记录转换为结构化事实
func (b *Builder) BuildForStock(stock model.Stock) model.StructuredFacts {
	common.Log.Infof("处理股票: %s (%s)", stock.Name, stock.TsCode)

	longSide, shortSide := b.processSeats(stock.SeatData)
	battle := CalcBattleMetrics(longSide.TotalAmountWan, shortSide.TotalAmountWan, stock.BasicInfo.AmountRate)

	common.Log.Infof("多方资金: %.1f万元, 空方资金: %.1f万元, 净优势: %.1f万元, 获胜方: %s",
		longSide.TotalAmountWan, shortSide.TotalAmountWan, battle.NetAdvantageWan, battle.Winner)

	return model.StructuredFacts{
		TsCode:         stock.TsCode,
		Name:           stock.Name,
		RawBasicInfo:   stock.BasicInfo,
		LongSideFacts:  longSide,
		ShortSideFacts: shortSide,
		BattleFacts:    battle,
	}
}

// processSeats 合并买卖两侧的原始行，去重、分类，再按净额符号重新分方。
// 去重必须在分方之前跨全部行进行：同一席位的重复记录可能同时落在
// 上游给出的两侧行集中。上游的买卖标签不作为分方依据。
func (b *Builder) processSeats(seatData model.SeatData) (model.SideFacts, model.SideFacts) {
	merged := make([]model.SeatRecord, 0, len(seatData.BuySeats)+len(seatData.SellSeats))
	merged = append(merged, seatData.BuySeats...)
	merged = append(merged, seatData.SellSeats...)

	deduped := dedupSeats(merged)
	common.Log.Debugf("席位记录: 原始%d条, 去重后%d条", len(merged), len(deduped))

	var buyRows, sellRows []classifiedSeat
	for _, rec := range deduped {
		seat := classifiedSeat{
			record:  rec,
			netWan:  money_format.ParseAmountToWan(rec.NetAmount),
			profile: b.registry.Classify(rec.SeatName),
		}
		// 净额恰好为0的席位划入空方（分方条件为严格大于0）
		if seat.netWan > 0 {
			buyRows = append(buyRows, seat)
		} else {
			sellRows = append(sellRows, seat)
		}
	}

	// 两侧都按"流量最大优先"排序：多方净额降序，空方净额升序
	sort.SliceStable(buyRows, func(i, j int) bool { return buyRows[i].netWan > buyRows[j].netWan })
	sort.SliceStable(sellRows, func(i, j int) bool { return sellRows[i].netWan < sellRows[j].netWan })

	return buildSideFacts(buyRows), buildSideFacts(sellRows)
}

// dedupSeats 去除因多个上榜原因导致的完全重复记录。
// 按(席位名称, 买入, 卖出, 净额, 买入比例, 卖出比例)元组去重，
// 保留名称相同但金额不同的席位，输入顺序不变。
func dedupSeats(records []model.SeatRecord) []model.SeatRecord {
	type seatKey struct {
		name, buy, sell, net, buyRate, sellRate string
	}
	seen := make(map[seatKey]bool, len(records))
	deduped := make([]model.SeatRecord, 0, len(records))
	for _, rec := range records {
		key := seatKey{rec.SeatName, rec.BuyAmount, rec.SellAmount, rec.NetAmount, rec.BuyRate, rec.SellRate}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, rec)
	}
	return deduped
}

// buildSideFacts 汇总单个阵营：集中度、类型贡献、知名游资计数。
// 金额解析失败的席位按0计入数值汇总，但仍保留在玩家列表中。
func buildSideFacts(rows []classifiedSeat) model.SideFacts {
	players := make([]model.ProcessedPlayer, 0, len(rows))
	amounts := make([]float64, 0, len(rows))
	contribution := map[string]float64{}
	famousCount := 0
	totalWan := 0.0

	for _, row := range rows {
		absWan := math.Abs(row.netWan)
		amounts = append(amounts, absWan)
		totalWan += absWan

		if row.profile.Type == player_registry.TypeFamous {
			famousCount++
		}
		contribution[row.profile.Type+"_net_wan"] += absWan

		// 净占比无直接输入字段，沿用粗略估算占位
		netRate := "0.00%"
		if absWan > 0 {
			netRate = fmt.Sprintf("%.2f%%", absWan/10000)
		}

		players = append(players, model.ProcessedPlayer{
			SeatName:    row.record.SeatName,
			NetAmount:   row.record.NetAmount,
			Buy:         row.record.BuyAmount,
			Sell:        row.record.SellAmount,
			BuyRate:     row.record.BuyRate,
			SellRate:    row.record.SellRate,
			NetRate:     netRate,
			Type:        row.profile.Type,
			Name:        row.profile.Name,
			Description: row.profile.Description,
			Style:       row.profile.Style,
		})
	}

	for key, wan := range contribution {
		contribution[key] = money_format.Round1(wan)
	}

	return model.SideFacts{
		TotalAmountWan:       money_format.Round1(totalWan),
		PlayerCount:          len(rows),
		FamousPlayerCount:    famousCount,
		ConcentrationMetrics: CalcConcentrationMetrics(amounts),
		ContributionByType:   contribution,
		Players:              players,
	}
}
