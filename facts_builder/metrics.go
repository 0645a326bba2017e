package facts_builder

import (
	"sort"

	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/money_format"
)

// 博弈获胜方标签
const (
	WinnerLong  = "多方"
	WinnerShort = "空方"
	WinnerTie   = "平局"
)

// CalcConcentrationMetrics 计算资金集中度指标。
// 入参为单个阵营的席位净额列表（万元，绝对值），按降序取前N大占比，
// 保留一位小数。空列表或总额为0时全部返回0。
func CalcConcentrationMetrics(amounts []float64) model.ConcentrationMetrics {
	if len(amounts) == 0 {
		return model.ConcentrationMetrics{}
	}

	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	total := 0.0
	for _, a := range sorted {
		total += a
	}
	if total == 0 {
		return model.ConcentrationMetrics{}
	}

	topN := func(n int) float64 {
		if n > len(sorted) {
			n = len(sorted)
		}
		sum := 0.0
		for _, a := range sorted[:n] {
			sum += a
		}
		return money_format.Round1(sum / total * 100)
	}

	return model.ConcentrationMetrics{
		Top1Pct: topN(1),
		Top2Pct: topN(2),
		Top5Pct: topN(5),
	}
}

// CalcBattleMetrics 计算多空博弈指标。
// winner 仅在净优势恰好为0时判平局；净优势百分比相对双方总和，
// 总和为0时取0。龙虎榜成交占比从 basic_info.amount_rate 解析。
func CalcBattleMetrics(longTotalWan, shortTotalWan float64, amountRate string) model.BattleFacts {
	netAdvantage := longTotalWan - shortTotalWan

	winner := WinnerTie
	if netAdvantage > 0 {
		winner = WinnerLong
	} else if netAdvantage < 0 {
		winner = WinnerShort
	}

	combined := longTotalWan + shortTotalWan
	netAdvantagePct := 0.0
	if combined > 0 {
		abs := netAdvantage
		if abs < 0 {
			abs = -abs
		}
		netAdvantagePct = abs / combined * 100
	}

	return model.BattleFacts{
		NetAdvantageWan:   money_format.Round1(netAdvantage),
		Winner:            winner,
		NetAdvantagePct:   money_format.Round1(netAdvantagePct),
		OnListTurnoverPct: money_format.Round1(money_format.ParsePercentage(amountRate)),
	}
}
