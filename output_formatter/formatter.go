package output_formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/facts_builder"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/player_registry"
)

// --- Color Constants ---
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
)

// SaveJSON 以UTF-8写出JSON：两空格缩进，非ASCII字符保持原样不转义
func SaveJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("写入%s失败: %w", path, err)
	}
	common.Log.Infof("已保存: %s", path)
	return nil
}

// WriteMarkdown 写出Markdown报告
func WriteMarkdown(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("写入%s失败: %w", path, err)
	}
	common.Log.Infof("已保存: %s", path)
	return nil
}

// OutputPaths 一只股票各阶段的输出文件路径
type OutputPaths struct {
	StructuredFacts string
	Insights        string
	AnalysisReport  string
}

// GenerateFileNames 生成各阶段输出文件名：{时间戳}_{股票名}_{代码}
func GenerateFileNames(outputDir, stockName, tsCode string) OutputPaths {
	timestamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("%s_%s_%s", timestamp, cleanFileName(stockName), strings.ReplaceAll(tsCode, ".", "_"))

	return OutputPaths{
		StructuredFacts: filepath.Join(outputDir, "processed", base+"_structured_facts.json"),
		Insights:        filepath.Join(outputDir, "processed", base+"_insights.json"),
		AnalysisReport:  filepath.Join(outputDir, "posts", base+"_analysis_report.md"),
	}
}

// cleanFileName 清理文件名，只保留字母数字与 ._-
func cleanFileName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// PrintBattleTable 控制台打印多空博弈战报
func PrintBattleTable(facts model.StructuredFacts) {
	battle := facts.BattleFacts

	winnerStr := battle.Winner
	switch battle.Winner {
	case facts_builder.WinnerLong:
		winnerStr = ColorRed + ColorBold + battle.Winner + ColorReset
	case facts_builder.WinnerShort:
		winnerStr = ColorGreen + ColorBold + battle.Winner + ColorReset
	}

	fmt.Printf("\n⚔️  %s (%s) 资金博弈战报\n", facts.Name, facts.TsCode)
	fmt.Printf("   多方: %.1f万元 (%d席)  空方: %.1f万元 (%d席)\n",
		facts.LongSideFacts.TotalAmountWan, facts.LongSideFacts.PlayerCount,
		facts.ShortSideFacts.TotalAmountWan, facts.ShortSideFacts.PlayerCount)
	fmt.Printf("   净优势: %.1f万元 | 获胜方: %s | 榜单成交占比: %.1f%%\n\n",
		battle.NetAdvantageWan, winnerStr, battle.OnListTurnoverPct)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "方向\t席位\t玩家\t类型\t净额\t买入\t卖出")
	fmt.Fprintln(w, "----\t----\t----\t----\t----\t----\t----")
	printSideRows(w, "买入", facts.LongSideFacts.Players)
	printSideRows(w, "卖出", facts.ShortSideFacts.Players)
	w.Flush()
}

func printSideRows(w *tabwriter.Writer, side string, players []model.ProcessedPlayer) {
	for i, p := range players {
		if i >= 5 {
			break
		}
		name := p.Name
		if p.Type == player_registry.TypeFamous {
			name = ColorPurple + name + ColorReset
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			side, truncate(p.SeatName, 18), name, p.Type, p.NetAmount, p.Buy, p.Sell)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
