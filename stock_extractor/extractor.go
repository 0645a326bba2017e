package stock_extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/output_formatter"
)

// Extractor 从完整的龙虎榜快照中提取指定个股的数据
type Extractor struct {
	snap       model.Snapshot
	sourceFile string
}

func New(snap model.Snapshot, sourceFile string) *Extractor {
	return &Extractor{snap: snap, sourceFile: sourceFile}
}

// ByCode 按股票代码精确匹配（大小写不敏感）
func (e *Extractor) ByCode(tsCode string) (model.Stock, bool) {
	tsCode = strings.ToUpper(strings.TrimSpace(tsCode))
	for _, stock := range e.snap.Stocks {
		if strings.ToUpper(stock.TsCode) == tsCode {
			return stock, true
		}
	}
	return model.Stock{}, false
}

// ByName 按股票名称精确匹配
func (e *Extractor) ByName(name string) (model.Stock, bool) {
	for _, stock := range e.snap.Stocks {
		if stock.Name == name {
			return stock, true
		}
	}
	return model.Stock{}, false
}

// Search 名称或代码模糊匹配
func (e *Extractor) Search(query string) []model.Stock {
	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []model.Stock
	for _, stock := range e.snap.Stocks {
		if strings.Contains(stock.Name, query) || strings.Contains(strings.ToUpper(stock.TsCode), query) {
			matches = append(matches, stock)
		}
	}
	return matches
}

// Find 先精确后模糊；模糊命中多只时返回错误要求调用方澄清
func (e *Extractor) Find(query string) (model.Stock, error) {
	if stock, ok := e.ByName(query); ok {
		return stock, nil
	}
	if stock, ok := e.ByCode(query); ok {
		return stock, nil
	}
	matches := e.Search(query)
	switch len(matches) {
	case 0:
		return model.Stock{}, fmt.Errorf("未找到股票: %s", query)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%s(%s)", m.Name, m.TsCode))
		}
		return model.Stock{}, fmt.Errorf("找到多个匹配: %s", strings.Join(names, ", "))
	}
}

// SaveStock 把单只股票保存为独立的单股快照文件
func (e *Extractor) SaveStock(stock model.Stock, outputDir string) (string, error) {
	extracted := model.Snapshot{
		Meta: model.Meta{
			TradeDate:        e.snap.Meta.TradeDate,
			TradeDateDisplay: e.snap.Meta.TradeDateDisplay,
			ProcessingTime:   time.Now().Format(time.RFC3339),
			StockCount:       1,
			DataQuality:      "extracted_single_stock",
		},
		Stocks: []model.Stock{stock},
	}

	filename := fmt.Sprintf("%s_%s_%s_extracted.json",
		stock.TradeDate,
		time.Now().Format("150405"),
		strings.ReplaceAll(stock.TsCode, ".", "_"))
	path := filepath.Join(outputDir, filename)

	if err := output_formatter.SaveJSON(path, extracted); err != nil {
		return "", err
	}
	common.Log.Infof("已从%s提取 %s 的数据到: %s", e.sourceFile, stock.Name, path)
	return path, nil
}
