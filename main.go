package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/config"
	"github.com/hssqz/dragon-tiger/data_processor"
	"github.com/hssqz/dragon-tiger/deepseek_reviewer"
	"github.com/hssqz/dragon-tiger/facts_builder"
	"github.com/hssqz/dragon-tiger/fetcher"
	"github.com/hssqz/dragon-tiger/model"
	"github.com/hssqz/dragon-tiger/output_formatter"
	"github.com/hssqz/dragon-tiger/player_registry"
	"github.com/hssqz/dragon-tiger/stock_extractor"
)

const maxConcurrentStocks = 5

func main() {
	start := time.Now()

	configPath := flag.String("config", "config.yaml", "配置文件路径")
	tradeDate := flag.String("date", "", "交易日期(YYYYMMDD)，指定后从tushare拉取数据")
	inputPath := flag.String("input", "", "本地快照JSON路径")
	stockQuery := flag.String("stock", "", "只处理指定股票(名称或代码，支持模糊)")
	extractOnly := flag.Bool("extract", false, "只提取单股快照，不做事实分析")
	flag.Parse()

	fmt.Print(`
  ____  ____      _    ____  ___  _   _   _____ ___ ____ _____ ____
 |  _ \|  _ \    / \  / ___|/ _ \| \ | | |_   _|_ _/ ___| ____|  _ \
 | | | | |_) |  / _ \| |  _| | | |  \| |   | |  | | |  _|  _| | |_) |
 | |_| |  _ <  / ___ | |_| | |_| | |\  |   | |  | | |_| | |___|  _ <
 |____/|_| \_\/_/   \_\____|\___/|_| \_|   |_| |___\____|_____|_| \_\
  龙虎榜资金博弈分析
`)

	// .env 不存在时静默跳过
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}
	common.SetLogLevel(cfg.LogLevel)

	// --- Step 1: 加载玩家注册表 ---
	fmt.Println("📇 [Step 1] 加载游资名人录与风格画像...")
	registry := loadRegistry(cfg)
	fmt.Printf("   -> 名人录: %d 条 | 风格画像: %d 份\n", registry.EntryCount(), registry.StyleCount())

	// --- Step 2: 获取快照 ---
	fmt.Println("📦 [Step 2] 准备龙虎榜快照...")
	snap, err := loadSnapshot(cfg, registry, *tradeDate, *inputPath)
	if err != nil {
		fmt.Printf("❌ 获取快照失败: %v\n", err)
		os.Exit(1)
	}
	if len(snap.Stocks) == 0 {
		fmt.Println("❌ 快照中没有任何股票。")
		os.Exit(1)
	}
	fmt.Printf("   -> 交易日: %s | 股票: %d 只\n", snap.Meta.TradeDateDisplay, len(snap.Stocks))

	// --- Step 3: 选定处理范围 ---
	stocks := snap.Stocks
	if *stockQuery != "" {
		extractor := stock_extractor.New(snap, *inputPath)
		stock, err := extractor.Find(*stockQuery)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🎯 [Step 3] 锁定股票: %s (%s)\n", stock.Name, stock.TsCode)
		if *extractOnly {
			if _, err := extractor.SaveStock(stock, filepath.Join(cfg.Output.Dir, "extracted")); err != nil {
				fmt.Printf("❌ 保存单股快照失败: %v\n", err)
				os.Exit(1)
			}
			return
		}
		stocks = []model.Stock{stock}
	} else {
		fmt.Printf("🎯 [Step 3] 全量处理 %d 只股票...\n", len(stocks))
	}

	// --- Step 4: 并发构建结构化事实 ---
	fmt.Println("⚔️  [Step 4] 构建资金博弈结构化事实...")
	builder := facts_builder.NewBuilder(registry)

	var reviewer *deepseek_reviewer.Reviewer
	if cfg.DeepSeek.APIKey != "" {
		reviewer = deepseek_reviewer.NewReviewer(cfg.DeepSeek.APIKey)
		if cfg.DeepSeek.BaseURL != "" {
			reviewer.BaseURL = cfg.DeepSeek.BaseURL
		}
		if cfg.DeepSeek.Model != "" {
			reviewer.Model = cfg.DeepSeek.Model
		}
		fmt.Println("   -> DeepSeek已配置，将生成洞察与分析报告")
	} else {
		fmt.Println("   -> 未配置DEEPSEEK_API_KEY，只输出结构化事实")
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded []string
		failed    []string
	)
	sem := make(chan struct{}, maxConcurrentStocks)

	for _, stock := range stocks {
		wg.Add(1)
		go func(s model.Stock) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := processStock(builder, reviewer, cfg, s); err != nil {
				common.Log.Errorf("处理%s(%s)失败: %v", s.Name, s.TsCode, err)
				mu.Lock()
				failed = append(failed, fmt.Sprintf("%s(%s)", s.Name, s.TsCode))
				mu.Unlock()
				return
			}
			mu.Lock()
			succeeded = append(succeeded, fmt.Sprintf("%s(%s)", s.Name, s.TsCode))
			mu.Unlock()
		}(stock)
	}
	wg.Wait()

	// 单股模式下直接打印战报
	if len(stocks) == 1 && len(succeeded) == 1 {
		facts := builder.BuildForStock(stocks[0])
		output_formatter.PrintBattleTable(facts)
	}

	// --- Step 5: 汇总 ---
	fmt.Printf("\n🏁 处理完成! 耗时: %s | 成功: %d | 失败: %d\n", time.Since(start), len(succeeded), len(failed))
	if len(failed) > 0 {
		fmt.Printf("   失败列表: %s\n", strings.Join(failed, ", "))
	}
}

// loadRegistry 名人录优先读本地CSV，缺失时回退tushare接口；
// 风格画像表缺失只降级不中断。
func loadRegistry(cfg *config.Config) *player_registry.Registry {
	entries, err := player_registry.LoadHMList(cfg.Registry.HMListPath)
	if err != nil {
		common.Log.Warnf("本地名人录不可用: %v", err)
		if cfg.Tushare.Token != "" {
			client := fetcher.NewClient(cfg.Tushare.Token)
			if fetched, err := client.FetchHMList(); err == nil {
				entries = fetched
			} else {
				common.Log.Warnf("tushare名人录获取失败: %v", err)
			}
		}
	}
	if len(entries) == 0 {
		common.Log.Warn("名人录为空，所有席位将按兜底规则分类")
	}

	styles, err := player_registry.LoadStyleProfiles(cfg.Registry.StyleProfilePath)
	if err != nil {
		common.Log.Warnf("风格画像表不可用: %v", err)
	}
	return player_registry.New(entries, styles)
}

// loadSnapshot 指定-date时走tushare拉取并落盘原始快照，否则读-input文件
func loadSnapshot(cfg *config.Config, registry *player_registry.Registry, tradeDate, inputPath string) (model.Snapshot, error) {
	if tradeDate != "" {
		if cfg.Tushare.Token == "" {
			return model.Snapshot{}, fmt.Errorf("拉取模式需要配置TUSHARE_TOKEN")
		}
		client := fetcher.NewClient(cfg.Tushare.Token)
		topList, err := client.FetchTopList(tradeDate)
		if err != nil {
			return model.Snapshot{}, err
		}
		topData, err := client.FetchTopData(tradeDate)
		if err != nil {
			return model.Snapshot{}, err
		}

		processor := data_processor.NewProcessor(registry)
		snap := processor.BuildSnapshot(tradeDate, topList, topData)

		rawPath := filepath.Join(cfg.Output.Dir, "snapshots", fmt.Sprintf("dragon_tiger_%s.json", tradeDate))
		if err := output_formatter.SaveJSON(rawPath, snap); err != nil {
			common.Log.Warnf("原始快照落盘失败: %v", err)
		}
		return snap, nil
	}

	if inputPath == "" {
		return model.Snapshot{}, fmt.Errorf("需要指定 -date 或 -input")
	}
	return facts_builder.LoadSnapshot(inputPath)
}

// processStock 单只股票的完整流水线：事实 -> 洞察 -> 报告。
// 洞察和报告失败只记录，不影响事实产出。
func processStock(builder *facts_builder.Builder, reviewer *deepseek_reviewer.Reviewer, cfg *config.Config, stock model.Stock) error {
	facts := builder.BuildForStock(stock)
	paths := output_formatter.GenerateFileNames(cfg.Output.Dir, stock.Name, stock.TsCode)

	if err := output_formatter.SaveJSON(paths.StructuredFacts, facts); err != nil {
		return err
	}
	if reviewer == nil {
		return nil
	}

	insights, err := reviewer.GenerateInsights(facts)
	if err != nil {
		common.Log.Warnf("%s洞察生成失败: %v", stock.Name, err)
		return nil
	}
	if err := output_formatter.SaveJSON(paths.Insights, insights); err != nil {
		return err
	}

	post, err := reviewer.GeneratePost(facts, insights)
	if err != nil {
		common.Log.Warnf("%s分析报告生成失败: %v", stock.Name, err)
		return nil
	}
	return output_formatter.WriteMarkdown(paths.AnalysisReport, post)
}
