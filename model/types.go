package model

// --- 原始快照结构 (data_processor 产出, facts_builder 消费) ---

// Snapshot 单个交易日的龙虎榜快照
type Snapshot struct {
	Meta   Meta    `json:"meta"`
	Stocks []Stock `json:"stocks"`
}

type Meta struct {
	TradeDate        string `json:"trade_date"`
	TradeDateDisplay string `json:"trade_date_display"`
	ProcessingTime   string `json:"processing_time"`
	StockCount       int    `json:"stock_count"`
	DataQuality      string `json:"data_quality"`
}

// Stock 一只上榜股票的完整原始数据
type Stock struct {
	TsCode    string    `json:"ts_code"`
	Name      string    `json:"name"`
	TradeDate string    `json:"trade_date"`
	BasicInfo BasicInfo `json:"basic_info"`
	SeatData  SeatData  `json:"seat_data"`
}

// BasicInfo 股票当日基础行情，除 close 外均为展示格式字符串
type BasicInfo struct {
	Close            float64  `json:"close"`
	PctChange        string   `json:"pct_change"`
	TurnoverRate     string   `json:"turnover_rate"`
	Amount           string   `json:"amount"`
	LSell            string   `json:"l_sell"`
	LBuy             string   `json:"l_buy"`
	LAmount          string   `json:"l_amount"`
	NetAmount        string   `json:"net_amount"`
	NetRate          string   `json:"net_rate"`
	AmountRate       string   `json:"amount_rate"`
	FloatValues      string   `json:"float_values"`
	Reasons          []string `json:"reasons"`
	TradeDateDisplay string   `json:"trade_date_display"`
}

// SeatData 上游抽取层给出的席位数据。买卖方拆分仅作为初始行集，
// facts_builder 会合并去重后按净额符号重新分方。
type SeatData struct {
	BuySeats  []SeatRecord `json:"buy_seats"`
	SellSeats []SeatRecord `json:"sell_seats"`
	BuyTotal  string       `json:"buy_total"`
	SellTotal string       `json:"sell_total"`
}

// SeatRecord 一条席位上榜记录。同一席位可因多个上榜原因出现完全
// 重复的记录；名称相同但金额不同的记录是不同席位，不能合并。
type SeatRecord struct {
	SeatName   string        `json:"seat_name"`
	BuyAmount  string        `json:"buy_amount"`
	SellAmount string        `json:"sell_amount"`
	NetAmount  string        `json:"net_amount"`
	BuyRate    string        `json:"buy_rate"`
	SellRate   string        `json:"sell_rate"`
	PlayerInfo PlayerProfile `json:"player_info"`
}

// --- 玩家识别 ---

// PlayerProfile 席位背后玩家的身份画像
type PlayerProfile struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Style       map[string]string `json:"style"`
}

// HMEntry 游资名人录条目（tushare hm_list）
type HMEntry struct {
	Name string   `json:"name"`
	Desc string   `json:"desc"`
	Orgs []string `json:"orgs"`
}

// StyleProfile 游资风格画像表的一行
type StyleProfile struct {
	Profile    string // 核心交易档案
	Preference string // 标的选择偏好
	Tactics    string // 盘中操盘密码
	Reputation string // 软实力与市场标签
}

// --- 结构化事实 (facts_builder 产出) ---

// ProcessedPlayer 去重分类后的单个席位，金额字段透传输入的原始格式
type ProcessedPlayer struct {
	SeatName    string            `json:"seat_name"`
	NetAmount   string            `json:"net_amount"`
	Buy         string            `json:"buy"`
	Sell        string            `json:"sell"`
	BuyRate     string            `json:"buy_rate"`
	SellRate    string            `json:"sell_rate"`
	NetRate     string            `json:"net_rate"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Style       map[string]string `json:"style"`
}

// ConcentrationMetrics 前N大席位净额占比
type ConcentrationMetrics struct {
	Top1Pct float64 `json:"top1_pct"`
	Top2Pct float64 `json:"top2_pct"`
	Top5Pct float64 `json:"top5_pct"`
}

// SideFacts 单个阵营（多方或空方）的事实数据
type SideFacts struct {
	TotalAmountWan       float64              `json:"total_amount_wan"`
	PlayerCount          int                  `json:"player_count"`
	FamousPlayerCount    int                  `json:"famous_player_count"`
	ConcentrationMetrics ConcentrationMetrics `json:"concentration_metrics"`
	ContributionByType   map[string]float64   `json:"contribution_by_type"`
	Players              []ProcessedPlayer    `json:"players"`
}

// BattleFacts 多空博弈指标
type BattleFacts struct {
	NetAdvantageWan   float64 `json:"net_advantage_wan"`
	Winner            string  `json:"winner"`
	NetAdvantagePct   float64 `json:"net_advantage_pct"`
	OnListTurnoverPct float64 `json:"on_list_turnover_pct"`
}

// StructuredFacts 单只股票单个交易日的结构化事实，构建完成后不再修改
type StructuredFacts struct {
	TsCode         string      `json:"ts_code"`
	Name           string      `json:"name"`
	RawBasicInfo   BasicInfo   `json:"raw_basic_info"`
	LongSideFacts  SideFacts   `json:"long_side_facts"`
	ShortSideFacts SideFacts   `json:"short_side_facts"`
	BattleFacts    BattleFacts `json:"battle_facts"`
}

// --- Tushare API ---

// TushareRequest api.tushare.pro 请求体
type TushareRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

// TushareResponse fields/items 列式响应
type TushareResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string `json:"fields"`
		Items  [][]any  `json:"items"`
	} `json:"data"`
}

// TopListRow 龙虎榜每日列表的一行（top_list）
type TopListRow struct {
	TsCode       string
	TradeDate    string
	Name         string
	Close        float64
	PctChange    float64
	TurnoverRate float64
	Amount       float64
	LSell        float64
	LBuy         float64
	LAmount      float64
	NetAmount    float64
	NetRate      float64
	AmountRate   float64
	FloatValues  float64
	Reason       string
}

// TopDataRow 龙虎榜席位明细的一行（top_data）
type TopDataRow struct {
	TsCode    string
	TradeDate string
	Exalter   string
	Buy       float64
	BuyRate   float64
	Sell      float64
	SellRate  float64
	NetBuy    float64
	Reason    string
}
