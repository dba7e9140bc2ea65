package tools

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/likexian/whois"
)

// EnvMaxFollow 控制开启跟随查询时的最大转发层级。
const EnvMaxFollow = "WHOIS_MAX_FOLLOW"

const defaultMaxFollow = 5

// LookupResult 是一次 WHOIS 查询的结果信封。
// Status 为 true 时 Result 有效，为 false 时 Error 有效，Time 单位为秒。
type LookupResult struct {
	Status bool         `json:"status" yaml:"status"`
	Time   float64      `json:"time" yaml:"time"`
	Result *WhoisRecord `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// RawQuerier 抽象底层 WHOIS 客户端，便于测试替换。
type RawQuerier interface {
	Query(domain string, disableFollow bool) (string, error)
}

type likexianQuerier struct {
	timeout   time.Duration
	maxFollow int
}

func (q likexianQuerier) Query(domain string, disableFollow bool) (string, error) {
	client := whois.NewClient()
	if q.timeout > 0 {
		client = client.SetTimeout(q.timeout)
	}
	// likexian/whois 只有开关没有层级，maxFollow <= 0 时同样视为禁用跟随。
	client = client.SetDisableReferral(disableFollow || q.maxFollow <= 0)
	return client.Whois(domain)
}

// WhoisLookup 封装一次性 WHOIS 查询：计时、无记录判定、异常兜底。
// 跟随转发服务器能拿到更全的数据，但更慢且部分上游会拒绝连接，
// 默认关闭跟随。
type WhoisLookup struct {
	Querier   RawQuerier
	MaxFollow int
}

// NewWhoisLookup 构造使用 likexian/whois 的查询器。
// maxFollow <= 0 时取环境变量 WHOIS_MAX_FOLLOW，无效则为 5。
func NewWhoisLookup(maxFollow int, timeout time.Duration) *WhoisLookup {
	if maxFollow <= 0 {
		maxFollow = MaxFollowFromEnv()
	}
	return &WhoisLookup{
		Querier:   likexianQuerier{timeout: timeout, maxFollow: maxFollow},
		MaxFollow: maxFollow,
	}
}

// MaxFollowFromEnv 读取最大跟随层级，未设置或非法时返回默认值 5。
func MaxFollowFromEnv() int {
	raw := os.Getenv(EnvMaxFollow)
	if raw == "" {
		return defaultMaxFollow
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultMaxFollow
	}
	return n
}

// Lookup 查询指定域名并解析结果。任何失败都落在返回值里，不会 panic。
func (l *WhoisLookup) Lookup(domain string, disableFollow bool) (result LookupResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = LookupResult{Status: false, Time: 0, Error: fmt.Sprint(r)}
		}
	}()

	if l.Querier == nil {
		return LookupResult{Status: false, Time: 0, Error: "whois querier is nil"}
	}

	raw, err := l.Querier.Query(domain, disableFollow)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return LookupResult{Status: false, Time: elapsed, Error: err.Error()}
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "no match for domain") || strings.Contains(lower, "this query returned 0 objects") {
		return LookupResult{
			Status: false,
			Time:   elapsed,
			Error:  fmt.Sprintf("No match for domain %s (domain may not be registered)", domain),
		}
	}

	return LookupResult{Status: true, Time: elapsed, Result: AnalyzeWhois(raw)}
}

// LookupWhois 用默认配置查询域名，不跟随转发服务器。
func LookupWhois(domain string) LookupResult {
	return NewWhoisLookup(0, 30*time.Second).Lookup(domain, true)
}

// LookupWhoisFollow 用默认配置查询域名并跟随转发服务器。
func LookupWhoisFollow(domain string) LookupResult {
	return NewWhoisLookup(0, 30*time.Second).Lookup(domain, false)
}

// CheckWhois 返回域名的 WHOIS 原始文本，查询失败时为空串。
func CheckWhois(domain string) string {
	res := LookupWhois(domain)
	if !res.Status {
		return ""
	}
	return res.Result.RawWhoisContent
}

// ExtractExpiry 从 WHOIS 原始文本中提取到期日期（yyyy-mm-dd）。
func ExtractExpiry(raw string) (string, bool) {
	record := AnalyzeWhois(raw)
	value := record.ExpirationDate
	if value == "Unknown" || value == "" {
		return "", false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format("2006-01-02"), true
	}
	return value, true
}
