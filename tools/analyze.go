package tools

import (
	"strings"
	"time"
)

// StatusEntry 表示一条域名状态及其说明链接。
type StatusEntry struct {
	Status string `json:"status" yaml:"status"`
	URL    string `json:"url" yaml:"url"`
}

// WhoisRecord 是 WHOIS 原始文本解析后的固定结构。
// 未出现在原始文本中的字段保留默认占位值。
type WhoisRecord struct {
	Domain             string        `json:"domain" yaml:"domain"`
	Registrar          string        `json:"registrar" yaml:"registrar"`
	RegistrarURL       string        `json:"registrarURL" yaml:"registrarURL"`
	RegistrarIANAID    string        `json:"registrarIANAID" yaml:"registrarIANAID"`
	WhoisServer        string        `json:"whoisServer" yaml:"whoisServer"`
	UpdatedDate        string        `json:"updatedDate" yaml:"updatedDate"`
	CreationDate       string        `json:"creationDate" yaml:"creationDate"`
	ExpirationDate     string        `json:"expirationDate" yaml:"expirationDate"`
	Status             []StatusEntry `json:"status" yaml:"status"`
	RegistrantOrg      string        `json:"registrantOrg" yaml:"registrantOrg"`
	RegistrantProvince string        `json:"registrantProvince" yaml:"registrantProvince"`
	RegistrantCountry  string        `json:"registrantCountry" yaml:"registrantCountry"`
	RegistrantPhone    string        `json:"registrantPhone" yaml:"registrantPhone"`
	RegistrantEmail    string        `json:"registrantEmail" yaml:"registrantEmail"`
	RawWhoisContent    string        `json:"rawWhoisContent" yaml:"rawWhoisContent"`
}

// 部分注册局在邮箱字段里塞入引导文案而不是地址，解析时剥掉前缀。
const emailBoilerplatePrefix = "Select Contact Domain Holders link at "

// whoisDateLayouts 覆盖常见 WHOIS 服务器的日期写法。
var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2-Jan-2006",
	"January 02 2006",
	"2006/01/02",
	"2006. 01. 02.",
}

// NewWhoisRecord 返回带占位默认值的空记录。
func NewWhoisRecord() *WhoisRecord {
	return &WhoisRecord{
		Domain:             "Unknown",
		Registrar:          "Unknown",
		RegistrarURL:       "Unknown",
		RegistrarIANAID:    "N/A",
		WhoisServer:        "Unknown",
		UpdatedDate:        "Unknown",
		CreationDate:       "Unknown",
		ExpirationDate:     "Unknown",
		Status:             []StatusEntry{},
		RegistrantOrg:      "N/A",
		RegistrantProvince: "N/A",
		RegistrantCountry:  "N/A",
		RegistrantPhone:    "N/A",
		RegistrantEmail:    "N/A",
	}
}

// AnalyzeWhois 将 WHOIS 原始文本解析为结构化记录。
// 逐行扫描冒号分隔的键值对，无法识别的行直接跳过，永不报错。
func AnalyzeWhois(raw string) *WhoisRecord {
	record := NewWhoisRecord()

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "domain name":
			record.Domain = value
		case "registrar":
			record.Registrar = value
		case "registrar url":
			record.RegistrarURL = value
		case "registrar iana id", "iana id":
			record.RegistrarIANAID = value
		case "registrar whois server", "whois server":
			record.WhoisServer = value
		case "updated date":
			record.UpdatedDate = NormalizeDate(value)
		case "creation date":
			record.CreationDate = NormalizeDate(value)
		case "registry expiry date", "registrar registration expiration date", "expiration date":
			record.ExpirationDate = NormalizeDate(value)
		case "status", "domain status":
			record.Status = append(record.Status, normalizeStatus(value))
		case "name", "organization":
			record.RegistrantOrg = value
		case "registrant state/province":
			record.RegistrantProvince = value
		case "registrant country":
			record.RegistrantCountry = value
		case "registrant phone", "phone":
			record.RegistrantPhone = NormalizePhone(value)
		case "registrant email":
			record.RegistrantEmail = strings.TrimPrefix(value, emailBoilerplatePrefix)
		}
	}

	record.RawWhoisContent = raw

	kept := record.Status[:0]
	for _, entry := range record.Status {
		if entry.Status != "" {
			kept = append(kept, entry)
		}
	}
	record.Status = FilterRepeat(kept)

	return record
}

// NormalizeDate 尝试按常见格式解析日期，成功则统一输出 UTC 的 RFC3339，
// 解析失败或为空时原样返回。
func NormalizeDate(value string) string {
	if value == "" {
		return value
	}
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return value
}

// normalizeStatus 把状态行拆成状态码和可选的说明链接，
// 链接外层若包了一对括号则剥掉一层。
func normalizeStatus(value string) StatusEntry {
	parts := strings.SplitN(value, " ", 2)
	entry := StatusEntry{Status: parts[0]}
	if len(parts) == 2 {
		url := strings.TrimSpace(parts[1])
		if strings.HasPrefix(url, "(") && strings.HasSuffix(url, ")") {
			url = url[1 : len(url)-1]
		}
		entry.URL = url
	}
	return entry
}

// NormalizePhone 处理形如 tel:+1.5551234567 的电话，
// 只替换第一个点，得到 +1 5551234567。
func NormalizePhone(value string) string {
	value = strings.TrimPrefix(value, "tel:")
	return strings.Replace(value, ".", " ", 1)
}
