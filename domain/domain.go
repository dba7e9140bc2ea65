package domain

import (
	"DomainW/tools"
)

// DomainSource 表示一个待检测域名及其来源。
// Expiry 预填时（yyyy-mm-dd）检测器跳过 WHOIS 查询。
type DomainSource struct {
	Domain string `yaml:"domain"`
	Source string `yaml:"source"`
	Expiry string `yaml:"expiry,omitempty"`
}

// FailureRecord 记录一次检测失败的原因。
type FailureRecord struct {
	Domain string `yaml:"domain"`
	Source string `yaml:"source"`
	Reason string `yaml:"reason"`
}

// LookupReport 保存一次 WHOIS 查询的解析快照。
type LookupReport struct {
	Domain string             `yaml:"domain"`
	Time   float64            `yaml:"time"`
	Record *tools.WhoisRecord `yaml:"record,omitempty"`
}

// Repository 持久化检测结果。
type Repository interface {
	SaveExpiring(domains []DomainSource) error
	SaveFailures(failures []FailureRecord) error
	SaveReports(reports []LookupReport) error
}
