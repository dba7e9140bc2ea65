package app

import (
	"context"
	"fmt"

	"DomainW/tools"

	"github.com/openrdap/rdap"
)

// RDAPClient 用 RDAP 协议查询域名注册信息，
// 结果映射到与 WHOIS 解析一致的记录结构。
type RDAPClient struct {
	Client *rdap.Client
}

func NewRDAPClient() *RDAPClient {
	return &RDAPClient{Client: &rdap.Client{}}
}

func (c *RDAPClient) Query(ctx context.Context, domain string) (*tools.WhoisRecord, error) {
	req := &rdap.Request{Type: rdap.DomainRequest, Query: domain}
	resp, err := c.Client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("RDAP 查询失败: %w", err)
	}
	d, ok := resp.Object.(*rdap.Domain)
	if !ok || d == nil {
		return nil, fmt.Errorf("RDAP 响应不是域名对象: %s", domain)
	}
	return recordFromRDAP(d), nil
}

// recordFromRDAP 把 RDAP 域名对象映射到 WhoisRecord。
func recordFromRDAP(d *rdap.Domain) *tools.WhoisRecord {
	record := tools.NewWhoisRecord()

	if d.LDHName != "" {
		record.Domain = d.LDHName
	} else if d.UnicodeName != "" {
		record.Domain = d.UnicodeName
	}
	if d.Port43 != "" {
		record.WhoisServer = d.Port43
	}

	for _, status := range d.Status {
		if status == "" {
			continue
		}
		record.Status = append(record.Status, tools.StatusEntry{Status: status})
	}
	record.Status = tools.FilterRepeat(record.Status)

	for _, ev := range d.Events {
		switch ev.Action {
		case "registration":
			record.CreationDate = tools.NormalizeDate(ev.Date)
		case "expiration":
			record.ExpirationDate = tools.NormalizeDate(ev.Date)
		case "last changed":
			record.UpdatedDate = tools.NormalizeDate(ev.Date)
		}
	}

	for _, ent := range d.Entities {
		for _, role := range ent.Roles {
			switch role {
			case "registrar":
				if ent.VCard != nil && ent.VCard.Name() != "" {
					record.Registrar = ent.VCard.Name()
				}
				for _, id := range ent.PublicIDs {
					if id.Type == "IANA Registrar ID" {
						record.RegistrarIANAID = id.Identifier
					}
				}
			case "registrant":
				if ent.VCard == nil {
					continue
				}
				if v := ent.VCard.Name(); v != "" {
					record.RegistrantOrg = v
				}
				if v := ent.VCard.Region(); v != "" {
					record.RegistrantProvince = v
				}
				if v := ent.VCard.Country(); v != "" {
					record.RegistrantCountry = v
				}
				if v := ent.VCard.Tel(); v != "" {
					record.RegistrantPhone = tools.NormalizePhone(v)
				}
				if v := ent.VCard.Email(); v != "" {
					record.RegistrantEmail = v
				}
			}
		}
	}

	return record
}
