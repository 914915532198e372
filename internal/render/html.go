// Package render produces the printable quote document: an HTML template
// rendered to PDF and PNG through headless Chrome.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/danielokim/quotekit/internal/domain"
)

var docTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"money": FormatMoney,
}).Parse(`<!doctype html><html><head><meta charset="utf-8" />
<style>
body{font-family:Pretendard,Arial,sans-serif;font-size:12px;color:#111}
h1{font-size:18px;margin:0 0 8px}
table{width:100%;border-collapse:collapse;margin:8px 0}
th,td{border:1px solid #bbb;padding:6px;text-align:left}
.hdr{margin-bottom:6px}
.right{text-align:right}
</style></head><body>
<h1>견적서</h1>
<div class="hdr">견적번호: <b>{{.QuoteNo}}</b> | 일자: {{.Date}}</div>
<div class="hdr">견적대상: {{.Quote.Client}} | 모델: {{.Quote.Model.Raw}} | 담당: {{.Quote.Owner}}</div>
<div class="hdr">결제조건: {{.Quote.PayTerms}} | 납기: {{.Quote.DeliveryTerms}}</div>

<h3>본 품목</h3>
<table><thead><tr><th>수량</th><th>품목</th><th>단가</th><th>금액</th></tr></thead>
<tbody>{{range .Quote.Items}}<tr><td>{{.Qty}}</td><td>{{.Label}}</td><td>{{money .UnitPrice}}</td><td>{{money .Total}}</td></tr>{{end}}</tbody></table>

{{if .Quote.Installed}}<h3>장착 옵션</h3>
<table><thead><tr><th>옵션</th><th class="right">금액</th></tr></thead>
<tbody>{{range .Quote.Installed}}<tr><td>{{.Description}}</td><td class="right">{{money .Price}}</td></tr>{{end}}</tbody></table>{{end}}

{{if .Quote.Paid}}<h3>유상 옵션</h3>
<table><thead><tr><th>옵션</th><th class="right">금액</th></tr></thead>
<tbody>{{range .Quote.Paid}}<tr><td>{{.Description}}</td><td class="right">{{money .Price}}</td></tr>{{end}}</tbody></table>{{end}}

{{if .Quote.Extra}}<h3>추가 옵션</h3>
<table><thead><tr><th>옵션</th><th class="right">금액</th></tr></thead>
<tbody>{{range .Quote.Extra}}<tr><td>{{.Description}}</td><td class="right">{{money .Price}}</td></tr>{{end}}</tbody></table>{{end}}

<div class="right">공급가액: {{money .Quote.Subtotal}} 원 | 부가세: {{money .Quote.VAT}} 원</div>
<h2 class="right">합계 금액: {{money .Quote.GrandTotal}} 원</h2>
{{if .Quote.Notes}}<div>비고: {{.Quote.Notes}}</div>{{end}}
</body></html>`))

type docData struct {
	Quote   *domain.Quote
	QuoteNo string
	Date    string
}

// HTML renders the printable document for a quote. All quote text passes
// through html/template escaping.
func HTML(q *domain.Quote) (string, error) {
	data := docData{
		Quote: q,
		Date:  q.UpdatedAt.Format("2006-01-02"),
	}
	if q.Number != nil {
		data.QuoteNo = q.Number.String()
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering quote document: %w", err)
	}
	return buf.String(), nil
}

// FormatMoney renders an amount in KRW with thousands separators.
func FormatMoney(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
