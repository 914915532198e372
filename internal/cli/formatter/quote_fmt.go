package formatter

import (
	"fmt"
	"strings"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/render"
	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/similarity"
)

// Money formats a KRW amount with thousands separators and the won suffix.
func Money(v int64) string {
	return render.FormatMoney(v) + "원"
}

// FormatQuoteList renders quote summaries as a table, newest first.
func FormatQuoteList(summaries []repository.QuoteSummary) string {
	headers := []string{"NO", "STATUS", "CLIENT", "TITLE", "TOTAL", "UPDATED"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			Bold(s.QuoteNo),
			StatusBadge(s.Status),
			s.Client,
			s.Title,
			Money(s.GrandTotal),
			Dim(s.UpdatedAt.Format("2006-01-02 15:04")),
		})
	}
	return RenderTable(headers, rows)
}

// FormatQuoteDetail renders the full quote view used by `quote show` and the
// studio preview pane.
func FormatQuoteDetail(q *domain.Quote) string {
	var b strings.Builder

	quoteNo := ""
	if q.Number != nil {
		quoteNo = q.Number.String()
	}
	b.WriteString(Header(q.Title) + "\n")
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(quoteNo), StatusBadge(q.Status), Dim(q.UpdatedAt.Format("2006-01-02")))
	if q.Client != "" || q.Owner != "" {
		fmt.Fprintf(&b, "고객: %s  담당: %s\n", q.Client, q.Owner)
	}
	if q.PayTerms != "" || q.DeliveryTerms != "" {
		fmt.Fprintf(&b, "결제: %s  납기: %s\n", q.PayTerms, q.DeliveryTerms)
	}
	b.WriteString("\n")

	itemRows := make([][]string, 0, len(q.Items))
	for _, item := range q.Items {
		itemRows = append(itemRows, []string{
			fmt.Sprintf("%d", item.Qty),
			item.Label,
			Money(item.UnitPrice),
			Money(item.Total),
		})
	}
	b.WriteString(RenderTable([]string{"수량", "품목", "단가", "금액"}, itemRows))

	writeOptions(&b, "장착 옵션", q.Installed)
	writeOptions(&b, "유상 옵션", q.Paid)
	writeOptions(&b, "추가 옵션", q.Extra)

	b.WriteString("\n")
	fmt.Fprintf(&b, "공급가액  %s\n", Money(q.Subtotal))
	fmt.Fprintf(&b, "부가세    %s\n", Money(q.VAT))
	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render("합계"), Bold(Money(q.GrandTotal)))

	if q.Notes != "" {
		b.WriteString("\n" + Dim("비고: "+q.Notes) + "\n")
	}
	if q.PDFPath != "" {
		fmt.Fprintf(&b, "%s\n", Dim("PDF: "+q.PDFPath))
	}
	if q.PNGPath != "" {
		fmt.Fprintf(&b, "%s\n", Dim("PNG: "+q.PNGPath))
	}
	return b.String()
}

func writeOptions(b *strings.Builder, title string, opts []domain.OptionLine) {
	if len(opts) == 0 {
		return
	}
	b.WriteString("\n" + StyleBlue.Render(title) + "\n")
	for _, o := range opts {
		fmt.Fprintf(b, "  %s  %s\n", o.Description, Money(o.Price))
	}
}

// FormatMatches renders similarity search results.
func FormatMatches(matches []similarity.Match) string {
	headers := []string{"SCORE", "NO", "CLIENT", "MODEL", "TOTAL"}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			StylePurple.Render(fmt.Sprintf("%.4f", m.Score)),
			Bold(m.QuoteNo),
			m.Client,
			m.ModelRaw,
			Money(m.GrandTotal),
		})
	}
	return RenderTable(headers, rows)
}

// FormatModelAttrs renders a parsed catalog key for `model parse`.
func FormatModelAttrs(m domain.ModelAttrs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header(m.Raw))
	fmt.Fprintf(&b, "코스명:   %s\n", m.CourseName)
	fmt.Fprintf(&b, "일자:     %s\n", m.Date)
	fmt.Fprintf(&b, "시리즈:   %s\n", m.Series)
	if m.Deck != "" {
		fmt.Fprintf(&b, "데크:     %s\n", m.Deck.Label())
	}
	if m.Seats > 0 {
		fmt.Fprintf(&b, "좌석:     %s\n", m.SeatLabel)
	}
	if m.Battery != "" {
		fmt.Fprintf(&b, "배터리:   %s\n", m.Battery.Label())
	}
	if m.Variant != "" {
		fmt.Fprintf(&b, "옵션:     %s\n", m.Variant)
	}
	return b.String()
}
