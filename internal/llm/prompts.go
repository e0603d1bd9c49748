package llm

import (
	"fmt"
	"strings"
)

const columnSystemPrompt = `You are a financial analyst for marketplace seller payout reports.
You are given the column labels of a spreadsheet and a sample of its rows.
Column layouts vary between sellers and locales; labels may be in any language
(for example Russian: "Артикул", "Сумма итого, руб.", "Количество", "Тип начисления").

Identify which column holds:
- "sku": the product code / offer id / article the money is attributed to
- "amount": the signed monetary amount paid to the seller
- "qty": the item quantity, if present
- "op": the operation or accrual type (sale / return / service), if present

You MUST respond with ONLY a valid JSON object of the form
{"sku": <zero-based column index or null>, "amount": ..., "qty": ..., "op": ...}.
Do not include any explanatory text or markdown. Start with { and end with }.`

const classifySystemPrompt = `You are a financial analyst for marketplace seller payout reports.
You classify free-text operation labels into exactly one of three classes:
- "sale": a sale of goods
- "return": a return or cancellation
- "other": logistics, commission, services, fines, adjustments, anything else

Each label comes with example rows (product code and signed amount) taken from a real report.

You MUST respond with ONLY a valid JSON object of the form
{"labels": [{"label": "<exact label as given>", "class": "sale|return|other", "confidence": <0..1>}]}.
Include every submitted label exactly once. Do not include any explanatory
text or markdown. Start with { and end with }.`

// buildColumnPrompt serializes the labels and sample rows as compact
// TSV, the densest representation that still preserves the table
// structure for the model.
func buildColumnPrompt(req ColumnRequest) string {
	var b strings.Builder

	b.WriteString("Column labels (tab-separated, in table order):\n")
	b.WriteString(strings.Join(req.Columns, "\t"))
	b.WriteString("\n\nSample rows (TSV, exactly as in the file):\n")
	for _, row := range req.SampleRows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	b.WriteString("\nReturn the JSON column map.")

	return b.String()
}

// buildClassifyPrompt lists each label with its example rows.
func buildClassifyPrompt(req ClassifyRequest) string {
	var b strings.Builder

	b.WriteString("Operation labels to classify:\n\n")
	for i, le := range req.Labels {
		fmt.Fprintf(&b, "%d. label: %q\n", i+1, le.Label)
		for _, ex := range le.Examples {
			fmt.Fprintf(&b, "   example: code=%q amount=%.2f\n", ex.Code, ex.Amount)
		}
	}
	b.WriteString("\nReturn the JSON classification for every label above.")

	return b.String()
}
