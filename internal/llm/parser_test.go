package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/payout-lens/internal/model"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"sku": 0}`,
			expected: `{"sku": 0}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"sku\": 0}\n```",
			expected: `{"sku": 0}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"sku\": 0}\n```",
			expected: `{"sku": 0}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"sku\": 0}\n  ",
			expected: `{"sku": 0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMarkdownWrapper(tt.input))
		})
	}
}

func TestParseColumnResponse(t *testing.T) {
	resp, err := parseColumnResponse(`{"sku": 0, "amount": 3, "qty": null, "op": 2}`, 5)
	require.NoError(t, err)
	require.NotNil(t, resp.SKU)
	require.NotNil(t, resp.Amount)
	assert.Equal(t, 0, *resp.SKU)
	assert.Equal(t, 3, *resp.Amount)
	assert.Nil(t, resp.Qty)
	require.NotNil(t, resp.Op)
	assert.Equal(t, 2, *resp.Op)
}

func TestParseColumnResponseMarkdownWrapped(t *testing.T) {
	resp, err := parseColumnResponse("```json\n{\"sku\": 1, \"amount\": 2}\n```", 4)
	require.NoError(t, err)
	require.NotNil(t, resp.SKU)
	assert.Equal(t, 1, *resp.SKU)
}

func TestParseColumnResponseRejectsOutOfRange(t *testing.T) {
	_, err := parseColumnResponse(`{"sku": 0, "amount": 7}`, 5)
	assert.Error(t, err)

	_, err = parseColumnResponse(`{"sku": -1}`, 5)
	assert.Error(t, err)
}

func TestParseColumnResponseRejectsMalformed(t *testing.T) {
	_, err := parseColumnResponse(`the sku column is the first one`, 5)
	assert.Error(t, err)
}

func classifyReq(labels ...string) ClassifyRequest {
	req := ClassifyRequest{}
	for _, l := range labels {
		req.Labels = append(req.Labels, LabelExamples{Label: l})
	}
	return req
}

func TestParseClassifyResponse(t *testing.T) {
	content := `{"labels": [
		{"label": "Доставка покупателю", "class": "sale", "confidence": 0.95},
		{"label": "Возврат", "class": "return", "confidence": 0.8},
		{"label": "Логистика", "class": "other", "confidence": 0.3}
	]}`

	resp, err := parseClassifyResponse(content, classifyReq("Доставка покупателю", "Возврат", "Логистика"))
	require.NoError(t, err)
	require.Len(t, resp.Labels, 3)
	assert.Equal(t, model.OpSale, resp.Labels[0].Class)
	assert.Equal(t, model.OpReturn, resp.Labels[1].Class)
	assert.Equal(t, model.OpOther, resp.Labels[2].Class)
}

func TestParseClassifyResponseLowConfidenceStillAccepted(t *testing.T) {
	content := `{"labels": [{"label": "Штраф", "class": "other", "confidence": 0.01}]}`

	resp, err := parseClassifyResponse(content, classifyReq("Штраф"))
	require.NoError(t, err)
	require.Len(t, resp.Labels, 1)
	assert.Equal(t, model.OpOther, resp.Labels[0].Class)
	assert.Equal(t, 0.01, resp.Labels[0].Confidence)
}

func TestParseClassifyResponseRejectsMissingLabel(t *testing.T) {
	content := `{"labels": [{"label": "Возврат", "class": "return"}]}`

	_, err := parseClassifyResponse(content, classifyReq("Возврат", "Логистика"))
	assert.Error(t, err)
}

func TestParseClassifyResponseRejectsUnknownClass(t *testing.T) {
	content := `{"labels": [{"label": "Возврат", "class": "refund"}]}`

	_, err := parseClassifyResponse(content, classifyReq("Возврат"))
	assert.Error(t, err)
}

func TestParseClassifyResponseRejectsMalformed(t *testing.T) {
	_, err := parseClassifyResponse(`probably a sale`, classifyReq("Возврат"))
	assert.Error(t, err)
}
