package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravets/payout-lens/internal/model"
)

// cleanMarkdownWrapper strips a markdown code fence some models insist
// on wrapping JSON responses in.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}

// parseColumnResponse validates a column-map response against the
// fixed shape. Any malformed or out-of-range response is an error; the
// caller treats that as "capability declined".
func parseColumnResponse(content string, columnCount int) (ColumnResponse, error) {
	var jsonResp struct {
		SKU    *int `json:"sku"`
		Amount *int `json:"amount"`
		Qty    *int `json:"qty"`
		Op     *int `json:"op"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ColumnResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	for _, ref := range []*int{jsonResp.SKU, jsonResp.Amount, jsonResp.Qty, jsonResp.Op} {
		if ref != nil && (*ref < 0 || *ref >= columnCount) {
			return ColumnResponse{}, fmt.Errorf("column index %d out of range [0,%d)", *ref, columnCount)
		}
	}

	return ColumnResponse{
		SKU:    jsonResp.SKU,
		Amount: jsonResp.Amount,
		Qty:    jsonResp.Qty,
		Op:     jsonResp.Op,
	}, nil
}

// parseClassifyResponse validates a classification response: every
// submitted label must appear exactly once with a recognized class.
// Partial or malformed responses are rejected whole so the caller can
// fall back deterministically.
func parseClassifyResponse(content string, req ClassifyRequest) (ClassifyResponse, error) {
	var jsonResp struct {
		Labels []struct {
			Label      string  `json:"label"`
			Class      string  `json:"class"`
			Confidence float64 `json:"confidence"`
		} `json:"labels"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	verdicts := make(map[string]ClassifiedLabel, len(jsonResp.Labels))
	for _, l := range jsonResp.Labels {
		class, err := model.ParseOperationClass(l.Class)
		if err != nil {
			return ClassifyResponse{}, fmt.Errorf("label %q: %w", l.Label, err)
		}
		verdicts[strings.TrimSpace(l.Label)] = ClassifiedLabel{
			Label:      strings.TrimSpace(l.Label),
			Class:      class,
			Confidence: l.Confidence,
		}
	}

	resp := ClassifyResponse{Labels: make([]ClassifiedLabel, 0, len(req.Labels))}
	for _, le := range req.Labels {
		verdict, ok := verdicts[le.Label]
		if !ok {
			return ClassifyResponse{}, fmt.Errorf("response missing label %q", le.Label)
		}
		resp.Labels = append(resp.Labels, verdict)
	}

	return resp, nil
}
