// Package llm provides clients for the external classification
// capability: resolving semantic column roles in unlabeled tables and
// classifying free-text operation labels.
package llm

import (
	"context"
	"time"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/service"
)

// Client defines the interface to the external classification capability.
type Client interface {
	// ResolveColumns proposes a column-role assignment for a table
	// given its labels and a sample of rows.
	ResolveColumns(ctx context.Context, req ColumnRequest) (ColumnResponse, error)
	// ClassifyOperations classifies a batch of operation labels, each
	// accompanied by example rows.
	ClassifyOperations(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	RateLimit   int
	Timeout     time.Duration
}

// ColumnRequest carries the column labels and a bounded sample of rows.
type ColumnRequest struct {
	Columns    []string
	SampleRows [][]string
}

// ColumnResponse is the proposed column map. Nil entries mean the
// capability could not locate that role.
type ColumnResponse struct {
	SKU    *int
	Amount *int
	Qty    *int
	Op     *int
}

// Example is one sample row backing a label classification.
type Example struct {
	Code   string
	Amount float64
}

// LabelExamples pairs an unknown operation label with example rows.
type LabelExamples struct {
	Label    string
	Examples []Example
}

// ClassifyRequest is a bounded batch of labels to classify.
type ClassifyRequest struct {
	Labels []LabelExamples
}

// ClassifiedLabel is the capability's verdict for one label. The
// confidence score is informational only; results are accepted
// regardless of its value.
type ClassifiedLabel struct {
	Label      string
	Class      model.OperationClass
	Confidence float64
}

// ClassifyResponse holds one verdict per submitted label.
type ClassifyResponse struct {
	Labels []ClassifiedLabel
}

// completer is the transport-level contract each provider implements.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
}

// client implements Client on top of a provider transport with rate
// limiting applied to every outbound request.
type client struct {
	backend completer
	limiter *rateLimiter
}

func (c *client) ResolveColumns(ctx context.Context, req ColumnRequest) (ColumnResponse, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return ColumnResponse{}, err
	}

	content, err := c.complete(ctx, columnSystemPrompt, buildColumnPrompt(req))
	if err != nil {
		return ColumnResponse{}, err
	}
	return parseColumnResponse(content, len(req.Columns))
}

func (c *client) ClassifyOperations(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return ClassifyResponse{}, err
	}

	content, err := c.complete(ctx, classifySystemPrompt, buildClassifyPrompt(req))
	if err != nil {
		return ClassifyResponse{}, err
	}
	return parseClassifyResponse(content, req)
}

// complete runs one transport request with retries. Rate-limit
// responses back off to the full delay before the next attempt.
func (c *client) complete(ctx context.Context, system, user string) (string, error) {
	var content string
	err := common.WithRetry(ctx, func() error {
		var err error
		content, err = c.backend.complete(ctx, system, user)
		return err
	}, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     20 * time.Second,
	})
	return content, err
}
