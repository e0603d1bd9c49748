package resolver

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/mkravets/payout-lens/internal/model"
)

// Domain synonym lists per role. Matching is case-insensitive,
// whitespace-collapsed and diacritic-normalized; short tokens match
// whole words only so "шт" does not fire on "штраф".
var (
	skuSynonyms = []string{
		"sku", "артикул", "offer id", "offer_id", "offerid",
		"код товара", "идентификатор товара", "product code", "item id",
	}
	amountSynonyms = []string{
		"сумма итого", "итого", "сумма", "к начислению", "начислено",
		"за продажу", "выплата", "amount", "total", "payout",
	}
	qtySynonyms = []string{
		"количество", "кол-во", "колво", "qty", "quantity", "count", "шт",
	}
	opSynonyms = []string{
		"тип начисления", "тип операции", "вид операции", "операция",
		"тип документа", "operation", "accrual type", "transaction type",
	}
)

// headerHeuristics locates the header row and assigns roles by
// matching labels against curated domain synonyms.
type headerHeuristics struct{}

func (h *headerHeuristics) Name() string { return "header-heuristics" }

// headerScanLimit bounds how deep into the table a header row is
// searched; payout reports put preamble above the header, not data.
const headerScanLimit = 15

func (h *headerHeuristics) Resolve(_ context.Context, table *model.Table, current model.ColumnMap) (model.ColumnMap, error) {
	bestRow, bestScore := -1, 0

	limit := table.RowCount()
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for row := 0; row < limit; row++ {
		score := 0
		for col := range table.Rows[row] {
			label := normalizeLabel(table.Cell(row, col))
			if label == "" {
				continue
			}
			if matchesAny(label, skuSynonyms) || matchesAny(label, amountSynonyms) ||
				matchesAny(label, qtySynonyms) || matchesAny(label, opSynonyms) {
				score++
			}
		}
		if score > bestScore {
			bestRow, bestScore = row, score
		}
	}

	if bestRow < 0 {
		return current, fmt.Errorf("no row matches any role synonym")
	}

	m := current
	m.HeaderRow = bestRow

	labels := make([]string, len(table.Rows[bestRow]))
	for col := range labels {
		labels[col] = normalizeLabel(table.Cell(bestRow, col))
	}

	claimed := map[int]bool{}
	assign := func(ref *model.ColumnRef, synonyms []string) {
		if *ref != model.NoColumn {
			claimed[*ref] = true
			return
		}
		for col, label := range labels {
			if label == "" || claimed[col] {
				continue
			}
			if matchesAny(label, synonyms) {
				*ref = col
				claimed[col] = true
				return
			}
		}
	}

	// First match per role wins; roles claim columns in this order so
	// an ambiguous label cannot serve two roles.
	assign(&m.SKU, skuSynonyms)
	assign(&m.Amount, amountSynonyms)
	assign(&m.Qty, qtySynonyms)
	assign(&m.Op, opSynonyms)

	return m, nil
}

// normalizeLabel lowercases, collapses whitespace and strips combining
// diacritics so "Сумма  итого, руб." and "сумма итого руб" compare equal
// in substring matching.
func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == 'ё' {
			return 'е'
		}
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// matchesAny reports whether a normalized label matches one of the
// normalized synonyms.
func matchesAny(label string, synonyms []string) bool {
	for _, syn := range synonyms {
		if matches(label, syn) {
			return true
		}
	}
	return false
}

func matches(label, syn string) bool {
	if len([]rune(syn)) <= 3 {
		for _, word := range strings.FieldsFunc(label, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			if word == syn {
				return true
			}
		}
		return false
	}
	return strings.Contains(label, syn)
}
