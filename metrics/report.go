package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const barWidth = 40

// RenderTextReport renders one domain result as a fixed-width text
// table: rank, entity, share, cumulative share and an ascii bar, closed
// by the coefficient line. Chart rendering proper stays external; this
// is the chart-ready fallback.
func RenderTextReport(domain *types.DomainResult, name string, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString(name + "\n")
	b.WriteString(strings.Repeat("=", len(name)) + "\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05")))

	if domain.Err != nil {
		b.WriteString(fmt.Sprintf("\nDomain failed: %v\n", domain.Err))
		return b.String()
	}

	result := domain.Result
	b.WriteString(fmt.Sprintf("Total entities: %d\n", result.TotalEntities))
	b.WriteString(fmt.Sprintf("Total share: %s\n", result.TotalShare.StringFixed(2)))
	if len(domain.Flags) > 0 {
		b.WriteString(fmt.Sprintf("Data quality: %s\n", strings.Join(domain.Flags, ", ")))
	}
	b.WriteString("\nTop entities by share:\n\n")

	nameWidth := len("Entity")
	for _, e := range domain.TopEntities {
		if len(e.Entity) > nameWidth {
			nameWidth = len(e.Entity)
		}
	}
	if nameWidth > 30 {
		nameWidth = 30
	}

	b.WriteString(fmt.Sprintf("%-4s | %-*s | %6s | %10s | %s\n", "Rank", nameWidth, "Entity", "Share", "Cumulative", "Bar"))
	b.WriteString(strings.Repeat("-", 4+3+nameWidth+3+6+3+10+3+barWidth) + "\n")

	cumulative := decimal.Zero
	for i, e := range domain.TopEntities {
		entity := e.Entity
		if len(entity) > nameWidth {
			entity = entity[:nameWidth-3] + "..."
		}
		cumulative = cumulative.Add(e.Share)
		bar := strings.Repeat("█", barLength(e.Share))
		b.WriteString(fmt.Sprintf("%-4d | %-*s | %6s | %10s | %s\n",
			i+1, nameWidth, entity, e.Share.StringFixed(2), cumulative.StringFixed(2), bar))
	}

	b.WriteString("\n")
	if result.Coefficient == nil {
		b.WriteString("Nakamoto Coefficient: undefined (empty domain)\n")
	} else {
		b.WriteString(fmt.Sprintf("Nakamoto Coefficient: %d\n", *result.Coefficient))
		b.WriteString(fmt.Sprintf("(Minimum entities needed to exceed 50%% share: %d)\n", *result.Coefficient))
	}
	return b.String()
}

func barLength(share decimal.Decimal) int {
	n := int(share.Mul(decimal.NewFromInt(barWidth)).IntPart())
	if n < 0 {
		return 0
	}
	if n > barWidth {
		return barWidth
	}
	return n
}

// WriteTextReports writes one report file per domain into dir
func WriteTextReports(table *types.MetricsTable, dir string, generatedAt time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "error creating report dir %v", dir)
	}
	for _, name := range table.Order {
		domain := table.Domains[name]
		path := filepath.Join(dir, domainSlug(name)+"_report.txt")
		if err := os.WriteFile(path, []byte(RenderTextReport(domain, name, generatedAt)), 0o644); err != nil {
			return errors.Wrapf(err, "error writing report %v", path)
		}
		logger.WithField("path", path).Info("wrote text report")
	}
	return nil
}

func domainSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
