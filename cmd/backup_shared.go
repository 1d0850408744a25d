package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func tablesFromConfig(key string) []string {
	return normalizeTables(viper.GetStringSlice(key))
}

func normalizeTables(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		result = append(result, strings.ToLower(name))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

type cliProgress struct {
	out         io.Writer
	totals      map[string]int
	counts      map[string]int
	lastPrinted map[string]int
	steps       map[string]int
}

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{
		out:         out,
		totals:      make(map[string]int),
		counts:      make(map[string]int),
		lastPrinted: make(map[string]int),
		steps:       make(map[string]int),
	}
}

func (p *cliProgress) StartTable(table string, total int) {
	if total < 0 {
		total = 0
	}
	p.totals[table] = total
	p.counts[table] = 0
	p.lastPrinted[table] = 0
	p.steps[table] = progressStep(total)
	fmt.Fprintf(p.out, "exporting %s (%d rows)\n", table, total)
}

func (p *cliProgress) Increment(table string, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[table] + delta
	p.counts[table] = current
	total := p.totals[table]
	step := p.steps[table]
	if step <= 0 {
		step = 1
	}
	last := p.lastPrinted[table]
	if current == total || last == 0 || current-last >= step {
		p.printProgress(table, current, total)
		p.lastPrinted[table] = current
	}
}

func (p *cliProgress) FinishTable(table string) {
	current := p.counts[table]
	total := p.totals[table]
	if current != p.lastPrinted[table] {
		p.printProgress(table, current, total)
	}
	if total > 0 {
		fmt.Fprintf(p.out, "finished %s: %d/%d rows\n", table, current, total)
	} else {
		fmt.Fprintf(p.out, "finished %s: %d rows\n", table, current)
	}
}

func (p *cliProgress) printProgress(table string, current, total int) {
	if total > 0 {
		fmt.Fprintf(p.out, "  %s: %d/%d\n", table, current, total)
	} else {
		fmt.Fprintf(p.out, "  %s: %d\n", table, current)
	}
}

// progressStep spaces progress lines so large tables print roughly
// twenty updates.
func progressStep(total int) int {
	if total <= 0 {
		return 1
	}
	step := total / 20
	if step < 1 {
		step = 1
	}
	return step
}
