// pkg/report/merge.go
package report

import "sort"

// GeneInformationMerger is the shared element name under which plugins
// contribute gene annotation rows.
const GeneInformationMerger = "gene_information_merger"

// Contribution is one plugin's record list for a named shared element,
// tagged with the plugin's extract priority for tie-breaking.
type Contribution struct {
	Plugin   string
	Priority int
	Records  []map[string]any
}

// CollectMergeInputs gathers every plugin's contribution to the named
// shared element, in plugin insertion order.
func CollectMergeInputs(d *Data, element string) []Contribution {
	var out []Contribution
	for _, name := range d.Plugins.Names() {
		pd, _ := d.Plugins.Get(name)
		records, ok := pd.MergeInputs[element]
		if !ok || len(records) == 0 {
			continue
		}
		out = append(out, Contribution{
			Plugin:   name,
			Priority: pd.Priorities.Extract,
			Records:  records,
		})
	}
	return out
}

// MergeGeneInformation merges all gene_information_merger contributions
// into one table, deduplicated by gene symbol. When two plugins carry the
// same gene, the record from the lower extract priority wins; equal
// priorities fall back to insertion order. Rows are sorted by gene symbol.
func MergeGeneInformation(d *Data) []map[string]any {
	contributions := CollectMergeInputs(d, GeneInformationMerger)

	type entry struct {
		record   map[string]any
		priority int
	}
	seen := make(map[string]entry)
	var order []string

	for _, c := range contributions {
		for _, rec := range c.Records {
			gene, ok := rec["Gene"].(string)
			if !ok || gene == "" {
				continue
			}
			prev, exists := seen[gene]
			if !exists {
				seen[gene] = entry{record: rec, priority: c.Priority}
				order = append(order, gene)
				continue
			}
			if c.Priority < prev.priority {
				seen[gene] = entry{record: rec, priority: c.Priority}
			}
		}
	}

	sort.Strings(order)
	out := make([]map[string]any, 0, len(order))
	for _, gene := range order {
		out = append(out, seen[gene].record)
	}
	return out
}
