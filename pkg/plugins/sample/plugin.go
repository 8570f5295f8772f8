// pkg/plugins/sample/plugin.go
// Package sample reports sample-level QC metrics: the primary SNV count
// and the insert-size distribution of the sequencing run.
package sample

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/util/subprocess"
)

// Identifier names this plugin's configuration section.
const Identifier = "sample"

const (
	defaultPriority = 100

	paramTumourID     = "tumour_id"
	paramSNVCountFile = "snv_count_file"
	paramBamQCFile    = "bamqc_file"
	paramPlotScript   = "plot_script"

	snvCountSuffix       = ".SNP.count.txt"
	insertSizeCSV        = "insert_size_distribution.csv"
	insertSizeHistoField = "insert size histogram"
)

// Plugin implements the report plugin contract.
type Plugin struct {
	deps   plugin.Deps
	spec   *plugin.ParamSpec
	runner *subprocess.Runner
}

// New constructs a sample instance bound to its run deps.
func New(deps plugin.Deps) plugin.Plugin {
	return &Plugin{
		deps:   deps,
		runner: subprocess.NewRunner(deps.Logger),
	}
}

func init() {
	plugin.Register(Identifier, New)
}

// Specify declares the tumour identifier as discoverable from the core
// section and the input files as discoverable from the workspace.
func (p *Plugin) Specify(spec *plugin.ParamSpec) {
	spec.Discovered(paramTumourID, paramSNVCountFile)
	spec.Default(paramBamQCFile, config.NullValue)
	spec.Default(paramPlotScript, config.NullValue)
	spec.Default(plugin.KeyClinical, "true")
	spec.Default(plugin.KeySupplementary, "false")
	spec.SetPriority(defaultPriority)
	p.spec = spec
}

// Configure fills the tumour identifier from the resolved core section
// and discovers the SNV count file from the workspace when it was not
// supplied. Anything left undiscovered stays null for the orchestrator
// to reject.
func (p *Plugin) Configure(cc *plugin.ConfigContext) (*config.Section, error) {
	w := plugin.NewConfigWrapper(cc.Section, p.spec)
	w.ApplyDefaults()

	if w.IsNull(paramTumourID) {
		if v, ok := cc.CoreValue(paramTumourID); ok && v != config.NullValue {
			w.SetParam(paramTumourID, v)
			p.deps.Logger.Debug().Str("tumour_id", v).Msg("tumour id taken from core section")
		}
	}

	if w.IsNull(paramSNVCountFile) && !w.IsNull(paramTumourID) {
		name := w.GetString(paramTumourID) + snvCountSuffix
		if p.deps.Workspace.Has(name) {
			w.SetParam(paramSNVCountFile, p.deps.Workspace.Path(name))
			p.deps.Logger.Debug().Str("file", name).Msg("discovered SNV count file in workspace")
		} else {
			p.deps.Logger.Info().Str("file", name).Msg("SNV count file not staged; expecting manual config")
		}
	}
	return w.Section(), nil
}

// Extract parses the QC inputs and stages the insert-size distribution.
func (p *Plugin) Extract(sec *config.Section) (*report.PluginData, error) {
	w := plugin.NewConfigWrapper(sec, p.spec)

	snvCount, err := readSNVCount(w.GetString(paramSNVCountFile))
	if err != nil {
		return nil, err
	}

	pd := w.StartingData(Identifier)
	pd.Results = map[string]any{
		"tumour_id":         w.GetString(paramTumourID),
		"primary_snv_count": snvCount,
	}

	if !w.IsNull(paramBamQCFile) {
		histogram, err := readInsertSizeHistogram(w.GetString(paramBamQCFile))
		if err != nil {
			return nil, err
		}
		csvPath, err := p.writeDistribution(histogram)
		if err != nil {
			return nil, err
		}
		pd.Results["median_insert_size"] = medianFromHistogram(histogram)

		if !w.IsNull(paramPlotScript) {
			_, err := p.runner.Run(
				w.GetString(paramPlotScript),
				"--insert_size_file", csvPath,
				"--output_directory", p.deps.Workspace.Dir(),
			)
			if err != nil {
				return nil, err
			}
		}
	}
	return pd, nil
}

// Render emits the QC summary fragment after a final schema guard.
func (p *Plugin) Render(pd *report.PluginData) (string, error) {
	if err := p.deps.Validator.Validate(pd); err != nil {
		return "", err
	}
	fragment := fmt.Sprintf(
		"<section class=\"sample-qc\"><h3>Sample QC</h3><p>Primary SNV count: %v</p>",
		pd.Results["primary_snv_count"],
	)
	if median, ok := pd.Results["median_insert_size"]; ok {
		fragment += fmt.Sprintf("<p>Median insert size: %v</p>", median)
	}
	return fragment + "</section>", nil
}

// readSNVCount pulls the count from the first column of the last row of
// a tab-separated count file.
func readSNVCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open SNV count file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse SNV count file %q: %w", path, err)
	}
	if len(rows) == 0 || len(rows[len(rows)-1]) == 0 {
		return 0, fmt.Errorf("SNV count file %q is empty", path)
	}
	count, err := strconv.Atoi(rows[len(rows)-1][0])
	if err != nil {
		return 0, fmt.Errorf("bad SNV count in %q: %w", path, err)
	}
	return count, nil
}

// readInsertSizeHistogram loads the size->count histogram from a bamqc
// JSON file.
func readInsertSizeHistogram(path string) (map[int]int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bamqc file: %w", err)
	}
	var doc map[string]map[string]int
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse bamqc file %q: %w", path, err)
	}
	raw, ok := doc[insertSizeHistoField]
	if !ok {
		return nil, fmt.Errorf("bamqc file %q has no %q field", path, insertSizeHistoField)
	}
	histogram := make(map[int]int, len(raw))
	for sizeStr, count := range raw {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("bad insert size %q in %q", sizeStr, path)
		}
		histogram[size] = count
	}
	return histogram, nil
}

// writeDistribution stages the histogram as a size,count CSV artifact.
func (p *Plugin) writeDistribution(histogram map[int]int) (string, error) {
	sizes := make([]int, 0, len(histogram))
	for size := range histogram {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	rows := [][]string{{"size", "count"}}
	for _, size := range sizes {
		rows = append(rows, []string{strconv.Itoa(size), strconv.Itoa(histogram[size])})
	}
	return p.deps.Workspace.WriteCSV(insertSizeCSV, rows)
}

// medianFromHistogram returns the smallest size at which the cumulative
// count reaches half the total. For an even total this is the lower of
// the two middle values; the QC summary reports observed bin sizes and
// does not interpolate between bins.
func medianFromHistogram(histogram map[int]int) int {
	sizes := make([]int, 0, len(histogram))
	total := 0
	for size, count := range histogram {
		sizes = append(sizes, size)
		total += count
	}
	sort.Ints(sizes)

	half := (total + 1) / 2
	cumulative := 0
	for _, size := range sizes {
		cumulative += histogram[size]
		if cumulative >= half {
			return size
		}
	}
	return 0
}
