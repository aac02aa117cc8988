package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	attribution "github.com/goliatone/go-attribution/components/attribution"
)

type cli struct {
	Generate  generateCmd  `cmd:"" help:"Generate a synthetic outreach dataset."`
	Breakdown breakdownCmd `cmd:"" help:"Print per-dimension metric totals for a synthetic dataset."`
	Scaffold  scaffoldCmd  `cmd:"" help:"Scaffold a widget definition, provider stub, and manifest entry."`
	Manifest  manifestCmd  `cmd:"" help:"Validate a widget manifest file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Tooling for the outreach attribution board."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type generateCmd struct {
	Days   int    `default:"121" help:"Window length in days, anchor day included."`
	Seed   int64  `help:"Deterministic seed; omit for a time-based seed."`
	Anchor string `help:"Anchor date (YYYY-MM-DD); defaults to today."`
	Format string `default:"csv" enum:"csv,json,yaml" help:"Output format."`
	Out    string `type:"path" help:"Output file; defaults to stdout."`
}

func (cmd *generateCmd) Run(_ context.Context) error {
	records, err := cmd.generate()
	if err != nil {
		return err
	}
	out := os.Stdout
	if cmd.Out != "" {
		file, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("attributionctl: create output: %w", err)
		}
		defer file.Close()
		out = file
	}
	switch cmd.Format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(records)
	default:
		return writeCSV(out, records)
	}
}

func (cmd *generateCmd) generate() ([]attribution.Record, error) {
	opts := attribution.GeneratorOptions{WindowDays: cmd.Days}
	if cmd.Anchor != "" {
		anchor, err := time.Parse(time.DateOnly, cmd.Anchor)
		if err != nil {
			return nil, fmt.Errorf("attributionctl: parse anchor: %w", err)
		}
		opts.Anchor = anchor.UTC()
	}
	if cmd.Seed != 0 {
		opts.Entropy = rand.New(rand.NewSource(cmd.Seed))
	}
	return attribution.GenerateDataset(opts), nil
}

func writeCSV(out *os.File, records []attribution.Record) error {
	writer := csv.NewWriter(out)
	header := []string{
		"date", "display_date",
		"region", "persona", "inbox_provider", "campaign_name", "ttl_bucket", "revenue_range",
		"emails_sent", "replies", "positive_replies", "meetings_booked", "bounces",
		"estimated_pipeline_value",
		"planned_sent", "planned_replies", "planned_mqls", "planned_sqls", "planned_bounces",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format(time.DateOnly), r.DisplayDate,
			r.Region, r.Persona, r.InboxProvider, r.CampaignName, r.TTLBucket, r.RevenueRange,
			strconv.Itoa(r.EmailsSent), strconv.Itoa(r.Replies), strconv.Itoa(r.PositiveReplies),
			strconv.Itoa(r.MeetingsBooked), strconv.Itoa(r.Bounces),
			strconv.Itoa(r.PipelineValue),
			strconv.Itoa(r.PlannedSent), strconv.Itoa(r.PlannedReplies), strconv.Itoa(r.PlannedMQLs),
			strconv.Itoa(r.PlannedSQLs), strconv.Itoa(r.PlannedBounces),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type breakdownCmd struct {
	Dimension string `required:"" help:"Dimension to group by (region, persona, inbox_provider, campaign_name, ttl_bucket, revenue_range)."`
	Metric    string `default:"emails_sent" help:"Metric column to sum."`
	Days      int    `default:"121" help:"Window length in days."`
	Seed      int64  `default:"1" help:"Deterministic seed."`
}

func (cmd *breakdownCmd) Run(_ context.Context) error {
	dim, ok := attribution.ParseDimension(cmd.Dimension)
	if !ok {
		return fmt.Errorf("attributionctl: unknown dimension %q", cmd.Dimension)
	}
	metric, ok := attribution.ParseMetric(cmd.Metric)
	if !ok {
		return fmt.Errorf("attributionctl: unknown metric %q", cmd.Metric)
	}
	records := attribution.GenerateDataset(attribution.GeneratorOptions{
		WindowDays: cmd.Days,
		Entropy:    rand.New(rand.NewSource(cmd.Seed)),
	})
	breakdown := attribution.BreakdownBy(records, dim, metric)
	fmt.Printf("%s by %s (%d days, seed %d)\n\n", metric.Label(), dim.Label(), cmd.Days, cmd.Seed)
	for _, entry := range breakdown.Entries {
		fmt.Printf("%-24s %12d %6.1f%%\n", entry.Value, entry.Sum, breakdown.Share(entry))
	}
	fmt.Printf("%-24s %12d\n", "total", breakdown.Total)
	return nil
}

type manifestCmd struct {
	Path string `arg:"" type:"path" help:"Manifest YAML/JSON file to validate."`
}

func (cmd *manifestCmd) Run(_ context.Context) error {
	doc, err := attribution.ReadManifest(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s is valid (%d widgets, version %s)\n", cmd.Path, len(doc.Widgets), doc.Version)
	for _, widget := range doc.Widgets {
		fmt.Printf("  %-40s %s\n", widget.Definition.Code, widget.Definition.Name)
	}
	return nil
}

type scaffoldCmd struct {
	Code            string   `required:"" help:"Fully-qualified widget code (e.g. acme.widget.stats)."`
	Name            string   `required:"" help:"Display name for the widget."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"custom" help:"Widget category (charts, stats, tables, etc.)."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the widget manifest YAML/JSON file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	Capabilities    []string `help:"Provider capability labels (html,json,sse,...)."`
	DocsURL         string   `help:"Link to provider documentation."`
	Channel         string   `help:"Distribution channel label (community, partner, internal)."`
	ProviderPackage string   `default:"github.com/goliatone/go-attribution/components/attribution" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/attribution/providers/<code>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("attributionctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Definition.Code == cmd.Code {
				return fmt.Errorf("attributionctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Code)
	providerType := baseName + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := attribution.ManifestWidget{
		Definition: attribution.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Provider: attribution.ManifestProvider{
			Name:         fmt.Sprintf("%s Provider", cmd.Name),
			Summary:      cmd.Description,
			Entry:        providerEntry,
			Package:      cmd.ProviderPackage,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Definition.Code == cmd.Code {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Definition.Code < doc.Widgets[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s (provider entry recorded as %s)\n", cmd.Code, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "attribution", "providers", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.Code)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("attributionctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("attributionctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("attributionctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*attribution.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &attribution.WidgetManifestDocument{
				Version: attribution.ManifestVersion,
				Widgets: []attribution.ManifestWidget{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("attributionctl: stat manifest: %w", err)
	}
	doc, err := attribution.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *attribution.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("attributionctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("attributionctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("attributionctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("attributionctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("attributionctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package attribution

import (
	"context"
)

// %s fetches data for %s widgets.
type %s struct{}

// New%s wires the provider into the board registry.
func New%s() Provider {
	return &%s{}
}

// Fetch retrieves the widget payload. Replace with your implementation.
func (p *%s) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	_ = meta
	return WidgetData{
		"message": "replace with real data",
	}, nil
}
`, providerType, code, providerType, providerType, providerType, providerType, providerType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("attributionctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := parts[len(parts)-1]
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}
