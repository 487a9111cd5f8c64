package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tustin/internal/analysis"
	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/config"
	"github.com/san-kum/tustin/internal/discretize"
	"github.com/san-kum/tustin/internal/export"
	"github.com/san-kum/tustin/internal/filter"
	"github.com/san-kum/tustin/internal/render"
	"github.com/san-kum/tustin/internal/tui"
)

var (
	tsVal      float64
	tsSym      string
	form       string
	latex      bool
	deriveAll  bool
	prewarp    float64
	setParams  []string
	configFile string
	preset     string
	steps      int
	points     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tustin",
		Short: "discrete-time equivalents of control transfer functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive browser when no command given
			return tui.Run()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list the catalogue",
		RunE:  listElements,
	}

	showCmd := &cobra.Command{
		Use:   "show [element]",
		Short: "show the continuous transfer function",
		Args:  cobra.ExactArgs(1),
		RunE:  showElement,
	}

	deriveCmd := &cobra.Command{
		Use:   "derive [element]",
		Short: "derive the discrete equivalent via the bilinear transform",
		Args:  cobra.MaximumNArgs(1),
		RunE:  deriveElement,
	}
	deriveCmd.Flags().BoolVar(&deriveAll, "all", false, "derive every catalogue element")
	deriveCmd.Flags().BoolVar(&latex, "latex", false, "emit LaTeX instead of terminal output")
	deriveCmd.Flags().StringVar(&form, "form", config.DefaultForm, "output form: z, z-1, recurrence, all")
	deriveCmd.Flags().StringVar(&tsSym, "ts-symbol", config.DefaultTsSym, "sampling period symbol")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "numeric coefficient table at bound parameter values",
		RunE:  coefficientTable,
	}

	stepCmd := &cobra.Command{
		Use:   "step [element]",
		Short: "plot the discrete step response",
		Args:  cobra.ExactArgs(1),
		RunE:  stepResponse,
	}
	stepCmd.Flags().IntVar(&steps, "steps", 80, "number of samples")

	bodeCmd := &cobra.Command{
		Use:   "bode [element]",
		Short: "compare continuous and discrete magnitude responses",
		Args:  cobra.ExactArgs(1),
		RunE:  bodeCompare,
	}
	bodeCmd.Flags().IntVar(&points, "points", 60, "frequency grid points")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export the realized coefficient table to CSV",
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export the realized coefficient table to JSON",
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [element]",
		Short: "list available presets for an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for element: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive catalogue browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	for _, c := range []*cobra.Command{tableCmd, stepCmd, bodeCmd, exportCSVCmd, exportJSONCmd} {
		c.Flags().Float64Var(&tsVal, "ts", config.DefaultTs, "sampling period value")
		c.Flags().Float64Var(&prewarp, "prewarp", 0, "prewarp frequency in rad/s (0 disables)")
		c.Flags().StringArrayVar(&setParams, "set", nil, "parameter override name=value (repeatable)")
		c.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		c.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	rootCmd.AddCommand(listCmd, showCmd, deriveCmd, tableCmd, stepCmd, bodeCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges defaults, preset, config file, and flags for one
// element, with flags taking precedence.
func resolveConfig(cmd *cobra.Command, element string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Element = element

	if preset != "" && element != "" {
		p := config.GetPreset(element, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(element))
		}
		cfg = clone(p)
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.TsSym = fileCfg.TsSym
		cfg.Ts = fileCfg.Ts
		cfg.Form = fileCfg.Form
		cfg.Prewarp = fileCfg.Prewarp
		for k, v := range fileCfg.Params {
			cfg.Params[k] = v
		}
	}

	if cmd.Flags().Changed("ts") {
		cfg.Ts = tsVal
	}
	if cmd.Flags().Changed("prewarp") {
		cfg.Prewarp = prewarp
	}
	for _, kv := range setParams {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set value %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set value %q: %w", kv, err)
		}
		cfg.Params[name] = v
	}
	return cfg, nil
}

func clone(c *config.Config) *config.Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	if out.TsSym == "" {
		out.TsSym = config.DefaultTsSym
	}
	return &out
}

// realize derives and realizes one element under the resolved config,
// honoring the prewarp frequency when set.
func realize(cfg *config.Config, el catalog.Element) (*discretize.Discrete, filter.Coefficients, error) {
	d, err := discretize.Tustin(el, cfg.TsSym)
	if err != nil {
		return nil, filter.Coefficients{}, err
	}
	binding, err := cfg.Binding(el)
	if err != nil {
		return nil, filter.Coefficients{}, err
	}
	var c filter.Coefficients
	if cfg.Prewarp > 0 {
		c, err = d.RealizePrewarped(binding, cfg.Ts, cfg.Prewarp)
	} else {
		c, err = d.Realize(binding, cfg.Ts)
	}
	if err != nil {
		return nil, filter.Coefficients{}, err
	}
	return d, c, nil
}

func listElements(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tH(s)\tPARAMS\tDESCRIPTION")
	for _, el := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			el.Name,
			el.H.Simplify(),
			strings.Join(el.ParamNames(), ","),
			el.Description,
		)
	}
	return w.Flush()
}

func showElement(cmd *cobra.Command, args []string) error {
	el, err := catalog.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n\n", el.Name, el.Description)
	fmt.Printf("  %s\n\n", render.Continuous(el))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tDEFAULT")
	for _, p := range el.Params {
		fmt.Fprintf(w, "%s\t%g\n", p.Name, p.Default)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if names := config.ListPresets(el.Name); len(names) > 0 {
		fmt.Printf("\npresets: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func deriveElement(cmd *cobra.Command, args []string) error {
	f, err := render.ParseForm(form)
	if err != nil {
		return err
	}

	var elements []catalog.Element
	if deriveAll {
		elements = catalog.List()
	} else {
		if len(args) != 1 {
			return fmt.Errorf("element name required unless --all is given")
		}
		el, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		elements = []catalog.Element{el}
	}

	for i, el := range elements {
		d, err := discretize.Tustin(el, tsSym)
		if err != nil {
			return err
		}
		if latex {
			fmt.Println(render.LaTeXReport(d))
		} else {
			fmt.Println(render.Report(d, f))
		}
		if i < len(elements)-1 {
			fmt.Println(strings.Repeat("-", 64))
		}
	}
	return nil
}

func coefficientTable(cmd *cobra.Command, args []string) error {
	rows, err := buildRows(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ELEMENT\tB (z^-1)\tA (z^-1)")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Element, floats(r.B), floats(r.A))
	}
	return w.Flush()
}

func buildRows(cmd *cobra.Command) ([]export.Row, error) {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return nil, err
	}

	// Per element: preset params where the element defines the named preset,
	// then --set overrides where the parameter exists
	overrides := make(map[string]map[string]float64)
	for _, el := range catalog.List() {
		merged := make(map[string]float64)
		if preset != "" {
			if p := config.GetPreset(el.Name, preset); p != nil {
				for name, v := range p.Params {
					merged[name] = v
				}
			}
		}
		defaults := el.Defaults()
		for name, v := range cfg.Params {
			if _, ok := defaults[name]; ok {
				merged[name] = v
			}
		}
		if len(merged) > 0 {
			overrides[el.Name] = merged
		}
	}
	return export.Build(cfg.TsSym, cfg.Ts, cfg.Prewarp, overrides)
}

func floats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func stepResponse(cmd *cobra.Command, args []string) error {
	el, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, el.Name)
	if err != nil {
		return err
	}

	_, c, err := realize(cfg, el)
	if err != nil {
		return err
	}
	out, err := filter.Step(c, steps)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(out,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s step response (Ts=%g)", el.Name, cfg.Ts)),
	)
	fmt.Println(graph)
	return nil
}

func bodeCompare(cmd *cobra.Command, args []string) error {
	el, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, el.Name)
	if err != nil {
		return err
	}

	d, err := discretize.Tustin(el, cfg.TsSym)
	if err != nil {
		return err
	}
	binding, err := cfg.Binding(el)
	if err != nil {
		return err
	}

	r, err := analysis.Compare(d, binding, cfg.Ts, cfg.Prewarp, points)
	if err != nil {
		return err
	}

	fmt.Printf("%s magnitude response, log grid up to Nyquist (Ts=%g)\n\n", el.Name, cfg.Ts)
	fmt.Println(asciigraph.Plot(r.ContMag,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("continuous |H(jw)|"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(r.DiscMag,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("discrete |H(e^jwTs)|"),
	))
	fmt.Println()
	fmt.Printf("worst relative error: %.4g at w = %.4g rad/s\n", r.WorstErr, r.WorstW)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	rows, err := buildRows(cmd)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, rows)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	rows, err := buildRows(cmd)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, rows)
}
