package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynwire/internal/compose"
	"github.com/san-kum/dynwire/internal/config"
	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/experiment"
	"github.com/san-kum/dynwire/internal/metrics"
	"github.com/san-kum/dynwire/internal/sim"
	"github.com/san-kum/dynwire/internal/store"
	"github.com/san-kum/dynwire/internal/viz"
	"github.com/san-kum/dynwire/internal/wiring"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	integrator string
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynwire",
		Short: "compose and simulate open dynamical systems",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynwire", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "compose a network and simulate it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNetwork,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "network description (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's exposed ports",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "chart height")

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "show a network's merged state space",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectNetwork,
	}
	inspectCmd.Flags().StringVar(&configFile, "config", "", "network description (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a network evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveNetwork,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "network description (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available box models and presets",
		Run: func(cmd *cobra.Command, args []string) {
			reg := experiment.NewRegistry()
			fmt.Println("models: " + strings.Join(reg.ListModels(), ", "))
			fmt.Println("presets: " + strings.Join(config.ListPresets(), ", "))
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, inspectCmd, liveCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfig(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := "lotka"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (have: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func buildComposite(cfg *config.Config) (*compose.Composite, *wiring.Diagram, dynamo.State, error) {
	reg := experiment.NewRegistry()
	d, xs, err := cfg.Build(reg)
	if err != nil {
		return nil, nil, nil, err
	}
	comp, err := compose.Compose(d, xs)
	if err != nil {
		return nil, nil, nil, err
	}
	u0, err := cfg.InitialState(comp)
	if err != nil {
		return nil, nil, nil, err
	}
	return comp, d, u0, nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	if duration > 0 {
		cfg.Sim.Duration = duration
	}
	if integrator != "" {
		cfg.Sim.Integrator = integrator
	}

	comp, _, u0, err := buildComposite(cfg)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	stepper, err := reg.GetIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}

	driver := sim.New()
	driver.AddMetric(metrics.NewPeak())
	driver.AddMetric(metrics.NewStability(1e6))

	simCfg := sim.Config{Dt: cfg.Sim.Dt, Duration: cfg.Sim.Duration, ValidateState: true}
	result, err := driver.Solve(context.Background(), comp.Sharer, u0, nil, simCfg, stepper)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, cfg.Sim.Dt, cfg.Sim.Duration, cfg.Sim.Integrator, result)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", runID)
	fmt.Fprintf(w, "network\t%s\n", cfg.Name)
	fmt.Fprintf(w, "merged states\t%d\n", comp.Sharer.NStates())
	fmt.Fprintf(w, "exposed ports\t%s\n", strings.Join(result.Labels, ", "))
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	for name, v := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.4f\n", name, v)
	}
	w.Flush()
	fmt.Println()
	fmt.Print(viz.PlotPorts(result, 70, 8))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNETWORK\tDT\tDURATION\tINTEGRATOR\tPORTS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\t%s\t%s\n",
			r.ID, r.Network, r.Dt, r.Duration, r.Integrator, strings.Join(r.Ports, ","))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, cols, _, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	for i, label := range meta.Ports {
		col := meta.States + i
		if col >= len(cols) {
			break
		}
		fmt.Print(viz.PlotSeries(label, cols[col], plotWidth, plotHeight))
	}
	return nil
}

func inspectNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	comp, d, _, err := buildComposite(cfg)
	if err != nil {
		return err
	}

	exposed := make(map[int][]string)
	for i, s := range comp.Sharer.PortMap() {
		exposed[s] = append(exposed[s], string(comp.Sharer.Iface.Port(i)))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "network\t%s\n", cfg.Name)
	fmt.Fprintf(w, "boxes\t%d\tjunctions\t%d\n", d.NBoxes(), d.NJunctions())
	fmt.Fprintf(w, "merged states\t%d\n\n", comp.Sharer.NStates())
	fmt.Fprintln(w, "STATE\tMEMBERS\tEXPOSED AS")
	for cls, pre := range comp.Preimages {
		members := make([]string, 0, len(pre))
		for _, g := range pre {
			b := boxOf(comp.Offsets, g)
			members = append(members, fmt.Sprintf("%s[%d]", d.BoxName(b), g-comp.Offsets[b]))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", cls, strings.Join(members, " "), strings.Join(exposed[cls], " "))
	}
	return w.Flush()
}

func boxOf(offsets []int, g int) int {
	b := 0
	for b+1 < len(offsets) && offsets[b+1] <= g {
		b++
	}
	return b
}

func liveNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	comp, _, u0, err := buildComposite(cfg)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	stepper, err := reg.GetIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	m, err := viz.NewModel(cfg.Name, comp.Sharer, stepper, u0, nil, cfg.Sim.Dt)
	if err != nil {
		return err
	}
	return viz.Run(m)
}
