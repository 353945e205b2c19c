// SPDX-License-Identifier: MIT

// Command crnc compiles a reaction network model into mass-action form.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crnc/compile"
	"github.com/katalvlaran/crnc/internal/config"
	"github.com/katalvlaran/crnc/internal/model"
	"github.com/katalvlaran/crnc/symbol"
)

var (
	rootCmd = &cobra.Command{
		Use:   "crnc",
		Short: "Chemical reaction network compiler",
	}
	cfgPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "crnc.yaml", "Path to the configuration file (YAML)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the config file; a missing default file means defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.LoadConfig(path)
}

var compileCmd = &cobra.Command{
	Use:   "compile <model.yaml>",
	Short: "Compile the model's sample and print reactions, state and reports",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		style := cfg.NewStyle()

		// 1. Load model
		gen := symbol.NewGenerator()
		m, err := model.LoadFile(args[0], gen, cfg.Compile.LNA)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		env, err := m.Env(cfg.Params)
		if err != nil {
			log.Fatalf("Failed to bind params: %v", err)
		}

		// 2. Compile
		reg := prometheus.NewRegistry()
		metrics, err := compile.NewMetrics(reg)
		if err != nil {
			log.Fatalf("Failed to register metrics: %v", err)
		}
		opts := []compile.Option{
			compile.WithStyle(style),
			compile.WithParams(env),
			compile.WithMetrics(metrics),
		}
		if cfg.Compile.Quiet {
			opts = append(opts, compile.WithLogger(nil))
		}
		res, err := compile.MassCompileSample(m.Netlist, m.Sample, gen, opts...)
		if err != nil {
			log.Fatalf("Compilation failed: %v", err)
		}

		// 3. Print
		out := style.Fork()
		fmt.Println("reactions:")
		for _, r := range res.Reactions {
			fmt.Println("  " + r.Format(out))
		}
		fmt.Print(res.Sample.Format(out))
		for _, r := range m.Netlist.Reports() {
			fmt.Println(r.Format(out))
		}

		if cfg.Compile.Metrics {
			families, err := reg.Gather()
			if err != nil {
				log.Printf("metrics: %v", err)
				return
			}
			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
					log.Printf("metrics: %v", err)
				}
			}
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <model.yaml>",
	Short: "Load the model and print the resulting netlist without compiling",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		m, err := model.LoadFile(args[0], symbol.NewGenerator(), cfg.Compile.LNA)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		fmt.Print(m.Netlist.Format(cfg.NewStyle()))
		fmt.Printf("✅ %d entries\n", m.Netlist.Len())
	},
}
