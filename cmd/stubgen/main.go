package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stubgen/internal/config"
	"stubgen/internal/crawler"
	"stubgen/internal/escalation"
	"stubgen/internal/extractor"
	"stubgen/internal/llm"
	"stubgen/internal/logging"
	"stubgen/internal/pipeline"
)

const version = "0.3.0"

var (
	rootCmd = &cobra.Command{
		Use:   "stubgen",
		Short: "Generates XCTest scaffold code from Swift source",
	}
	configPath   string
	outPath      string
	noEscalation bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "stubgen.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Write the scaffold to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&noEscalation, "no-escalation", false, "Disable the generative-service fallback")

	batchCmd.Flags().StringVar(&batchMode, "mode", "unit", "Scaffold kind to generate: unit or ui")

	rootCmd.AddCommand(unitCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}

var unitCmd = &cobra.Command{
	Use:   "unit [source-file]",
	Short: "Generate a unit-test scaffold for the declarations in a Swift file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args, func(ctx context.Context, svc *pipeline.Service, src string) (string, error) {
			return svc.GenerateUnitTests(ctx, src)
		})
	},
}

var uiCmd = &cobra.Command{
	Use:   "ui [source-file]",
	Short: "Generate a UI-test scaffold for the SwiftUI view in a Swift file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args, func(ctx context.Context, svc *pipeline.Service, src string) (string, error) {
			return svc.GenerateUITests(ctx, src)
		})
	},
}

var batchMode string

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Generate scaffolds for every Swift file under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logging.Init(cfg)

		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		outDir := outPath
		if outDir == "" {
			outDir = root
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}

		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		var generated, failed int
		err = crawler.NewCrawler().ScanProject(root, func(path, source string) {
			scaffold, err := generateForMode(svc, source)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Warn("skipping file")
				failed++
				return
			}
			target := scaffoldPath(outDir, root, path, batchMode)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				logrus.WithError(err).WithField("path", target).Warn("failed to create output directory")
				failed++
				return
			}
			if err := os.WriteFile(target, []byte(scaffold), 0644); err != nil {
				logrus.WithError(err).WithField("path", target).Warn("failed to write scaffold")
				failed++
				return
			}
			generated++
		})
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"generated": generated, "failed": failed}).Info("batch complete")
		return nil
	},
}

func generateForMode(svc *pipeline.Service, source string) (string, error) {
	if batchMode == "ui" {
		return svc.GenerateUITests(context.Background(), source)
	}
	return svc.GenerateUnitTests(context.Background(), source)
}

// scaffoldPath mirrors the source file's location relative to root under
// outDir, so same-named sources in different directories never collide.
func scaffoldPath(outDir, root, sourcePath, mode string) string {
	rel, err := filepath.Rel(root, sourcePath)
	if err != nil {
		rel = filepath.Base(sourcePath)
	}
	base := strings.TrimSuffix(filepath.Base(rel), ".swift")
	suffix := "Tests.swift"
	if mode == "ui" {
		suffix = "UITests.swift"
	}
	return filepath.Join(outDir, filepath.Dir(rel), base+suffix)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the stubgen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stubgen", version)
	},
}

func runGenerate(args []string, generate func(context.Context, *pipeline.Service, string) (string, error)) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init(cfg)

	source, err := readSource(args)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	scaffold, err := generate(context.Background(), svc, source)
	if err != nil {
		return err
	}
	return writeResult(scaffold)
}

func buildService(cfg *config.Config) (*pipeline.Service, error) {
	ext := extractor.NewExtractor(cfg.Extraction.LookaheadBytes)

	var coordinator *escalation.Coordinator
	if cfg.Escalation.Enabled && !noEscalation && cfg.AI.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.Options{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
			BaseURL:  cfg.AI.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create generative client: %w", err)
		}
		timeout := time.Duration(cfg.Escalation.TimeoutSeconds) * time.Second
		coordinator = escalation.NewCoordinator(client, timeout)
	} else {
		logrus.Debug("escalation disabled, running local-only")
	}

	return pipeline.NewService(ext, coordinator), nil
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read source file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeResult(scaffold string) error {
	if outPath == "" {
		fmt.Print(scaffold)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(scaffold), 0644); err != nil {
		return fmt.Errorf("failed to write scaffold: %w", err)
	}
	logrus.WithField("path", outPath).Info("scaffold written")
	return nil
}
