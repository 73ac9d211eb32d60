package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"vexdoc/internal/config"
	"vexdoc/internal/crawler"
	"vexdoc/internal/pipeline"
	"vexdoc/internal/renderer"
)

var (
	rootCmd = &cobra.Command{
		Use:   "vexdoc",
		Short: "A fast, simple documentation generator for any programming language",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the VexDoc config file (TOML or YAML)")

	initCmd.Flags().String("dir", ".", "Directory where the config file should be created")

	generateCmd.Flags().StringSlice("files", nil, "Specific files to process (defaults to all matching files)")
	generateCmd.Flags().String("format", "html", "Output format: html or markdown")
	generateCmd.Flags().BoolP("verbose", "v", false, "Show detailed progress information for each file")
	generateCmd.Flags().BoolP("quiet", "q", false, "Suppress progress output and notices (useful for scripts)")

	cleanCmd.Flags().BoolP("quiet", "q", false, "Suppress output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cleanCmd)
}

// loadConfig reads and validates the project config; generation cannot run
// without a usable one.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("vexdoc: could not read config file: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("vexdoc: configuration error in %s: %v", configPath, err)
	}
	return cfg
}

func newRenderer(format string) renderer.Renderer {
	switch format {
	case "html":
		return renderer.NewHTML()
	case "markdown", "md":
		return renderer.NewMarkdown()
	default:
		log.Fatalf("vexdoc: unknown output format %q (want html or markdown)", format)
		return nil
	}
}

func projectFiles(cfg *config.Config) []string {
	files, err := crawler.New(cfg.IgnoredDirs, cfg.FileExtensions).Files(".")
	if err != nil {
		log.Fatalf("vexdoc: could not scan project files: %v", err)
	}
	return files
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new VexDoc project",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		path, err := config.WriteDefault(dir)
		if err != nil {
			log.Fatalf("vexdoc: could not create new config file: %v", err)
		}
		fmt.Printf("Created new, empty configuration file at %s\n", path)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documentation from your source files",
	Run: func(cmd *cobra.Command, args []string) {
		files, _ := cmd.Flags().GetStringSlice("files")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")

		cfg := loadConfig()
		if len(files) == 0 {
			files = projectFiles(cfg)
		}

		if !quiet {
			fmt.Printf("🚀 Documenting %d files...\n", len(files))
		}

		p := pipeline.New(cfg, newRenderer(format), os.Stdout, pipeline.Options{
			Verbose: verbose,
			Quiet:   quiet,
		})
		report, err := p.Generate(cmd.Context(), files)
		if err != nil {
			log.Fatalf("vexdoc: could not generate documentation: %v", err)
		}

		if !quiet {
			fmt.Printf("✅ Documented %d of %d files in %s (%d warnings)\n",
				report.Documented(), len(files), cfg.OutputDir, report.WarningCount())
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated pages whose source files are gone",
	Run: func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")

		cfg := loadConfig()
		p := pipeline.New(cfg, renderer.NewHTML(), os.Stdout, pipeline.Options{Quiet: quiet})

		removed, err := p.Clean(projectFiles(cfg))
		if err != nil {
			log.Fatalf("vexdoc: could not clean output directory: %v", err)
		}

		if !quiet {
			if len(removed) == 0 {
				fmt.Println("✅ No orphaned pages found.")
				return
			}
			for _, name := range removed {
				fmt.Printf("🧹 Removed orphaned page %s\n", name)
			}
		}
	},
}
