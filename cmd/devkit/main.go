package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devkit-cli/devkit/internal/bump"
	"github.com/devkit-cli/devkit/internal/config"
	"github.com/devkit-cli/devkit/internal/gitops"
	"github.com/devkit-cli/devkit/internal/manifest"
	"github.com/devkit-cli/devkit/internal/semver"
	"github.com/devkit-cli/devkit/internal/utils"
	"github.com/devkit-cli/devkit/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devkit",
	Short: "Developer utilities for dependency-managed projects",
	Long: utils.Dedent(`
		devkit bundles the release chores of dependency-managed projects:
		it bumps the semantic version recorded in the project manifest
		(pyproject.toml, package.json, Cargo.toml, and friends) and records
		the release as a git commit and annotated tag.`),
	Version: version.Short(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.devkit/config.yaml)")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Manifest file (default: auto-detect in current directory)")
	rootCmd.PersistentFlags().String("version-key", "", "Dotted keypath of the version field (default: probe well-known locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bump flags
	bumpCmd.Flags().Bool("skip-git", false, "Bump the manifest only, no commit or tag")
	bumpCmd.Flags().Bool("ignore-status", false, "Proceed even when the git worktree is dirty")
	bumpCmd.Flags().String("tag-prefix", config.DefaultTagPrefix, "Prefix for the release tag")
	bumpCmd.Flags().Bool("dry-run", false, "Report the bump without writing anything")

	// Bind flags to viper
	_ = viper.BindPFlag("manifest.path", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("manifest.version_key", rootCmd.PersistentFlags().Lookup("version-key"))
	_ = viper.BindPFlag("git.tag_prefix", bumpCmd.Flags().Lookup("tag-prefix"))

	// Add subcommands
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// newLogger builds the CLI logger from loaded config and the -v flag
func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Verbose: verbose,
	})
}

var bumpCmd = &cobra.Command{
	Use:   "bump [major|minor|patch|prerelease]",
	Short: "Bump the project version",
	Long: utils.Dedent(`
		Bump reads the manifest's current semantic version, increments the
		requested component (patch when omitted), rewrites the manifest
		preserving everything else, then commits the change and tags it.

		The manifest write is all-or-nothing: on any failure the file is
		left exactly as it was.`),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: semver.Kinds,
	RunE:      runBump,
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	kind := semver.BumpPatch
	if len(args) > 0 {
		kind = args[0]
	}
	if !semver.IsKind(kind) {
		return fmt.Errorf("%w: %q (expected one of %v)", semver.ErrUnknownKind, kind, semver.Kinds)
	}

	skipGit, _ := cmd.Flags().GetBool("skip-git")
	ignoreStatus, _ := cmd.Flags().GetBool("ignore-status")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if !cfg.Git.RequireClean {
		ignoreStatus = true
	}

	engine := bump.New(bump.Options{
		ManifestPath: cfg.Manifest.Path,
		VersionKey:   cfg.Manifest.VersionKey,
		Kind:         kind,
		TagPrefix:    cfg.Git.TagPrefix,
		SkipGit:      skipGit,
		IgnoreStatus: ignoreStatus,
		DryRun:       dryRun,
		Logger:       log,
	})

	res, err := engine.Run()
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("%s: %s -> %s (dry run)\n", res.ManifestPath, res.Old, res.New)
		return nil
	}
	fmt.Printf("%s: %s -> %s\n", res.ManifestPath, res.Old, res.New)
	if res.Tag != "" {
		fmt.Printf("tagged %s\n", res.Tag)
	}
	return nil
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the project's current version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = newLogger(cfg)

		path := cfg.Manifest.Path
		if path == "" {
			path, err = manifest.Detect(".")
			if err != nil {
				return err
			}
		}

		m, err := manifest.Load(path, cfg.Manifest.VersionKey)
		if err != nil {
			return err
		}
		fmt.Println(m.Version())
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project environment",
	Long:  "Verifies that the manifest, git repository, and devkit configuration are usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking project environment...")
		allPassed := true

		// Check 1: Config
		fmt.Print("  Config: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("WARN (%v)\n", err)
			cfg = config.Default()
		} else {
			fmt.Println("OK")
		}

		// Check 2: Manifest
		fmt.Print("  Manifest: ")
		path := cfg.Manifest.Path
		var detectErr error
		if path == "" {
			path, detectErr = manifest.Detect(".")
		}
		if detectErr != nil {
			fmt.Println("NOT FOUND")
			allPassed = false
		} else if m, mErr := manifest.Load(path, cfg.Manifest.VersionKey); mErr != nil {
			fmt.Printf("FAILED (%v)\n", mErr)
			allPassed = false
		} else {
			fmt.Printf("OK (%s, version %s at %s)\n", path, m.Version(), m.VersionKey())

			// Check 3: Write permissions
			fmt.Print("  Write permissions: ")
			if utils.IsWritableDir(".") {
				fmt.Println("OK")
			} else {
				fmt.Println("FAILED")
				allPassed = false
			}
		}

		// Check 4: Git repository
		fmt.Print("  Git repository: ")
		if client, gErr := gitops.Open("."); gErr != nil {
			fmt.Println("NOT FOUND (bump will need --skip-git)")
		} else if clean, cErr := client.IsClean(); cErr != nil {
			fmt.Printf("WARN (%v)\n", cErr)
		} else if clean {
			fmt.Println("OK (worktree clean)")
		} else {
			fmt.Println("OK (worktree dirty; bump will need --ignore-status)")
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All critical checks passed!")
		} else {
			fmt.Println("Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
