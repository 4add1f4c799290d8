// Package main provides the xcsh CLI application entry point.
// xcsh is an interactive shell for navigating and operating a large
// API-defined command surface from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xcsh/internal/client"
	"xcsh/internal/commands/cloudstatus"
	"xcsh/internal/commands/login"
	"xcsh/internal/completion"
	"xcsh/internal/config"
	"xcsh/internal/executor"
	"xcsh/internal/logger"
	"xcsh/internal/navigation"
	"xcsh/internal/registry"
	"xcsh/internal/session"
	"xcsh/internal/shell"
	"xcsh/internal/version"
)

var (
	logLevel    string
	logFile     string
	profileName string
	namespace   string
)

// rootCmd starts the interactive shell when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "xcsh",
	Short: "xcsh - interactive distributed cloud shell",
	Long: `xcsh is an interactive shell over a large API-defined command surface.
Navigate into domains and actions, run API operations against the
configured tenant, and use tab completion for domains, actions, flags
and live resource names.`,
	RunE: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	RunE:  runShell,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Detailed())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Connection profile to use for this run")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", "Initial namespace")

	for _, flag := range []string{"log-level", "log-file", "profile", "namespace"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix("XCSH")
	viper.AutomaticEnv()

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if err := logger.Configure(logLevel, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("starting xcsh", "version", version.Short())

	store, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	if profileName != "" {
		if err := store.Use(profileName); err != nil {
			return err
		}
	}

	history, err := session.NewHistoryManager(session.DefaultHistoryPath(), 1000)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
	}

	apiDomains := registry.NewAPIRegistry(registry.GeneratedAPIDomains())
	custom := registry.NewCustomRegistry()

	extensions := registry.NewExtensionRegistry()
	if err := extensions.Register(cloudstatus.New("")); err != nil {
		return err
	}

	validator := navigation.NewContextValidator(custom, extensions, apiDomains)

	resolved := store.Resolved()
	startNamespace := namespace
	if startNamespace == "" {
		startNamespace = resolved.Namespace
	}

	sess := session.New(session.Options{
		Validator:   validator,
		History:     history,
		Namespace:   startNamespace,
		ProfileName: store.Active,
	})

	connect := func(name string, p config.Profile) error {
		apiClient, err := client.New(client.Config{ServerURL: p.ServerURL, APIToken: p.APIToken})
		if err != nil {
			return err
		}
		sess.SetClient(apiClient)
		tenant := p.Tenant
		if tenant == "" {
			tenant = client.ExtractTenant(p.ServerURL)
		}
		sess.SetTenant(tenant)
		sess.SetProfileName(name)
		if p.Namespace != "" {
			sess.SetNamespace(p.Namespace)
		}
		return nil
	}

	if err := custom.Register(login.New(store, connect)); err != nil {
		return err
	}

	if resolved.ServerURL != "" {
		if err := connect(store.Active, resolved); err != nil {
			logger.Warn("initial connection setup failed", "error", err)
		}
	}

	resolver := registry.NewResolver(custom, extensions, apiDomains)
	completer := completion.New(sess, resolver)
	exec := executor.New(sess, resolver, completer, version.Short())

	return shell.New(sess, exec, completer).Run(context.Background())
}
