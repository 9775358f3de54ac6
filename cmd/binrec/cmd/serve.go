/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/api"
	"github.com/ssargent/binrec/pkg/config"
	"github.com/ssargent/binrec/pkg/schemafile"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the binrec REST API server",
	Long: `Start the binrec REST API server. The server exposes the compiled
schema set for introspection and converts records between packed
buffers and JSON field maps.

With --config the server bootstraps a configuration file on first run,
generating a secure API key. Without it, --schema and --api-key select
the schema document and the key directly.

Examples:
  binrec serve --schema doom.yaml --api-key=mysecretkey --port 8080
  binrec serve --config ./binrec.yaml
  binrec serve --config ./binrec.yaml --print-keys`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, _ := cmd.Flags().GetString("schema")
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		configPath, _ := cmd.Flags().GetString("config")
		printKeys, _ := cmd.Flags().GetBool("print-keys")

		var cfg *config.Config
		var err error

		if configPath != "" {
			if config.ConfigExists(configPath) {
				// Load existing config
				cfg, err = config.LoadConfig(configPath)
				if err != nil {
					cmd.Printf("Error loading existing config: %v\n", err)
					os.Exit(1)
				}
				cmd.Printf("✅ Loaded existing configuration from %s\n", configPath)
			} else {
				// Bootstrap new config
				cmd.Printf("🔧 First run detected. Bootstrapping binrec...\n")

				cfg, err = config.BootstrapConfig(configPath, schemaPath)
				if err != nil {
					cmd.Printf("Error bootstrapping config: %v\n", err)
					os.Exit(1)
				}

				cmd.Printf("✅ Configuration created at %s\n", configPath)

				if printKeys {
					cmd.Printf("\n🔑 Generated API Key: %s\n", cfg.Security.APIKey)
					cmd.Printf("\n⚠️  Store this key securely! It is also saved in %s\n", configPath)
				}
			}
		} else {
			cfg = config.DefaultConfig()
			cfg.Security.APIKey = ""
		}

		// Override config with command line flags if provided
		if schemaPath != "" {
			cfg.SchemaFile = schemaPath
		}
		if port != 8080 { // Only override if explicitly set
			cfg.Port = port
		}
		if bind != "127.0.0.1" { // Only override if explicitly set
			cfg.Bind = bind
		}
		if apiKey != "" {
			cfg.Security.APIKey = apiKey
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			cmd.Printf("Error: --api-key is required when the config file does not provide one\n")
			os.Exit(1)
		}

		// Compile the schema set the server will expose
		set, err := schemafile.Load(cfg.SchemaFile)
		if err != nil {
			cmd.Printf("Error loading schemas: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("🚀 Starting binrec server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📄 Schema file: %s (%d types)\n", cfg.SchemaFile, len(set.Names()))

		if container == nil {
			cmd.Printf("Error: dependency container not initialized\n")
			os.Exit(1)
		}

		serverFactory := container.GetServerFactory()
		serverStarter := serverFactory.CreateServerStarter()

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		}

		if err := serverStarter.StartServer(set, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key protecting the record endpoints")
	serveCmd.Flags().String("config", "", "Path to config file (bootstrapped on first run)")
	serveCmd.Flags().Bool("print-keys", false, "Print the generated API key to console")
}
