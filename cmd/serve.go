package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/teachpad/learning-assist/internal/auth"
	"github.com/teachpad/learning-assist/internal/core"
	"github.com/teachpad/learning-assist/internal/provider"
	"github.com/teachpad/learning-assist/internal/provider/claude"
	"github.com/teachpad/learning-assist/internal/provider/gemini"
	"github.com/teachpad/learning-assist/internal/server"
	"github.com/teachpad/learning-assist/internal/store"
)

var listenAddr string

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "addr", "a", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()

		if config.JWTSecret == "" {
			fmt.Println("LA_JWT_SECRET must be set to run the server")
			os.Exit(1)
		}

		st, err := store.Open(config.ConfigFile.Database.Path)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer st.Close()

		registry := provider.NewRegistry()
		if config.GeminiAPIKey != "" {
			registry.Register("gemini", gemini.NewClient(config.GeminiAPIKey))
		}
		if config.ClaudeAPIKey != "" {
			registry.Register("claude", claude.NewClient(config.ClaudeAPIKey))
		}
		if config.GeminiAPIKey == "" && config.ClaudeAPIKey == "" {
			color.Yellow("No AI provider key configured; /api/ai endpoints will fail")
		}

		authService := auth.NewService(config.JWTSecret, st)
		srv := server.NewServer(st, registry, authService, config)

		addr := listenAddr
		if addr == "" {
			addr = config.ConfigFile.Server.ListenAddr
		}
		color.Green("Listening on http://%s", addr)
		if err := http.ListenAndServe(addr, srv); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}
