package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/relay"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the completion relay over HTTP",
	Long: "Serve POST /api/chat, which forwards an OpenAI-style message list to the configured\n" +
		"LLM provider and returns an OpenAI-style completion. The API key stays on the server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.Relay.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		if e.provider == nil {
			e.log.Warn("Serving without an LLM provider; /api/chat will return 500")
		}

		ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := relay.New(e.provider, relay.Config{
			CORSOrigins: e.cfg.Relay.CORSOrigins,
			RateLimit:   e.cfg.Relay.RateLimit,
			MaxTokens:   e.cfg.Relay.MaxTokens,
			Temperature: e.cfg.Relay.Temperature,
		}, e.log)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from relay.addr, \":8080\")")
}
