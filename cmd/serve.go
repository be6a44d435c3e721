package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the candidate ranking HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "port to listen on")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func serve() error {
	log, err := getLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := getConfig()
	if err != nil {
		return err
	}

	a := buildAgent(cfg, log)
	server := api.NewServer(a, cfg.DefaultCriteria(), log)

	log.Info("starting candidate-ranker API",
		zap.String("port", cfg.Port),
		zap.String("uploads_dir", cfg.UploadsDir))

	return http.ListenAndServe(":"+cfg.Port, server.Router())
}
