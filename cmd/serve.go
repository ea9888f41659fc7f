package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire and predictions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		quiet, _ := cmd.Flags().GetBool("quiet")
		gin.SetMode(gin.ReleaseMode)

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		predictor, err := loadPredictor(cmd)
		if err != nil {
			return err
		}
		defer predictor.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(predictor, s.AssessmentRepo(), s.EventRepo(), server.Options{Quiet: quiet})
		fmt.Fprintf(os.Stderr, "mindcheck %s listening on %s (model %s)\n", version, addr, predictor.ModelVersion())
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().Bool("quiet", false, "Disable request logging")
}
