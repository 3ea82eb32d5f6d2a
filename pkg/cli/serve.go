package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	controller "github.com/m-mizutani/herald/pkg/controller/http"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// pipelineConfig is the configuration shared by commands running the
// notification pipeline
type pipelineConfig struct {
	file     string
	webhook  config.Webhook
	youtrack config.YouTrack
}

func (p *pipelineConfig) Flags() []cli.Flag {
	flags := []cli.Flag{config.ConfigFileFlag(&p.file)}
	flags = append(flags, p.webhook.Flags()...)
	return append(flags, p.youtrack.Flags()...)
}

// load applies the config file, if any, to flags left unset
func (p *pipelineConfig) load(c *cli.Command, server *config.Server) error {
	if p.file == "" {
		return nil
	}

	f, err := config.LoadFile(p.file)
	if err != nil {
		return err
	}
	if server != nil {
		f.ApplyServer(c, server)
	}
	if err := f.ApplyWebhook(c, &p.webhook); err != nil {
		return err
	}
	return f.ApplyYouTrack(c, &p.youtrack)
}

// newNotify builds the notification use case around dispatcher
func (p *pipelineConfig) newNotify(dispatcher interfaces.Dispatcher) (interfaces.NotifyUseCase, error) {
	if !p.webhook.EmissionMode().IsValid() {
		return nil, goerr.New("invalid emission mode", goerr.V("mode", p.webhook.Mode))
	}

	directory, err := p.youtrack.NewDirectory()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user directory")
	}

	return usecase.NewNotify(dispatcher, directory,
		usecase.WithEmissionMode(p.webhook.EmissionMode()),
		usecase.WithBaseURL(p.webhook.BaseURL),
	), nil
}

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		pipelineCfg pipelineConfig
	)

	flags := append(serverCfg.Flags(), pipelineCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving issue updates",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := pipelineCfg.load(c, &serverCfg); err != nil {
				return err
			}

			logger.Info("Starting herald server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("webhook", pipelineCfg.webhook),
				slog.Any("youtrack", pipelineCfg.youtrack),
			)

			dispatcher, err := pipelineCfg.webhook.NewDispatcher()
			if err != nil {
				return goerr.Wrap(err, "failed to create webhook dispatcher")
			}

			notifyUC, err := pipelineCfg.newNotify(dispatcher)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				notifyUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithUpdateSecret(serverCfg.Secret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
