package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/crud"
	"github.com/armature-dev/armature/crypt"
	"github.com/armature-dev/armature/internal/config"
	"github.com/armature-dev/armature/internal/db"
	"github.com/armature-dev/armature/internal/notes"
	"github.com/armature-dev/armature/internal/webui"
	"github.com/armature-dev/armature/router"
	"github.com/armature-dev/armature/view"
	"github.com/armature-dev/armature/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			var cipher *crypt.Cipher
			if cfg.Crypt.Key != "" {
				cipher, err = crypt.New(cfg.Crypt.Key, cfg.Crypt.IV)
				if err != nil {
					return err
				}
			}

			noteModel := notes.NewModel(database)

			// JSON API under /api/.
			api := router.NewTable()
			api.Resource("notes", crud.NewController(noteModel))
			apiDispatcher := router.New(api, router.WithLogger(logger))

			// Server-rendered pages on the bare path.
			views, err := view.NewRenderer(web.TemplateFS, "templates/views", "templates/layouts")
			if err != nil {
				return err
			}
			ui := router.NewTable()
			webui.New(noteModel, views, cipher).Register(ui)
			uiDispatcher := router.New(ui,
				router.WithPrefix(""),
				router.WithLogger(logger),
			)

			mux := http.NewServeMux()
			mux.Handle("/api/", apiDispatcher)
			mux.Handle("/", uiDispatcher)

			logger.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
			return http.ListenAndServe(cfg.HTTP.Addr, mux)
		},
	}
}
