// Command ludo plays a Ludo-style race at the terminal.
//
// Commands:
//  1. play (default) – seats 4 to 6 players on one terminal and runs the game
//     until every player has won or someone quits
//  2. presets – lists the seating presets in the preset directory
//  3. records – lists or shows recorded game transcripts
//  4. mcp – runs an MCP stdio server that proxies to a running spectator server
//
// While playing, --spectate starts a read-only HTTP server with a REST API,
// a WebSocket frame stream and an /mcp endpoint, optionally tunneled through
// ngrok. Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/ludo/api"
	"github.com/wricardo/ludo/game/config"
	"github.com/wricardo/ludo/game/engine"
	"github.com/wricardo/ludo/game/service"
	"github.com/wricardo/ludo/game/session"
	"github.com/wricardo/ludo/transport/mcp"
	"github.com/wricardo/ludo/transport/terminal"
	"github.com/wricardo/ludo/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ludo Race"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("ludo failed")
	}
}

// newApp builds the command tree. Flags are also read from the environment
// variables config.Settings uses.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "ludo",
		Usage:   "play a Ludo race at the terminal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars("LUDO_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory containing seating presets",
				Sources: cli.EnvVars("LUDO_CONFIG_DIR"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			settings, err := loadSettings(cmd)
			if err != nil {
				return ctx, err
			}
			return ctx, setupLogging(settings.LogLevel)
		},
		Commands: []*cli.Command{
			playCommand(),
			presetsCommand(),
			recordsCommand(),
			mcpCommand(),
		},
		DefaultCommand: "play",
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "start a game",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "players",
				Aliases: []string{"n"},
				Usage:   fmt.Sprintf("number of players (%d-%d)", engine.MinPlayers, engine.MaxPlayers),
				Sources: cli.EnvVars("LUDO_PLAYERS"),
			},
			&cli.StringSliceFlag{
				Name:    "names",
				Usage:   "player names in seating order, the rest are named by color",
				Sources: cli.EnvVars("LUDO_PLAYER_NAMES"),
			},
			&cli.StringFlag{
				Name:    "preset",
				Usage:   "seating preset to load instead of --players and --names",
				Sources: cli.EnvVars("LUDO_PRESET"),
			},
			&cli.BoolFlag{
				Name:  "ask-players",
				Usage: "ask for the number of players at the terminal",
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "dice seed, 0 picks a random one",
				Sources: cli.EnvVars("LUDO_SEED"),
			},
			&cli.StringFlag{
				Name:    "record-dir",
				Usage:   "write a JSON transcript of the game into this directory",
				Sources: cli.EnvVars("LUDO_RECORD_DIR"),
			},
			&cli.StringFlag{
				Name:    "spectate",
				Usage:   "serve a read-only spectator API on this address (e.g. localhost:8080)",
				Sources: cli.EnvVars("LUDO_SPECTATE_ADDR"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "expose the spectator server through an ngrok tunnel",
				Sources: cli.EnvVars("LUDO_NGROK"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: play,
	}
}

// loadSettings reads config.Settings from the environment and applies the
// flags that were given on the command line.
func loadSettings(cmd *cli.Command) (config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}

	if cmd.IsSet("log-level") {
		settings.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("config-dir") {
		settings.ConfigDir = cmd.String("config-dir")
	}
	if cmd.IsSet("players") {
		settings.Players = cmd.Int("players")
	}
	if cmd.IsSet("names") {
		settings.PlayerNames = cmd.StringSlice("names")
	}
	if cmd.IsSet("preset") {
		settings.Preset = cmd.String("preset")
	}
	if cmd.IsSet("seed") {
		settings.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("record-dir") {
		settings.RecordDir = cmd.String("record-dir")
	}
	if cmd.IsSet("spectate") {
		settings.SpectateAddr = cmd.String("spectate")
	}
	if cmd.IsSet("ngrok") {
		settings.Ngrok = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-auth") {
		settings.NgrokToken = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		settings.NgrokDomain = cmd.String("ngrok-domain")
	}

	return settings, nil
}

// setupLogging sends logs to stderr so they never interleave with the board.
func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// openPresets opens the preset directory. A missing directory is only an
// error when a preset was asked for.
func openPresets(settings config.Settings) (*config.Manager, error) {
	presets, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		if settings.Preset != "" {
			return nil, fmt.Errorf("failed to open presets: %w", err)
		}
		log.Debug().Err(err).Str("dir", settings.ConfigDir).Msg("no preset directory")
		return nil, nil
	}
	return presets, nil
}

func play(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	presets, err := openPresets(settings)
	if err != nil {
		return err
	}

	console := terminal.NewConsole(os.Stdin, os.Stdout)
	if cmd.Bool("ask-players") && settings.Preset == "" {
		n, err := console.AskPlayerCount(ctx)
		if err != nil {
			return err
		}
		settings.Players = n
	}

	gameConfig, err := settings.GameConfig(presets)
	if err != nil {
		return err
	}

	game, err := engine.NewGame(gameConfig)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	dice, err := session.NewRandomDice(settings.Seed)
	if err != nil {
		return err
	}

	sess := session.New(game, dice, console, console, session.WithListener(console))

	if settings.RecordDir != "" {
		recorder, err := session.NewFileRecorder(settings.RecordDir)
		if err != nil {
			return err
		}
		sess.AddListener(recorder.Track(sess))
		log.Info().Str("dir", settings.RecordDir).Str("session", sess.ID).Msg("recording game")
	}

	var spectators service.SpectatorService
	if settings.SpectateAddr != "" {
		svc, shutdown, err := startSpectatorServer(ctx, settings, presets, sess)
		if err != nil {
			return err
		}
		defer shutdown()
		spectators = svc
	}

	log.Info().
		Str("session", sess.ID).
		Str("config", gameConfig.Name).
		Int("players", gameConfig.PlayerCount).
		Msg("game started")

	outcome, err := sess.Run(ctx)
	if spectators != nil {
		spectators.Finish(sess.ID, outcome)
	}
	if err != nil {
		return err
	}

	log.Info().Str("session", sess.ID).Str("outcome", outcome.String()).Int("turns", game.TotalTurns()).Msg("game over")
	return nil
}

// startSpectatorServer serves the read-only API for sess on the configured
// address, and through ngrok when enabled. The returned func shuts it down.
func startSpectatorServer(ctx context.Context, settings config.Settings, presets *config.Manager, sess *session.Session) (service.SpectatorService, func(), error) {
	hub := websocket.NewHub()
	go hub.Run()

	var configs service.ConfigManager
	if presets != nil {
		configs = presets
	}
	svc := service.NewSpectatorService(session.NewManager(), configs, hub)
	if err := svc.Watch(sess); err != nil {
		hub.Stop()
		return nil, nil, err
	}

	listener, err := net.Listen("tcp", settings.SpectateAddr)
	if err != nil {
		hub.Stop()
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", settings.SpectateAddr, err)
	}

	baseURL := "http://" + listener.Addr().String()
	mcpClient := mcp.NewClient(baseURL)
	handler := api.NewServer(svc, hub, mcpClient.GetMCPServer())

	httpServer := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("spectator server failed")
		}
	}()

	log.Info().
		Str("api", baseURL+"/api/sessions/"+sess.ID).
		Str("ws", "ws://"+listener.Addr().String()+"/ws?sessionId="+sess.ID).
		Str("mcp", baseURL+"/mcp").
		Msg("spectator server listening")

	tunnelCtx, cancelTunnel := context.WithCancel(ctx)
	if settings.Ngrok {
		go serveNgrok(tunnelCtx, settings, handler)
	}

	shutdown := func() {
		cancelTunnel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("spectator server shutdown")
		}
		hub.Stop()
	}

	return svc, shutdown, nil
}

// serveNgrok exposes handler through an ngrok tunnel until ctx is done.
func serveNgrok(ctx context.Context, settings config.Settings, handler http.Handler) {
	if settings.NgrokToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if settings.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(settings.NgrokToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Warn().Err(err).Msg("ngrok server error")
	}
}

func presetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "list seating presets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			presets, err := config.NewManager(settings.ConfigDir)
			if err != nil {
				return err
			}
			infos, err := presets.ListConfigs()
			if err != nil {
				return err
			}
			return printPresets(os.Stdout, infos)
		},
	}
}

func printPresets(out io.Writer, infos []*service.ConfigInfo) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPLAYERS\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%s\n", info.ConfigID, info.PlayerCount, info.Description)
	}
	return w.Flush()
}

func recordsCommand() *cli.Command {
	recordDir := func(cmd *cli.Command) string {
		if dir := cmd.String("dir"); dir != "" {
			return dir
		}
		return "records"
	}
	dirFlag := &cli.StringFlag{
		Name:    "dir",
		Usage:   "directory holding game transcripts",
		Sources: cli.EnvVars("LUDO_RECORD_DIR"),
	}

	return &cli.Command{
		Name:  "records",
		Usage: "list recorded games",
		Flags: []cli.Flag{dirFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			recorder, err := session.NewFileRecorder(recordDir(cmd))
			if err != nil {
				return err
			}
			ids, err := recorder.ListAll()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "print the turns of a recorded game",
				ArgsUsage: "<session-id>",
				Flags:     []cli.Flag{dirFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return cli.Exit("session id required", 1)
					}
					recorder, err := session.NewFileRecorder(recordDir(cmd))
					if err != nil {
						return err
					}
					record, err := recorder.Load(id)
					if err != nil {
						return err
					}
					fmt.Print(formatRecord(record))
					return nil
				},
			},
		},
	}
}

func formatRecord(record *session.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s (%s), %d turns\n", record.ID, record.Config.Name, len(record.Turns))
	for _, turn := range record.Turns {
		fmt.Fprintf(&b, "%4d  %-8s rolled %d  %s", turn.TurnNumber, turn.Player, turn.Roll, turn.Action)
		if turn.PawnIndex >= 0 {
			fmt.Fprintf(&b, " pawn %d", turn.PawnIndex)
		}
		if turn.PlayerWon {
			b.WriteString("  won")
		}
		b.WriteString("\n")
	}
	if record.Final != nil {
		b.WriteString(record.Final.Board.String())
		b.WriteString("\n")
	}
	return b.String()
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP stdio server backed by a spectator server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:8080",
				Usage:   "base URL of the spectator server",
				Sources: cli.EnvVars("LUDO_API_URL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := mcp.NewClient(cmd.String("api"))
			log.Info().Str("api", cmd.String("api")).Msg("MCP stdio server ready")
			return server.ServeStdio(client.GetMCPServer())
		},
	}
}
