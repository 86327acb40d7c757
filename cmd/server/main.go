package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/quizdash/quizdash/internal/config"
	"github.com/quizdash/quizdash/internal/game"
	"github.com/quizdash/quizdash/internal/questions"
	"github.com/quizdash/quizdash/internal/timers"
	"github.com/quizdash/quizdash/internal/ws"
	staticserver "github.com/quizdash/quizdash/static"
)

const version = "v1.0.0-dev"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`QuizDash - Live quiz show host

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  QUESTIONS_FILE      CSV question corpus (default: questions.csv)
  GAME_CONFIG         JSON game description (default: game.json)
  ADMIN_TOKEN         Admin auth token (default: random, printed at startup)
  ADMIN_USER          Admin page username for basic auth
  ADMIN_PASS          Admin page password for basic auth
  SHORT_DELAY         Short delay bucket duration (default: 3s)
  MEDIUM_DELAY        Medium delay bucket duration (default: 5s)
  LONG_DELAY          Long delay bucket duration (default: 10s)
  EXPORT_ENABLED      Export score table snapshots to file (default: true)
  EXPORT_FILE         Score table export path (default: ./score_table.json)

Visit http://localhost:8080 after starting the server.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("QuizDash %s\n", version)
		return
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	cfg, err := config.FromEnv()
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid configuration")
	}
	if *portFlag != "" {
		cfg.Port = *portFlag
	}

	storage, err := questions.NewCSVStorage(cfg.QuestionsFile)
	if err != nil {
		zerologlog.Fatal().Err(err).Str("file", cfg.QuestionsFile).Msg("loading question corpus")
	}
	meta, err := questions.LoadMeta(cfg.GameFile)
	if err != nil {
		zerologlog.Fatal().Err(err).Str("file", cfg.GameFile).Msg("loading game config")
	}

	adminToken := cfg.AdminToken
	if adminToken == "" {
		adminToken = uuid.NewString()
		zerologlog.Info().Str("token", adminToken).Msg("generated admin token")
	}

	session, err := game.NewSession(adminToken, questions.NewCatalog(storage, meta), meta.QuestionsPerTopic, zerologlog.Logger)
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("creating game session")
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	sock := ws.New(session, timers.New(), adminToken, cfg)
	io := sock.Mount(r)
	defer io.Close()

	r.GET("/api/session", func(c *gin.Context) {
		phase, players := sock.State()
		c.JSON(http.StatusOK, gin.H{
			"phase":   phase,
			"players": players,
		})
	})

	// Admin page behind basic auth (serves the SPA index)
	if cfg.AdminUser != "" && cfg.AdminPass != "" {
		auth := gin.BasicAuth(gin.Accounts{cfg.AdminUser: cfg.AdminPass})
		r.GET("/admin", auth, func(c *gin.Context) {
			staticserver.Handler().ServeHTTP(c.Writer, c.Request)
		})
		r.GET("/admin/*any", auth, func(c *gin.Context) {
			staticserver.Handler().ServeHTTP(c.Writer, c.Request)
		})
	}

	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	zerologlog.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		zerologlog.Fatal().Err(err).Msg("server stopped")
	}
}
