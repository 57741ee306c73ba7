package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"persona-chat/internal/config"
	"persona-chat/internal/helper"
	"persona-chat/internal/models"
)

// ContentFetcher supplies a user's comments and posts. A failed fetch is
// indistinguishable from an empty result by contract.
type ContentFetcher interface {
	UserContent(ctx context.Context, username string) (comments, posts []string)
}

// PersonaGenerator produces a persona from raw content; it never fails.
type PersonaGenerator interface {
	Generate(ctx context.Context, comments, posts []string) models.PersonaTraits
}

// ChatResponder answers one message in character.
type ChatResponder interface {
	Reply(ctx context.Context, persona map[string]string, message string) (string, error)
}

type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	fetcher  ContentFetcher
	personas PersonaGenerator
	chat     ChatResponder
}

func NewServer(cfg *config.Config, fetcher ContentFetcher, personas PersonaGenerator, chat ChatResponder) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover(), middleware.CORS())

	s := &Server{
		echo:     e,
		cfg:      cfg,
		fetcher:  fetcher,
		personas: personas,
		chat:     chat,
	}
	e.HTTPErrorHandler = s.errorHandler
	s.setupRoutes()
	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) setupRoutes() {
	s.echo.File("/", filepath.Join(s.cfg.Server.StaticDir, "index.html"))
	s.echo.Static("/static", s.cfg.Server.StaticDir)
	s.echo.Static("/personas", s.cfg.Server.PersonasDir)

	api := s.echo.Group("/api")
	api.POST("/persona", s.createPersona)
	api.POST("/chat", s.chatWithPersona)
	api.POST("/save-persona", s.savePersona)
}

// errorHandler renders every error as {"detail": message}.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			detail = m
		case error:
			detail = m.Error()
		default:
			detail = fmt.Sprintf("%v", m)
		}
	}

	if err := c.JSON(code, map[string]string{"detail": detail}); err != nil {
		log.Error().Err(err).Msg("Error writing error response")
	}
}

func (s *Server) createPersona(c echo.Context) error {
	req := new(models.RedditUserRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	requestID, _ := helper.GenerateUUID()
	logger := log.With().Str("request_id", requestID).Str("username", req.Username).Logger()

	ctx := c.Request().Context()
	comments, posts := s.fetcher.UserContent(ctx, req.Username)
	if len(comments) == 0 && len(posts) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no data found for reddit user: %s", req.Username))
	}

	logger.Info().Int("comments", len(comments)).Int("posts", len(posts)).Msg("Generating persona")
	persona := s.personas.Generate(ctx, comments, posts)
	return c.JSON(http.StatusOK, persona)
}

func (s *Server) chatWithPersona(c echo.Context) error {
	req := new(models.ChatRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	response, err := s.chat.Reply(c.Request().Context(), req.Persona, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ChatResponse{Response: response})
}

func (s *Server) savePersona(c echo.Context) error {
	req := new(models.SavePersonaRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if strings.ContainsAny(req.Username, `/\`) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid username")
	}

	now := time.Now()
	filename := fmt.Sprintf("persona_%s_%s.txt", req.Username, now.Format("20060102_150405"))

	var b strings.Builder
	fmt.Fprintf(&b, "Reddit User Persona: %s\n", req.Username)
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))

	keys := make([]string, 0, len(req.Persona))
	for key, value := range req.Persona {
		if value == "" || key == "raw_data" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\n", helper.Capitalize(key), req.Persona[key])
	}

	path := filepath.Join(s.cfg.Server.PersonasDir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to save persona: %s", err))
	}

	return c.JSON(http.StatusOK, models.SavePersonaResponse{
		Filename: filename,
		FileURL:  "/personas/" + filename,
	})
}
