package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/github"
	"taskboard/internal/telegram"
)

type importRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

type telegramRequest struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

type messageRequest struct {
	Text string `json:"text"`
}

// githubStatus maps client errors onto response codes.
func githubStatus(err error) int {
	if errors.Is(err, github.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// handleSearchRepos lists a user's repositories, narrowed by ?q= when given.
func (s *Server) handleSearchRepos(c *gin.Context) {
	repos, err := s.app.GitHub.SearchUserRepos(c.Request.Context(), c.Param("username"), c.Query("q"))
	if err != nil {
		s.respondError(c, githubStatus(err), err)
		return
	}
	if repos == nil {
		repos = []github.Repo{}
	}
	respondSuccess(c, http.StatusOK, gin.H{"repositories": repos})
}

// handleImportRepo turns a repository into a new project.
func (s *Server) handleImportRepo(c *gin.Context) {
	var req importRequest
	if err := bindStrict(c, &req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	req.Owner, req.Repo = strings.TrimSpace(req.Owner), strings.TrimSpace(req.Repo)
	if req.Owner == "" || req.Repo == "" {
		s.respondError(c, http.StatusBadRequest, errors.New("owner and repo are required"))
		return
	}

	project, err := s.app.Importer.ImportByName(c.Request.Context(), req.Owner, req.Repo)
	if err != nil {
		s.respondError(c, githubStatus(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleGetTelegram reports whether a bot is connected. The token is masked.
func (s *Server) handleGetTelegram(c *gin.Context) {
	creds, ok := s.app.Telegram.Credentials(c.Request.Context())
	if !ok {
		respondSuccess(c, http.StatusOK, gin.H{"connected": false})
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"connected": true,
		"botToken":  creds.MaskedToken(),
		"chatId":    creds.ChatID,
	})
}

// handleConnectTelegram saves bot credentials.
func (s *Server) handleConnectTelegram(c *gin.Context) {
	var req telegramRequest
	if err := bindStrict(c, &req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	err := s.app.Telegram.Connect(c.Request.Context(), req.BotToken, req.ChatID)
	switch {
	case errors.Is(err, telegram.ErrMissingCredentials):
		s.respondError(c, http.StatusBadRequest, err)
		return
	case err != nil:
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	creds := telegram.Credentials{BotToken: req.BotToken, ChatID: req.ChatID}
	respondSuccess(c, http.StatusOK, gin.H{
		"connected": true,
		"botToken":  creds.MaskedToken(),
		"chatId":    creds.ChatID,
	})
}

// handleDisconnectTelegram forgets the bot credentials.
func (s *Server) handleDisconnectTelegram(c *gin.Context) {
	if err := s.app.Telegram.Disconnect(c.Request.Context()); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"connected": false})
}

// handleSendTelegram delivers one message through the connected bot.
func (s *Server) handleSendTelegram(c *gin.Context) {
	var req messageRequest
	if err := bindStrict(c, &req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	err := s.app.Notifier.Notify(c.Request.Context(), req.Text)
	var apiErr *telegram.APIError
	switch {
	case err == nil:
		respondSuccess(c, http.StatusOK, gin.H{"status": "sent"})
	case errors.Is(err, telegram.ErrEmptyMessage):
		s.respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, telegram.ErrNotConnected):
		s.respondError(c, http.StatusConflict, err)
	case errors.As(err, &apiErr), errors.Is(err, telegram.ErrNetwork):
		s.respondError(c, http.StatusBadGateway, err)
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}
