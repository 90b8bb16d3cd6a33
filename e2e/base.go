package e2e

import (
	"fmt"
	"log/slog"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"

	"persona-chat/api"
)

type BaseSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
}

// SetupSuite loads the environment configuration before running tests.
// Suites are skipped entirely when no backend address is configured, so
// the package stays runnable in environments without a live server.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BackendAddr == "" {
		s.T().Skip("BACKEND_ADDR not set, skipping end-to-end suite")
	}
	s.Log = logs.GetLoggerFromString("DEBUG")
}

// Client builds an authenticated API client, printing a colorized header
// for the connection step in logs.
func (s *BaseSuite) Client(name string) *api.Client {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	return api.NewClient(s.Config.BackendAddr, s.Log)
}
