package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr   string
	Secret string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("HERALD_ADDR"),
		},
		&cli.StringFlag{
			Name:        "update-secret",
			Usage:       "Secret to verify X-Herald-Signature-256 of inbound issue updates (disabled if empty)",
			Destination: &c.Secret,
			Sources:     cli.EnvVars("HERALD_UPDATE_SECRET"),
		},
	}
}
