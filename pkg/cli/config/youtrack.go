package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/infra/directory"
	"github.com/m-mizutani/herald/pkg/infra/youtrack"
	"github.com/urfave/cli/v3"
)

// YouTrack holds user lookup configuration
type YouTrack struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UsersFile string
}

// Flags returns CLI flags for user lookup configuration
func (c *YouTrack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "youtrack-url",
			Usage:       "YouTrack base URL for resolving mentioned users",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("HERALD_YOUTRACK_URL"),
		},
		&cli.StringFlag{
			Name:        "youtrack-token",
			Usage:       "YouTrack permanent token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("HERALD_YOUTRACK_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "youtrack-timeout",
			Usage:       "Timeout of a single user lookup",
			Value:       youtrack.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("HERALD_YOUTRACK_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "users-file",
			Usage:       "YAML file with known users, consulted before YouTrack",
			Destination: &c.UsersFile,
			Sources:     cli.EnvVars("HERALD_USERS_FILE"),
		},
	}
}

// NewDirectory builds the user directory. The static file is consulted
// first, then YouTrack. Returns nil when neither is configured, which
// disables resolution of bare mentions.
func (c *YouTrack) NewDirectory() (interfaces.UserDirectory, error) {
	var chain directory.Chain

	if c.UsersFile != "" {
		static, err := directory.LoadFile(c.UsersFile)
		if err != nil {
			return nil, err
		}
		chain = append(chain, static)
	}

	if c.BaseURL != "" {
		if c.Token == "" {
			return nil, goerr.New("youtrack token is required with youtrack url", goerr.V("url", c.BaseURL))
		}
		client, err := youtrack.NewClient(c.BaseURL, c.Token, youtrack.WithTimeout(c.Timeout))
		if err != nil {
			return nil, err
		}
		chain = append(chain, client)
	}

	if len(chain) == 0 {
		return nil, nil
	}
	return chain, nil
}
