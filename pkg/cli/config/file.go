package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is the optional TOML configuration file. Its values fill flags that
// were not set on the command line or by environment variables.
//
//	[server]
//	addr = "0.0.0.0:8080"
//
//	[webhook]
//	url = "http://receiver:3000/log-post-request"
//	timeout = "2s"
//	mode = "accumulate-all"
//
//	[youtrack]
//	url = "https://yt.example.com"
//	users_file = "users.yaml"
type File struct {
	Server   FileServer   `toml:"server"`
	Webhook  FileWebhook  `toml:"webhook"`
	YouTrack FileYouTrack `toml:"youtrack"`
}

type FileServer struct {
	Addr   string `toml:"addr"`
	Secret string `toml:"update_secret"`
}

type FileWebhook struct {
	URL          string `toml:"url"`
	Timeout      string `toml:"timeout"`
	Secret       string `toml:"secret"`
	Mode         string `toml:"mode"`
	IssueBaseURL string `toml:"issue_base_url"`
}

type FileYouTrack struct {
	URL       string `toml:"url"`
	Token     string `toml:"token"`
	Timeout   string `toml:"timeout"`
	UsersFile string `toml:"users_file"`
}

// ConfigFileFlag returns the flag selecting the TOML file
func ConfigFileFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to TOML configuration file",
		Destination: dst,
		Sources:     cli.EnvVars("HERALD_CONFIG"),
	}
}

// LoadFile reads a TOML configuration file
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// ApplyServer fills unset server flags
func (f *File) ApplyServer(cmd *cli.Command, c *Server) {
	setString(cmd, "addr", &c.Addr, f.Server.Addr)
	setString(cmd, "update-secret", &c.Secret, f.Server.Secret)
}

// ApplyWebhook fills unset webhook flags
func (f *File) ApplyWebhook(cmd *cli.Command, c *Webhook) error {
	setString(cmd, "webhook-url", &c.URL, f.Webhook.URL)
	setString(cmd, "webhook-secret", &c.Secret, f.Webhook.Secret)
	setString(cmd, "emission-mode", &c.Mode, f.Webhook.Mode)
	setString(cmd, "issue-base-url", &c.BaseURL, f.Webhook.IssueBaseURL)
	return setDuration(cmd, "webhook-timeout", &c.Timeout, f.Webhook.Timeout)
}

// ApplyYouTrack fills unset user lookup flags
func (f *File) ApplyYouTrack(cmd *cli.Command, c *YouTrack) error {
	setString(cmd, "youtrack-url", &c.BaseURL, f.YouTrack.URL)
	setString(cmd, "youtrack-token", &c.Token, f.YouTrack.Token)
	setString(cmd, "users-file", &c.UsersFile, f.YouTrack.UsersFile)
	return setDuration(cmd, "youtrack-timeout", &c.Timeout, f.YouTrack.Timeout)
}

func setString(cmd *cli.Command, name string, dst *string, value string) {
	if value == "" || (cmd != nil && cmd.IsSet(name)) {
		return
	}
	*dst = value
}

func setDuration(cmd *cli.Command, name string, dst *time.Duration, value string) error {
	if value == "" || (cmd != nil && cmd.IsSet(name)) {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return goerr.Wrap(err, "invalid duration in config file", goerr.V("key", name), goerr.V("value", value))
	}
	*dst = d
	return nil
}
