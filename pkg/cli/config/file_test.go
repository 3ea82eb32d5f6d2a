package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/herald/pkg/cli/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "herald.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "0.0.0.0:9000"

[webhook]
url = "http://receiver:3000/log-post-request"
timeout = "1500ms"
mode = "first-match"

[youtrack]
url = "https://yt.example.com"
token = "perm:xyz"
users_file = "users.yaml"
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	var server config.Server
	f.ApplyServer(nil, &server)
	gt.Value(t, server.Addr).Equal("0.0.0.0:9000")

	webhook := config.Webhook{Timeout: 2 * time.Second, Mode: "accumulate-all"}
	gt.NoError(t, f.ApplyWebhook(nil, &webhook))
	gt.Value(t, webhook.URL).Equal("http://receiver:3000/log-post-request")
	gt.Value(t, webhook.Timeout).Equal(1500 * time.Millisecond)
	gt.Value(t, webhook.Mode).Equal("first-match")
	gt.NoError(t, webhook.Validate())

	var yt config.YouTrack
	gt.NoError(t, f.ApplyYouTrack(nil, &yt))
	gt.Value(t, yt.BaseURL).Equal("https://yt.example.com")
	gt.Value(t, yt.Token).Equal("perm:xyz")
	gt.Value(t, yt.UsersFile).Equal("users.yaml")
}

func TestLoadFile_KeepsValuesMissingFromFile(t *testing.T) {
	path := writeConfig(t, `
[webhook]
url = "http://receiver:3000/hook"
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	webhook := config.Webhook{Timeout: 2 * time.Second, Mode: "accumulate-all"}
	gt.NoError(t, f.ApplyWebhook(nil, &webhook))
	gt.Value(t, webhook.Timeout).Equal(2 * time.Second)
	gt.Value(t, webhook.Mode).Equal("accumulate-all")
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)

	_, err = config.LoadFile(writeConfig(t, "[webhook\nurl ="))
	gt.Error(t, err)

	f, err := config.LoadFile(writeConfig(t, "[webhook]\ntimeout = \"soon\"\n"))
	gt.NoError(t, err)
	gt.Error(t, f.ApplyWebhook(nil, &config.Webhook{}))
}
