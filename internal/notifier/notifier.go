// Package notifier hands notifications to the heartline tray app over its local webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/heartline/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")
)

type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is what the tray app advertises in its lockfile: "port|pid|secret".
type endpoint struct {
	port   int
	pid    int
	secret string
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: constants.NotifyTimeout}}
}

// Notify delivers title and text to the running tray app.
func (n *Notifier) Notify(ctx context.Context, title, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	ep, err := readEndpoint(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return n.send(ctx, ep, WebhookPayload{
		Title:      title,
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// GetTrayAppConfigDir returns the tray app's config directory, honoring a
// lockfile_dir override in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

func readEndpoint(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	var ep endpoint
	if strings.TrimSpace(parts[0]) == "" {
		return endpoint{}, errors.New("port in lockfile is empty")
	}
	if ep.port, err = strconv.Atoi(parts[0]); err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if ep.port < 1 || ep.port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", ep.port)
	}
	if ep.pid, err = strconv.Atoi(parts[1]); err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	ep.secret = parts[2]
	if strings.TrimSpace(ep.secret) == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	// a stale lockfile can point at a recycled PID
	process, err := findProcessFunc(ep.pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", ep.pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return ep, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	return post(ctx, n.client, fmt.Sprintf("http://127.0.0.1:%d", ep.port), ep.secret, payload)
}

func post(ctx context.Context, client *http.Client, url, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Heartline-Secret", secret)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
