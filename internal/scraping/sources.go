// Package scraping adapts the external scraper scripts into the pipeline's
// source interfaces. The browser automation lives in the scripts; this side
// only runs them and decodes the raw JSON contract they print. A script
// failure yields an error the pipeline converts into a degraded, error-shaped
// input rather than a fault.
package scraping

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"compintel/server/internal/models"
)

// ScriptRunner launches the listing and permit scraper scripts.
type ScriptRunner struct {
	logger     *logrus.Logger
	scriptsDir string
}

func NewScriptRunner(logger *logrus.Logger, scriptsDir string) *ScriptRunner {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if scriptsDir == "" {
		scriptsDir = "scripts"
	}
	if abs, err := filepath.Abs(scriptsDir); err == nil {
		scriptsDir = abs
	}
	return &ScriptRunner{logger: logger, scriptsDir: scriptsDir}
}

type fetchRequest struct {
	URL     string `json:"url"`
	APN     string `json:"apn,omitempty"`
	Address string `json:"address,omitempty"`
}

// FetchListing runs the listing scraper for a URL.
func (r *ScriptRunner) FetchListing(url string) (*models.RawListing, error) {
	var listing models.RawListing
	if err := r.runScript("fetch_listing.py", fetchRequest{URL: url}, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// FetchPermits runs the permit-registry scraper. APN and address come from
// the listing side when available; the script can also derive the street
// address from the listing URL.
func (r *ScriptRunner) FetchPermits(apn, address, url string) (*models.RawPermitFeed, error) {
	var feed models.RawPermitFeed
	if err := r.runScript("fetch_permits.py", fetchRequest{URL: url, APN: apn, Address: address}, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// runScript executes one scraper with a JSON request on stdin and decodes the
// JSON record it prints on stdout. Stderr is streamed into the log.
func (r *ScriptRunner) runScript(name string, req interface{}, out interface{}) error {
	input, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal scraper request: %w", err)
	}

	scriptPath := filepath.Join(r.scriptsDir, name)
	r.logger.WithFields(logrus.Fields{
		"script": scriptPath,
	}).Info("Starting scraper script")

	cmd := exec.Command("python3", scriptPath)
	cmd.Stdin = bytes.NewBuffer(input)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start scraper: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			r.logger.WithField("script", name).Warn(scanner.Text())
		}
	}()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("scraper %s failed: %w", name, err)
	}

	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		return fmt.Errorf("failed to parse scraper output: %w", err)
	}
	return nil
}
