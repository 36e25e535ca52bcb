// Package license looks up a contractor license on the state registry's
// detail page. The result decorates the primary contractor in the report and
// never feeds financial metrics; a failed lookup is a nil result, not a
// pipeline fault.
package license

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"compintel/server/internal/models"
)

var (
	businessBlockPattern = regexp.MustCompile(`(?s)Business Information.*?<div[^>]*>(.*?)</div>`)
	tagPattern           = regexp.MustCompile(`<[^>]+>`)
)

type Service struct {
	logger *logrus.Logger
	client *http.Client
}

func NewService(logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{
		logger: logger,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Lookup fetches the license detail page and extracts business name, phone,
// and address. Returns nil when the page cannot be fetched or does not carry
// the expected layout.
func (s *Service) Lookup(lic string) (*models.LicenseDetail, error) {
	lic = strings.TrimSpace(lic)
	if lic == "" {
		return nil, nil
	}
	url := fmt.Sprintf(models.CSLBDetailURLFormat, lic)

	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("license lookup request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("license registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read license page: %w", err)
	}

	detail := parseDetailPage(string(body))
	if detail == nil {
		s.logger.WithField("license", lic).Info("License registry page had no business information block")
		return nil, nil
	}
	detail.LicenseNumber = lic
	detail.DetailURL = url
	return detail, nil
}

// parseDetailPage pulls the business-information block apart: first line is
// the business name, a "Business Phone Number:" line carries the phone, and
// everything else is address lines.
func parseDetailPage(html string) *models.LicenseDetail {
	m := businessBlockPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}

	text := tagPattern.ReplaceAllString(m[1], "\n")
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	detail := &models.LicenseDetail{BusinessName: lines[0]}
	var addressLines []string
	for _, ln := range lines[1:] {
		if strings.Contains(ln, "Business Phone Number:") {
			detail.Phone = strings.TrimSpace(strings.SplitN(ln, "Business Phone Number:", 2)[1])
		} else {
			addressLines = append(addressLines, ln)
		}
	}
	detail.Address = strings.Join(addressLines, ", ")
	return detail
}
