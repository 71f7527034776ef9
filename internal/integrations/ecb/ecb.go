package ecb

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client fetches the European Central Bank daily euro foreign-exchange
// reference rates, shown next to bank credit terms.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// GetReferenceRate returns the euro reference rate for the given
// currency code, e.g. "USD"
func (c *Client) GetReferenceRate(currency string) (float64, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	rate, err := c.parseRate(doc, currency)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved ECB reference rate for %s: %.4f", currency, rate)
	return rate, nil
}

func (c *Client) parseRate(doc *etree.Document, currency string) (float64, error) {
	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return 0, fmt.Errorf("no rate data found in XML")
	}

	for _, cube := range cubes {
		if cube.SelectAttrValue("currency", "") != currency {
			continue
		}
		rate, err := strconv.ParseFloat(cube.SelectAttrValue("rate", ""), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse rate: %w", err)
		}
		return rate, nil
	}
	return 0, fmt.Errorf("currency %s not found in ECB feed", currency)
}
