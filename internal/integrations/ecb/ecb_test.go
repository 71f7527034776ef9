package ecb

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<Cube>
		<Cube time="2026-03-10">
			<Cube currency="USD" rate="1.0842"/>
			<Cube currency="GBP" rate="0.8531"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseRate(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(sampleFeed); err != nil {
		t.Fatalf("failed to parse sample feed: %v", err)
	}
	c := &Client{log: logrus.New()}

	rate, err := c.parseRate(doc, "USD")
	if err != nil {
		t.Fatalf("parseRate failed: %v", err)
	}
	if rate != 1.0842 {
		t.Errorf("Expected rate 1.0842, got %f", rate)
	}
}

func TestParseRateUnknownCurrency(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(sampleFeed); err != nil {
		t.Fatalf("failed to parse sample feed: %v", err)
	}
	c := &Client{log: logrus.New()}

	if _, err := c.parseRate(doc, "JPY"); err == nil {
		t.Error("Expected error for missing currency")
	}
}
