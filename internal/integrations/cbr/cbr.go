package cbr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

const (
	soapNamespace = "http://www.w3.org/2003/05/soap-envelope"
	cbrNamespace  = "http://web.cbr.ru/"
	dateLayout    = "2006-01-02"

	// The service returns one KR row per business day, a month back always holds the latest
	lookbackDays = 30

	// lendingMargin is added on top of the key rate to approximate a retail loan rate
	lendingMargin = 5.0
)

// CBRClient reads the key rate from the Central Bank of Russia DailyInfo web service
type CBRClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

// NewCBRClient initializes a new CBR client
func NewCBRClient(cfg *config.Config, log *logrus.Logger) *CBRClient {
	return &CBRClient{
		url: cfg.CBRURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// keyRateEnvelope builds the SOAP 1.2 KeyRate call for the lookback window
func (c *CBRClient) keyRateEnvelope() ([]byte, error) {
	to := c.now()
	from := to.AddDate(0, 0, -lookbackDays)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	envelope := doc.CreateElement("soap12:Envelope")
	envelope.CreateAttr("xmlns:soap12", soapNamespace)
	call := envelope.CreateElement("soap12:Body").CreateElement("KeyRate")
	call.CreateAttr("xmlns", cbrNamespace)
	call.CreateElement("fromDate").SetText(from.Format(dateLayout))
	call.CreateElement("ToDate").SetText(to.Format(dateLayout))

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to build SOAP envelope: %w", err)
	}
	return body, nil
}

// call posts a SOAP envelope for the given DailyInfo operation and returns the raw reply
func (c *CBRClient) call(ctx context.Context, operation string, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", cbrNamespace+operation)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s reply: %w", operation, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", operation, resp.StatusCode)
	}

	c.log.WithFields(logrus.Fields{"operation": operation, "bytes": len(reply)}).Debug("CBR reply received")
	return reply, nil
}

// parseXMLResponse extracts the most recent key rate from the diffgram
func parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, fmt.Errorf("no key rate data found in XML")
	}

	// Latest rate comes first
	rateElement := krElements[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateElement.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate: %w", err)
	}
	return rate, nil
}

// GetKeyRate retrieves the current key rate plus the lending margin, in percent
func (c *CBRClient) GetKeyRate(ctx context.Context) (float64, error) {
	envelope, err := c.keyRateEnvelope()
	if err != nil {
		return 0, err
	}
	body, err := c.call(ctx, "KeyRate", envelope)
	if err != nil {
		return 0, err
	}

	rate, err := parseXMLResponse(body)
	if err != nil {
		return 0, err
	}

	rate += lendingMargin
	c.log.Infof("Retrieved key rate: %.2f%% (including %.2f%% lending margin)", rate, lendingMargin)
	return rate, nil
}
