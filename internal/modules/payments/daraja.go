package payments

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type DarajaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
	Timeout        time.Duration
}

// DarajaClient implements Provider against Safaricom's Daraja API.
type DarajaClient struct {
	cfg    DarajaConfig
	http   *resty.Client
	logger *slog.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewDarajaClient(cfg DarajaConfig, logger *slog.Logger) *DarajaClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &DarajaClient{cfg: cfg, http: client, logger: logger}
}

func (c *DarajaClient) Name() string { return "daraja" }

type darajaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type darajaErrorResponse struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// accessToken returns a cached OAuth token, refreshing it slightly before
// the provider's expiry.
func (c *DarajaClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	var tok darajaTokenResponse
	var apiErr darajaErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret).
		SetQueryParam("grant_type", "client_credentials").
		SetResult(&tok).
		SetError(&apiErr).
		Get("/oauth/v1/generate")
	if err != nil {
		return "", fmt.Errorf("daraja oauth request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("daraja oauth: status %s: %s", resp.Status(), apiErr.ErrorMessage)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("daraja oauth: empty access token")
	}

	ttl := time.Hour
	if d, perr := time.ParseDuration(tok.ExpiresIn + "s"); perr == nil {
		ttl = d
	}
	c.token = tok.AccessToken
	c.tokenExp = time.Now().Add(ttl - time.Minute)

	return c.token, nil
}

type stkPushBody struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

func (c *DarajaClient) STKPush(ctx context.Context, req STKPushRequest) (STKPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return STKPushResponse{}, err
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.ShortCode + c.cfg.Passkey + timestamp))

	body := stkPushBody{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		// Daraja takes whole shillings only.
		Amount:           fmt.Sprintf("%d", int64(math.Ceil(req.Amount))),
		PartyA:           req.PhoneNumber,
		PartyB:           c.cfg.ShortCode,
		PhoneNumber:      req.PhoneNumber,
		CallBackURL:      c.cfg.CallbackURL,
		AccountReference: req.AccountReference,
		TransactionDesc:  req.Description,
	}

	var result STKPushResponse
	var apiErr darajaErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post("/mpesa/stkpush/v1/processrequest")
	if err != nil {
		return STKPushResponse{}, fmt.Errorf("daraja stkpush request: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("daraja stkpush rejected",
			"status", resp.Status(),
			"error_code", apiErr.ErrorCode,
			"error_message", apiErr.ErrorMessage)
		return STKPushResponse{}, fmt.Errorf("daraja stkpush: status %s: %s", resp.Status(), apiErr.ErrorMessage)
	}
	if result.ResponseCode != "0" {
		return STKPushResponse{}, fmt.Errorf("daraja stkpush: response code %s: %s",
			result.ResponseCode, result.ResponseDescription)
	}

	return result, nil
}
