package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
)

// TranslateClient localizes place names through a Google-translate-v2 shaped
// endpoint (form-encoded POST, key in the form body).
type TranslateClient struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewTranslateClient(client *http.Client, apiKey string) *TranslateClient {
	return &TranslateClient{
		apiKey:  apiKey,
		baseURL: "https://translation.googleapis.com/language/translate/v2",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("translate"),
	}
}

// Translate returns text translated into the target language.
func (c *TranslateClient) Translate(ctx context.Context, text, target string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", target)
	form.Set("key", c.apiKey)
	encoded := form.Encode()

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.baseURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Data.Translations) == 0 {
		return "", fmt.Errorf("translation response contains no translations")
	}
	return payload.Data.Translations[0].TranslatedText, nil
}
