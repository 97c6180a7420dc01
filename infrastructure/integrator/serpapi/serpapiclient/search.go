package serpapiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	serpdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrMalformedResponse = errors.New("resposta da serpapi em formato inválido")

// Search executa GET /search respeitando o limite de requisições e repetindo falhas transitórias
func (c *SerpAPIClient) Search(ctx context.Context, params url.Values) (*serpdomain.SearchResponse, error) {
	engine := params.Get("engine")
	startedAt := time.Now()

	var response *serpdomain.SearchResponse
	err := c.retry.Do(ctx, "busca serpapi", func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var err error
		response, err = c.doSearch(ctx, params)
		return err
	})

	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case response.HasNoResults():
		outcome = metrics.OutcomeEmpty
	}
	metrics.ObserveProviderRequest(engine, outcome, time.Since(startedAt))

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"engine": engine,
			"query":  params.Get("q"),
			"start":  params.Get("start"),
			"error":  err.Error(),
		}).Error("Erro ao consultar a SerpAPI")
		return nil, err
	}

	return response, nil
}

func (c *SerpAPIClient) doSearch(ctx context.Context, params url.Values) (*serpdomain.SearchResponse, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("api_key", c.cfg.APIKey)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	var response serpdomain.SearchResponse
	decodeErr := json.Unmarshal(body, &response)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && response.HasNoResults() {
			return &response, nil
		}
		message := response.Error
		if message == "" {
			message = resp.Status
		}
		return nil, &serpdomain.StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}

	if response.Error != "" && !response.HasNoResults() {
		return nil, &serpdomain.ProviderError{Message: response.Error}
	}

	return &response, nil
}
