package resolving

import (
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// NormalizeDomain converte uma URL ou hostname em um domínio comparável:
// hostname em minúsculas e sem "www." no início. Retorna false quando a entrada
// não pode ser interpretada como URL.
func NormalizeDomain(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	fullURL := value
	if strings.HasPrefix(value, "//") {
		fullURL = "https:" + value
	} else if !strings.HasPrefix(strings.ToLower(value), "http") {
		fullURL = "https://" + value
	}

	parsed, err := url.Parse(fullURL)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"value": raw,
			"error": err.Error(),
		}).Warn("URL inválida ao normalizar domínio")
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	for strings.HasPrefix(host, "www.") {
		host = strings.TrimPrefix(host, "www.")
	}

	if host == "" {
		logrus.WithField("value", raw).Warn("URL sem hostname ao normalizar domínio")
		return "", false
	}

	return host, true
}

// SameDomain compara dois valores depois de normalizados
func SameDomain(a, b string) bool {
	na, ok := NormalizeDomain(a)
	if !ok {
		return false
	}
	nb, ok := NormalizeDomain(b)
	if !ok {
		return false
	}
	return na == nb
}
