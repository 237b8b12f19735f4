package explorers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const REQUEST_TIMEOUT = 10 * time.Second

// EtherscanLikeExplorer talks to the Etherscan v2 multichain API or any
// explorer that copies its response envelope.
type EtherscanLikeExplorer struct {
	ChainID uint64
	Domain  string
	APIKey  string
	Client  *http.Client
}

func NewEtherscanLikeExplorer(domain string, apiKey string, chainID uint64) *EtherscanLikeExplorer {
	return &EtherscanLikeExplorer{
		ChainID: chainID,
		Domain:  strings.TrimRight(domain, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: REQUEST_TIMEOUT},
	}
}

func (ee *EtherscanLikeExplorer) GetABIStringAPIURL(address string) string {
	q := url.Values{}
	q.Set("chainid", fmt.Sprintf("%d", ee.ChainID))
	q.Set("module", "contract")
	q.Set("action", "getabi")
	q.Set("address", address)
	q.Set("apikey", ee.APIKey)
	return fmt.Sprintf("%s/api?%s", ee.Domain, q.Encode())
}

type abiresponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (ar *abiresponse) IsOK() bool {
	return ar.Status == "1"
}

func (ee *EtherscanLikeExplorer) GetABIString(address string) (string, error) {
	if ee.APIKey == "" {
		return "", ErrNoAPIKey
	}
	client := ee.Client
	if client == nil {
		client = &http.Client{Timeout: REQUEST_TIMEOUT}
	}
	resp, err := client.Get(ee.GetABIStringAPIURL(address))
	if err != nil {
		return "", fmt.Errorf("getabi request to %s: %w", ee.Domain, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("getabi request to %s: http status %d", ee.Domain, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	abiresp := abiresponse{}
	if err := json.Unmarshal(body, &abiresp); err != nil {
		return "", fmt.Errorf("couldn't unmarshal getabi response %q: %w", string(body), err)
	}
	if !abiresp.IsOK() {
		if strings.Contains(strings.ToLower(abiresp.Result), "not verified") {
			return "", fmt.Errorf("%s: %w", address, ErrNotVerified)
		}
		return "", fmt.Errorf("error from %s: %s (%s)", ee.Domain, abiresp.Message, abiresp.Result)
	}
	return abiresp.Result, nil
}
