package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/tessellated-io/walletbridge/coding"
	"github.com/tessellated-io/walletbridge/log"
)

// CometClient speaks CometBFT JSON-RPC over HTTP with the fixed request envelope
// (jsonrpc, id, method, params).
type CometClient struct {
	rpcUrl     string
	httpClient *http.Client

	nextRequestID int
	requestIDLock *sync.Mutex

	logger *log.Logger
}

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      int               `json:"id"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

type broadcastTxResult struct {
	Code      uint32 `json:"code"`
	Data      string `json:"data"`
	Log       string `json:"log"`
	Codespace string `json:"codespace"`
	Hash      string `json:"hash"`
}

type abciInfoResult struct {
	Response struct {
		Data             string `json:"data"`
		Version          string `json:"version"`
		LastBlockHeight  string `json:"last_block_height"`
		LastBlockAppHash string `json:"last_block_app_hash"`
	} `json:"response"`
}

func NewCometClient(rpcUrl string, logger *log.Logger) *CometClient {
	return &CometClient{
		rpcUrl:     rpcUrl,
		httpClient: &http.Client{},

		nextRequestID: 1,
		requestIDLock: &sync.Mutex{},

		logger: logger,
	}
}

// BroadcastTxSync submits signed transaction bytes with broadcast_tx_sync and maps the
// CheckTx result.
func (c *CometClient) BroadcastTxSync(ctx context.Context, txBytes []byte) (*BroadcastResult, error) {
	c.logger.Debug("broadcasting transaction", "payload", coding.PayloadFingerprint(txBytes))

	params := map[string]string{
		"tx": base64.StdEncoding.EncodeToString(txBytes),
	}

	resultBytes, err := c.call(ctx, "broadcast_tx_sync", params)
	if err != nil {
		return nil, err
	}

	var result broadcastTxResult
	if err := json.Unmarshal(resultBytes, &result); err != nil {
		return nil, err
	}

	return &BroadcastResult{
		Code:      result.Code,
		Codespace: result.Codespace,
		TxHash:    result.Hash,
		Log:       result.Log,
	}, nil
}

// ABCIInfo asks the node for its application info.
func (c *CometClient) ABCIInfo(ctx context.Context) (*NodeInfo, error) {
	resultBytes, err := c.call(ctx, "abci_info", map[string]string{})
	if err != nil {
		return nil, err
	}

	var result abciInfoResult
	if err := json.Unmarshal(resultBytes, &result); err != nil {
		return nil, err
	}

	return &NodeInfo{
		Data:            result.Response.Data,
		Version:         result.Response.Version,
		LastBlockHeight: result.Response.LastBlockHeight,
	}, nil
}

// call POSTs a JSON-RPC request and returns the raw result, surfacing JSON-RPC level
// errors as go errors.
func (c *CometClient) call(ctx context.Context, method string, params map[string]string) (json.RawMessage, error) {
	c.requestIDLock.Lock()
	requestID := c.nextRequestID
	c.nextRequestID++
	c.requestIDLock.Unlock()

	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      requestID,
		Method:  method,
		Params:  params,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("making json-rpc request", "url", c.rpcUrl, "method", method, "id", requestID)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcUrl, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code from node rpc: %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}

	if decoded.Error != nil {
		return nil, fmt.Errorf("json-rpc error from %s: %s (code %d): %s", method, decoded.Error.Message, decoded.Error.Code, decoded.Error.Data)
	}

	return decoded.Result, nil
}
