package store

import (
	"encoding/json"
	"errors"
	"fmt"

	postgrest "github.com/supabase-community/postgrest-go"
)

// errFunctionMissing reports that the database does not have the called
// function installed. Callers run their non-transactional fallback sequence;
// any other error aborts the write.
var errFunctionMissing = errors.New("database function not installed")

// rpcClient invokes Postgres functions through PostgREST's /rpc endpoint.
// A fresh postgrest client is built per call: the client records transport
// failures on itself instead of returning them, which would poison a shared
// instance for every subsequent request.
type rpcClient struct {
	url     string
	headers map[string]string
}

func newRPCClient(url, serviceKey string) *rpcClient {
	return &rpcClient{
		url: url + "/rest/v1",
		headers: map[string]string{
			"apikey":        serviceKey,
			"Authorization": "Bearer " + serviceKey,
		},
	}
}

// call runs the named void function. An empty response body means the
// function ran; a non-empty body is a PostgREST error document.
func (r *rpcClient) call(name string, params interface{}) error {
	client := postgrest.NewClient(r.url, "", r.headers)
	resp := client.Rpc(name, "", params)
	if client.ClientError != nil {
		return fmt.Errorf("calling %s: %w", name, client.ClientError)
	}
	if resp == "" {
		return nil
	}

	var pgErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	// PGRST202 is PostgREST's "function not found in the schema cache".
	if err := json.Unmarshal([]byte(resp), &pgErr); err == nil && pgErr.Code == "PGRST202" {
		return fmt.Errorf("%s: %w", name, errFunctionMissing)
	}
	return fmt.Errorf("calling %s: %s", name, resp)
}
