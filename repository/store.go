package repository

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/apperrors"
	"storefront-service/clients"
)

// StoreDoer is the part of clients.StoreClient the repositories need.
type StoreDoer interface {
	Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error)
}

// fetch sends a request and decodes a 2xx answer into out. It reports
// found=false on 404; any other failure is a transport failure.
func fetch(ctx context.Context, store StoreDoer, method, path string, body, out interface{}) (bool, error) {
	resp, err := store.Do(ctx, method, path, body)
	if err != nil {
		return false, apperrors.TransportFailure(fmt.Sprintf("%s %s", method, path), err)
	}
	if resp.StatusCode == http.StatusNotFound {
		clients.Drain(resp)
		return false, nil
	}
	if err := clients.DecodeJSON(resp, out); err != nil {
		return false, apperrors.TransportFailure(fmt.Sprintf("%s %s", method, path), err)
	}
	return true, nil
}

// mustFetch is fetch for calls where 404 is not an absence signal.
func mustFetch(ctx context.Context, store StoreDoer, method, path string, body, out interface{}) error {
	found, err := fetch(ctx, store, method, path, body, out)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.TransportFailure(fmt.Sprintf("%s %s", method, path), &clients.UpstreamError{StatusCode: http.StatusNotFound})
	}
	return nil
}

// remove issues a DELETE: 2xx is true, 404 is false, anything else fails.
func remove(ctx context.Context, store StoreDoer, path string) (bool, error) {
	resp, err := store.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return false, apperrors.TransportFailure("DELETE "+path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		clients.Drain(resp)
		return true, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		clients.Drain(resp)
		return false, nil
	}
	defer resp.Body.Close()
	return false, apperrors.TransportFailure("DELETE "+path, clients.NewUpstreamError(resp))
}
