package srcview

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// fetchPage retrieves the raw contents of a page reference. Absolute local
// paths are read from disk; everything else is treated as a network address.
func (r *Resolver) fetchPage(ref string) ([]byte, error) {
	if isLocalPage(ref) {
		return r.readLocal(ref)
	}

	return r.readRemote(ref)
}

func (r *Resolver) readLocal(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrPageNotFound, path)
		}

		return nil, fmt.Errorf("%w: %q: %v", ErrPageNotFound, path, err)
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPageNotFound, path, err)
	}

	return contents, nil
}

// readRemote performs a blocking retrieval of a network page. Every failure
// mode, from connection errors to non-success statuses, collapses into
// [ErrPageUnreachable].
func (r *Resolver) readRemote(url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(r.context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPageUnreachable, url, err)
	}

	client := r.client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPageUnreachable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %q: unexpected status %s", ErrPageUnreachable, url, resp.Status)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPageUnreachable, url, err)
	}

	return contents, nil
}
