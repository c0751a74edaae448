// Package e2e drives a running snake api over http.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

type inputResponse struct {
	Accepted bool           `json:"accepted"`
	State    rules.Snapshot `json:"state"`
}

func (c *client) state() (rules.Snapshot, error) {
	var snap rules.Snapshot
	resp, err := c.client.Get(fmt.Sprintf("%s/state", c.apiURL))
	if err != nil {
		return snap, err
	}
	err = json.NewDecoder(resp.Body).Decode(&snap)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return snap, err
}

func (c *client) direction(dir string) (bool, error) {
	return c.post(fmt.Sprintf("%s/direction/%s", c.apiURL, dir))
}

func (c *client) replay() (bool, error) {
	return c.post(fmt.Sprintf("%s/replay", c.apiURL))
}

func (c *client) post(url string) (bool, error) {
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, errors.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}
	res := &inputResponse{}
	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return false, err
	}
	return res.Accepted, nil
}
