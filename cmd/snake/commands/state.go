package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/battlesnakeio/classic/rules"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func init() {
	stateCmd.Flags().StringVarP(&apiAddr, "api-addr", "a", apiAddr, "address of a running snake serve")
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "gets the state of the game from a running snake serve",
	Run: func(*cobra.Command, []string) {
		client := &http.Client{
			Timeout: 5 * time.Second,
		}

		resp, err := client.Get(fmt.Sprintf("%s/state", apiAddr))
		if err != nil {
			fmt.Println("error while getting the state endpoint", err)
			return
		}
		defer resp.Body.Close()

		var snap rules.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			fmt.Println("unable to decode response body", err)
			return
		}
		spew.Dump(snap)
	},
}
